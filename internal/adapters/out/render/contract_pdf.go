// Package render produces the printable documents of an order: the contract as
// PDF and the payment ledger as a spreadsheet.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/jung-kurt/gofpdf"
)

const fontName = "Helvetica"

// ContractPDF renders contracts with the PDF core fonts.
type ContractPDF struct{}

func NewContractPDF() *ContractPDF {
	return &ContractPDF{}
}

// RenderContract lays out the parties, the terms, the clauses, the payment
// schedule and the signature slots of the order's contract.
func (g *ContractPDF) RenderContract(o *order.Order, requester, provider ports.Identity) ([]byte, error) {
	c := o.Contract()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle(c.Name(), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 10, tr(c.Name()), "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Order %s (%s)", o.Number(), o.ShortCode()), "", 1, "C", false, 0, "")
	if rev := c.RevisedAt(); rev != nil {
		pdf.CellFormat(0, 6, "Revised "+formatDate(*rev), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	partyBlock(pdf, tr, "Requester", requester)
	pdf.Ln(2)
	partyBlock(pdf, tr, "Provider", provider)
	pdf.Ln(4)

	if desc := strings.TrimSpace(c.Description()); desc != "" {
		section(pdf, "Subject")
		pdf.SetFont(fontName, "", 10)
		pdf.MultiCell(0, 5, tr(desc), "", "L", false)
		pdf.Ln(2)
	}

	section(pdf, "Price")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s, payment method %s", c.Price(), o.PaymentMethod()), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if clauses := c.Clauses(); len(clauses) > 0 {
		section(pdf, "Clauses")
		for i, cl := range clauses {
			pdf.SetFont(fontName, "B", 10)
			pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d. %s", i+1, cl.Name())), "", 1, "L", false, 0, "")
			pdf.SetFont(fontName, "", 10)
			pdf.MultiCell(0, 5, tr(cl.Content()), "", "L", false)
		}
		pdf.Ln(2)
	}

	if cards := o.PaymentCards(); len(cards) > 0 {
		section(pdf, "Payment schedule")
		widths := []float64{30, 50, 50, 40}
		tableRow(pdf, []string{"Installment", "Amount", "Due", "Status"}, widths, true)
		for _, card := range cards {
			due := "-"
			if d := card.DueDate(); d != nil {
				due = formatDate(*d)
			}
			tableRow(pdf, []string{
				fmt.Sprintf("%d", card.Installment()),
				card.Amount().String(),
				due,
				card.Status().String(),
			}, widths, false)
		}
		pdf.Ln(4)
	}

	section(pdf, "Signatures")
	signatureLine(pdf, tr, "Requester", requester.DisplayName, c.RequesterSignature())
	signatureLine(pdf, tr, "Provider", provider.DisplayName, c.ProviderSignature())

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render contract %s: %w", c.ID(), err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func partyBlock(pdf *gofpdf.Fpdf, tr func(string) string, title string, who ports.Identity) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 5, tr(safeValue(who.DisplayName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(safeValue(who.Email)), "", 1, "L", false, 0, "")
}

func tableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == 1 && !header {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureLine(pdf *gofpdf.Fpdf, tr func(string) string, label, name string, sig contract.Signature) {
	pdf.SetFont(fontName, "", 10)
	status := "not signed"
	if sig.Signed {
		status = "signed"
		if sig.SignedAt != nil {
			status += " on " + formatDate(*sig.SignedAt)
		}
	}
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: %s, %s", label, safeValue(name), status)), "", 1, "L", false, 0, "")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
