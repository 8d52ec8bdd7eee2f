package render

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"

	"github.com/xuri/excelize/v2"
)

const ledgerSheet = "Payments"

// LedgerXLSX exports payment ledgers as spreadsheets.
type LedgerXLSX struct{}

func NewLedgerXLSX() *LedgerXLSX {
	return &LedgerXLSX{}
}

// ExportLedger writes a summary header and one row per payment card.
func (g *LedgerXLSX) ExportLedger(o *order.Order) ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, err
	}

	cards := o.PaymentCards()
	set := func(cell string, value any) {
		_ = file.SetCellValue(ledgerSheet, cell, value)
	}

	set("A1", "Order")
	set("B1", o.Number().String())
	set("A2", "Name")
	set("B2", o.Name())
	set("A3", "Price")
	set("B3", o.Price().Decimal().InexactFloat64())
	set("A4", "Payment method")
	set("B4", o.PaymentMethod().String())
	set("A5", "Scheduled total")
	set("B5", payment.ScheduledTotal(cards).Decimal().InexactFloat64())
	set("A6", "Unsettled cards")
	set("B6", payment.Unsettled(cards))

	tableRow := 8
	headers := []string{"Installment", "Amount", "Status", "Due date", "Paid at", "Receipt", "Invoice", "Extra"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, c := range cards {
		row := tableRow + 1 + i
		values := []any{
			c.Installment(),
			c.Amount().Decimal().InexactFloat64(),
			c.Status().String(),
			formatOptionalDate(c.DueDate()),
			formatOptionalDate(c.PaidAt()),
			c.Receipt().Name(),
			c.Invoice().Name(),
			c.IsExtra(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			set(cell, v)
		}
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), tableRow)
	_ = file.SetCellStyle(ledgerSheet, fmt.Sprintf("A%d", tableRow), last, bold)
	_ = file.SetColWidth(ledgerSheet, "A", "A", 18)
	_ = file.SetColWidth(ledgerSheet, "B", "H", 14)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export ledger of order %s: %w", o.ID(), err)
	}
	return buf.Bytes(), nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}
