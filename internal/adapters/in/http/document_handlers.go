package http

import (
	"fmt"
	"mime"
	"net/http"
	"path"

	"orderflow/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ContractPDF handles GET /api/v1/contracts/{id}/pdf.
func (s *Server) ContractPDF(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	contractID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewRenderContractQuery(actor, contractID)
	if err != nil {
		return err
	}
	doc, err := s.h.RenderContract.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return attachment(c, doc)
}

// PaymentsXLSX handles GET /api/v1/orders/{ref}/payments.xlsx.
func (s *Server) PaymentsXLSX(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathOrderRef(c)
	if err != nil {
		return err
	}

	query, err := queries.NewExportLedgerQuery(actor, orderID)
	if err != nil {
		return err
	}
	doc, err := s.h.ExportLedger.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return attachment(c, doc)
}

// DownloadFile handles GET /api/v1/storage/{key...}, streaming a stored
// receipt, invoice or delivery file to a participant of the owning order.
func (s *Server) DownloadFile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	key := c.Param("*")

	query, err := queries.NewOpenStoredFileQuery(actor, key)
	if err != nil {
		return err
	}
	rc, err := s.h.OpenStoredFile.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, rc)
}

func attachment(c echo.Context, doc queries.DocumentResponse) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Content)
}
