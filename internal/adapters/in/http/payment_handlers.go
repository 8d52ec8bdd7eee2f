package http

import (
	"io"
	"mime/multipart"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UpdatePaymentStatus handles PATCH /api/v1/payments/{id}/status.
func (s *Server) UpdatePaymentStatus(c echo.Context) error {
	var req PaymentStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.entityCommand(c, "id", func(actor kernel.Actor, cardID kernel.UUID) error {
		status, err := payment.ParseStatus(req.Status)
		if err != nil {
			return err
		}
		cmd, err := commands.NewUpdatePaymentStatusCommand(actor, cardID, status)
		if err != nil {
			return err
		}
		return s.h.UpdatePaymentStatus.Handle(c.Request().Context(), cmd)
	})
}

// UploadReceipt handles POST /api/v1/payments/{id}/receipt.
func (s *Server) UploadReceipt(c echo.Context) error {
	return s.uploadPaymentDocument(c, commands.DocumentReceipt)
}

// UploadInvoice handles POST /api/v1/payments/{id}/invoice.
func (s *Server) UploadInvoice(c echo.Context) error {
	return s.uploadPaymentDocument(c, commands.DocumentInvoice)
}

func (s *Server) uploadPaymentDocument(c echo.Context, kind commands.DocumentKind) error {
	name, file, err := formFile(c)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.entityCommand(c, "id", func(actor kernel.Actor, cardID kernel.UUID) error {
		cmd, err := commands.NewUploadPaymentDocumentCommand(actor, cardID, kind, name, file)
		if err != nil {
			return err
		}
		return s.h.UploadPaymentDocument.Handle(c.Request().Context(), cmd)
	})
}

// AddPaymentCard handles POST /api/v1/orders/{ref}/payments.
func (s *Server) AddPaymentCard(c echo.Context) error {
	var req PaymentCardRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		amount, err := kernel.NewPositiveMoney(req.Amount)
		if err != nil {
			return err
		}
		cmd, err := commands.NewAddPaymentCardCommand(actor, orderID, amount, req.DueDate)
		if err != nil {
			return err
		}
		return s.h.AddPaymentCard.Handle(c.Request().Context(), cmd)
	})
}

// formFile opens the multipart field "file".
func formFile(c echo.Context) (string, io.ReadCloser, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return "", nil, errs.NewValueIsRequiredErrorWithCause("file", err)
	}
	var f multipart.File
	if f, err = header.Open(); err != nil {
		return "", nil, err
	}
	return header.Filename, f, nil
}
