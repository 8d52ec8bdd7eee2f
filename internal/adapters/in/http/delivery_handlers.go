package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// AddDeliveryItem handles POST /api/v1/orders/{ref}/deliveries.
func (s *Server) AddDeliveryItem(c echo.Context) error {
	var req DeliveryItemRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewAddDeliveryItemCommand(actor, orderID, req.Description)
		if err != nil {
			return err
		}
		return s.h.AddDeliveryItem.Handle(c.Request().Context(), cmd)
	})
}

// UploadDeliveryFile handles POST /api/v1/deliveries/{id}/files and answers
// with the new file ID.
func (s *Server) UploadDeliveryFile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	name, file, err := formFile(c)
	if err != nil {
		return err
	}
	defer file.Close()

	cmd, err := commands.NewUploadDeliveryFileCommand(actor, itemID, name, file)
	if err != nil {
		return err
	}
	fileID, err := s.h.UploadDeliveryFile.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: fileID.Bytes()})
}

// UpdateDeliveryStatus handles PATCH /api/v1/deliveries/{id}/status.
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	var req DeliveryStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.entityCommand(c, "id", func(actor kernel.Actor, itemID kernel.UUID) error {
		status, err := delivery.ParseStatus(req.Status)
		if err != nil {
			return err
		}
		cmd, err := commands.NewUpdateDeliveryStatusCommand(actor, itemID, status, req.Comment, req.IsFinal)
		if err != nil {
			return err
		}
		return s.h.UpdateDeliveryStatus.Handle(c.Request().Context(), cmd)
	})
}

// DeleteDeliveryFile handles DELETE /api/v1/files/{id}.
func (s *Server) DeleteDeliveryFile(c echo.Context) error {
	return s.entityCommand(c, "id", func(actor kernel.Actor, fileID kernel.UUID) error {
		cmd, err := commands.NewDeleteDeliveryFileCommand(actor, fileID)
		if err != nil {
			return err
		}
		return s.h.DeleteDeliveryFile.Handle(c.Request().Context(), cmd)
	})
}
