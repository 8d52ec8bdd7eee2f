package http

import (
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// SelectConfirmationItem handles PUT /api/v1/confirmations/{blockId}/items/{itemId}.
func (s *Server) SelectConfirmationItem(c echo.Context) error {
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	return s.entityCommand(c, "blockId", func(actor kernel.Actor, blockID kernel.UUID) error {
		cmd, err := commands.NewSelectConfirmationItemCommand(actor, blockID, itemID)
		if err != nil {
			return err
		}
		return s.h.SelectConfirmationItem.Handle(c.Request().Context(), cmd)
	})
}

// AnswerConfirmation handles PUT /api/v1/confirmations/{blockId}/text.
func (s *Server) AnswerConfirmation(c echo.Context) error {
	var req TextAnswerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.entityCommand(c, "blockId", func(actor kernel.Actor, blockID kernel.UUID) error {
		cmd, err := commands.NewAnswerConfirmationCommand(actor, blockID, req.Content)
		if err != nil {
			return err
		}
		return s.h.AnswerConfirmation.Handle(c.Request().Context(), cmd)
	})
}
