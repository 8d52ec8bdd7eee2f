package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// SignContract handles POST /api/v1/contracts/{id}/sign. The signing party is
// derived from the caller.
func (s *Server) SignContract(c echo.Context) error {
	return s.entityCommand(c, "id", func(actor kernel.Actor, contractID kernel.UUID) error {
		cmd, err := commands.NewSignContractCommand(actor, contractID)
		if err != nil {
			return err
		}
		return s.h.SignContract.Handle(c.Request().Context(), cmd)
	})
}

// RequestContractChange handles POST /api/v1/orders/{ref}/contract/change.
func (s *Server) RequestContractChange(c echo.Context) error {
	var req ContractChangeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewRequestContractChangeCommand(actor, orderID, req.Reason, req.ProposedText)
		if err != nil {
			return err
		}
		return s.h.RequestContractChange.Handle(c.Request().Context(), cmd)
	})
}

// ApproveContractChange handles POST /api/v1/orders/{ref}/contract/approve.
func (s *Server) ApproveContractChange(c echo.Context) error {
	return s.resolveContractChange(c, true)
}

// RejectContractChange handles POST /api/v1/orders/{ref}/contract/reject.
func (s *Server) RejectContractChange(c echo.Context) error {
	return s.resolveContractChange(c, false)
}

func (s *Server) resolveContractChange(c echo.Context, approve bool) error {
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewResolveContractChangeCommand(actor, orderID, approve)
		if err != nil {
			return err
		}
		return s.h.ResolveContractChange.Handle(c.Request().Context(), cmd)
	})
}

// AddClause handles POST /api/v1/contracts/{id}/clauses.
func (s *Server) AddClause(c echo.Context) error {
	var req ClauseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.entityCommand(c, "id", func(actor kernel.Actor, contractID kernel.UUID) error {
		cmd, err := commands.NewAddContractClauseCommand(actor, contractID, req.Name, req.Content)
		if err != nil {
			return err
		}
		return s.h.AddClause.Handle(c.Request().Context(), cmd)
	})
}

// UpdateClause handles PUT /api/v1/contracts/{id}/clauses/{clauseId}.
func (s *Server) UpdateClause(c echo.Context) error {
	var req ClauseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	clauseID, err := pathUUID(c, "clauseId")
	if err != nil {
		return err
	}
	return s.entityCommand(c, "id", func(actor kernel.Actor, contractID kernel.UUID) error {
		cmd, err := commands.NewUpdateContractClauseCommand(actor, contractID, clauseID, req.Name, req.Content)
		if err != nil {
			return err
		}
		return s.h.UpdateClause.Handle(c.Request().Context(), cmd)
	})
}

// DeleteClause handles DELETE /api/v1/contracts/{id}/clauses/{clauseId}.
func (s *Server) DeleteClause(c echo.Context) error {
	clauseID, err := pathUUID(c, "clauseId")
	if err != nil {
		return err
	}
	return s.entityCommand(c, "id", func(actor kernel.Actor, contractID kernel.UUID) error {
		cmd, err := commands.NewDeleteContractClauseCommand(actor, contractID, clauseID)
		if err != nil {
			return err
		}
		return s.h.DeleteClause.Handle(c.Request().Context(), cmd)
	})
}

// entityCommand resolves the caller and the UUID path parameter param, runs fn
// and answers 204.
func (s *Server) entityCommand(c echo.Context, param string, fn func(actor kernel.Actor, id kernel.UUID) error) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, param)
	if err != nil {
		return err
	}
	if err := fn(actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
