package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req CreateOrderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	templateID, err := kernel.UUIDFromBytes(req.TemplateID[:])
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(actor, orderID, templateID, req.Name, req.Type)
	if err != nil {
		return err
	}
	if err := s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondOrder(c, http.StatusCreated, actor, orderID)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var filter queries.ListOrdersFilter
	if filter.RequesterID, err = queryUUID(c, "requester"); err != nil {
		return err
	}
	if filter.ProviderID, err = queryUUID(c, "provider"); err != nil {
		return err
	}
	status, err := queryString(c, "status")
	if err != nil {
		return err
	}
	if status != nil {
		st, err := order.ParseStatus(*status)
		if err != nil {
			return err
		}
		filter.Status = &st
	}
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return err
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(actor, filter)
	if err != nil {
		return err
	}
	rows, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderSummaries(rows))
}

// GetOrder handles GET /api/v1/orders/{ref}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathOrderRef(c)
	if err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, actor, orderID)
}

// DeleteOrder handles DELETE /api/v1/orders/{ref}.
func (s *Server) DeleteOrder(c echo.Context) error {
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewDeleteOrderCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.h.DeleteOrder.Handle(c.Request().Context(), cmd)
	})
}

// RequestQuote handles POST /api/v1/orders/{ref}/quote/request.
func (s *Server) RequestQuote(c echo.Context) error {
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewRequestQuoteCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.h.RequestQuote.Handle(c.Request().Context(), cmd)
	})
}

// SendQuote handles POST /api/v1/orders/{ref}/quote/send.
func (s *Server) SendQuote(c echo.Context) error {
	var req PriceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		price, err := kernel.NewPositiveMoney(req.Price)
		if err != nil {
			return err
		}
		cmd, err := commands.NewSendQuoteCommand(actor, orderID, price)
		if err != nil {
			return err
		}
		return s.h.SendQuote.Handle(c.Request().Context(), cmd)
	})
}

// AcceptQuote handles POST /api/v1/orders/{ref}/quote/accept.
func (s *Server) AcceptQuote(c echo.Context) error {
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewAcceptQuoteCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.h.AcceptQuote.Handle(c.Request().Context(), cmd)
	})
}

// RejectQuote handles POST /api/v1/orders/{ref}/quote/reject.
func (s *Server) RejectQuote(c echo.Context) error {
	var req ReasonRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewRejectQuoteCommand(actor, orderID, req.Reason)
		if err != nil {
			return err
		}
		return s.h.RejectQuote.Handle(c.Request().Context(), cmd)
	})
}

// UpdateStatus handles PATCH /api/v1/orders/{ref}/status.
func (s *Server) UpdateStatus(c echo.Context) error {
	var req StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		status, err := order.ParseStatus(req.Status)
		if err != nil {
			return err
		}
		cmd, err := commands.NewUpdateOrderStatusCommand(actor, orderID, status, req.Reason)
		if err != nil {
			return err
		}
		return s.h.UpdateStatus.Handle(c.Request().Context(), cmd)
	})
}

// UpdatePrice handles PATCH /api/v1/orders/{ref}/price.
func (s *Server) UpdatePrice(c echo.Context) error {
	var req PriceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		price, err := kernel.NewPositiveMoney(req.Price)
		if err != nil {
			return err
		}
		cmd, err := commands.NewUpdateOrderPriceCommand(actor, orderID, price)
		if err != nil {
			return err
		}
		return s.h.UpdatePrice.Handle(c.Request().Context(), cmd)
	})
}

// CompleteOrder handles POST /api/v1/orders/{ref}/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewCompleteOrderCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.h.Complete.Handle(c.Request().Context(), cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/{ref}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	var req ReasonRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return s.orderCommand(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewCancelOrderCommand(actor, orderID, req.Reason)
		if err != nil {
			return err
		}
		return s.h.Cancel.Handle(c.Request().Context(), cmd)
	})
}

// CountCompletedOrders handles GET /api/v1/users/{id}/completed-orders.
func (s *Server) CountCompletedOrders(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewCountCompletedOrdersQuery(userID)
	if err != nil {
		return err
	}
	n, err := s.h.CountCompletedOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

// orderCommand resolves the caller and {ref}, runs fn and answers 204.
func (s *Server) orderCommand(c echo.Context, fn func(actor kernel.Actor, orderID kernel.UUID) error) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathOrderRef(c)
	if err != nil {
		return err
	}
	if err := fn(actor, orderID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) respondOrder(c echo.Context, code int, actor kernel.Actor, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return err
	}
	o, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(code, toOrderResponse(o))
}
