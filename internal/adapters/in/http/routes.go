package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// APIPrefix is the path every authenticated route lives under.
const APIPrefix = "/api/v1"

// Register installs the error handler, middleware and every route on e. auth
// guards the API group; /health, /openapi.json and /swagger/* stay public.
func (s *Server) Register(e *echo.Echo, auth echo.MiddlewareFunc) error {
	_, spec, err := LoadOpenAPI()
	if err != nil {
		return err
	}
	registerSwaggerDoc(spec)

	e.HTTPErrorHandler = ErrorHandler(s.log)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, spec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(APIPrefix, auth)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:ref", s.GetOrder)
	api.DELETE("/orders/:ref", s.DeleteOrder)
	api.POST("/orders/:ref/quote/request", s.RequestQuote)
	api.POST("/orders/:ref/quote/send", s.SendQuote)
	api.POST("/orders/:ref/quote/accept", s.AcceptQuote)
	api.POST("/orders/:ref/quote/reject", s.RejectQuote)
	api.PATCH("/orders/:ref/status", s.UpdateStatus)
	api.PATCH("/orders/:ref/price", s.UpdatePrice)
	api.POST("/orders/:ref/complete", s.CompleteOrder)
	api.POST("/orders/:ref/cancel", s.CancelOrder)
	api.POST("/orders/:ref/contract/change", s.RequestContractChange)
	api.POST("/orders/:ref/contract/approve", s.ApproveContractChange)
	api.POST("/orders/:ref/contract/reject", s.RejectContractChange)
	api.GET("/orders/:ref/payments.xlsx", s.PaymentsXLSX)
	api.POST("/orders/:ref/payments", s.AddPaymentCard)
	api.POST("/orders/:ref/deliveries", s.AddDeliveryItem)

	api.PUT("/confirmations/:blockId/items/:itemId", s.SelectConfirmationItem)
	api.PUT("/confirmations/:blockId/text", s.AnswerConfirmation)

	api.POST("/contracts/:id/sign", s.SignContract)
	api.GET("/contracts/:id/pdf", s.ContractPDF)
	api.POST("/contracts/:id/clauses", s.AddClause)
	api.PUT("/contracts/:id/clauses/:clauseId", s.UpdateClause)
	api.DELETE("/contracts/:id/clauses/:clauseId", s.DeleteClause)

	api.PATCH("/payments/:id/status", s.UpdatePaymentStatus)
	api.POST("/payments/:id/receipt", s.UploadReceipt)
	api.POST("/payments/:id/invoice", s.UploadInvoice)

	api.POST("/deliveries/:id/files", s.UploadDeliveryFile)
	api.PATCH("/deliveries/:id/status", s.UpdateDeliveryStatus)
	api.DELETE("/files/:id", s.DeleteDeliveryFile)

	api.GET("/storage/*", s.DownloadFile)
	api.GET("/users/:id/completed-orders", s.CountCompletedOrders)

	return nil
}
