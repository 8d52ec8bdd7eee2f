package cmd

import (
	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/notify"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/identityrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/render"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg          Config
	gormDB       *gorm.DB
	uowFactory   *postgres.GormUnitOfWorkFactory
	storage      ports.FileStorage
	notifier     ports.Notifier
	identity     ports.IdentityProvider
	orchestrator *commands.Orchestrator
	log          zerolog.Logger
}

// NewCompositionRoot wires the adapters around gormDB. Events go to PostgreSQL
// NOTIFY when cfg.NotifyChannel is set and to the log otherwise.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, storage ports.FileStorage, log zerolog.Logger, opts ...commands.OrchestratorOption) *CompositionRoot {
	var notifier ports.Notifier = notify.NewLogNotifier(log)
	if cfg.NotifyChannel != "" {
		notifier = notify.NewPgNotifier(gormDB, cfg.NotifyChannel)
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return uowFactory.Create()
	})

	return &CompositionRoot{
		cfg:          cfg,
		gormDB:       gormDB,
		uowFactory:   uowFactory,
		storage:      storage,
		notifier:     notifier,
		identity:     identityrepo.NewGormIdentityProvider(gormDB),
		orchestrator: commands.NewOrchestrator(f, notifier, log, opts...),
		log:          log,
	}
}

// Handlers builds every use case the HTTP server dispatches to.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	o := c.orchestrator
	return httpin.Handlers{
		CreateOrder:  commands.NewCreateOrderCommandHandler(o),
		RequestQuote: commands.NewRequestQuoteCommandHandler(o),
		SendQuote:    commands.NewSendQuoteCommandHandler(o),
		AcceptQuote:  commands.NewAcceptQuoteCommandHandler(o),
		RejectQuote:  commands.NewRejectQuoteCommandHandler(o),
		UpdateStatus: commands.NewUpdateOrderStatusCommandHandler(o),
		UpdatePrice:  commands.NewUpdateOrderPriceCommandHandler(o),
		Complete:     commands.NewCompleteOrderCommandHandler(o),
		Cancel:       commands.NewCancelOrderCommandHandler(o),
		DeleteOrder:  commands.NewDeleteOrderCommandHandler(o, c.storage),

		SignContract:          commands.NewSignContractCommandHandler(o, c.identity),
		RequestContractChange: commands.NewRequestContractChangeCommandHandler(o),
		ResolveContractChange: commands.NewResolveContractChangeCommandHandler(o),
		AddClause:             commands.NewAddContractClauseCommandHandler(o),
		UpdateClause:          commands.NewUpdateContractClauseCommandHandler(o),
		DeleteClause:          commands.NewDeleteContractClauseCommandHandler(o),

		UpdatePaymentStatus:   commands.NewUpdatePaymentStatusCommandHandler(o),
		UploadPaymentDocument: commands.NewUploadPaymentDocumentCommandHandler(o, c.storage),
		AddPaymentCard:        commands.NewAddPaymentCardCommandHandler(o),

		AddDeliveryItem:      commands.NewAddDeliveryItemCommandHandler(o),
		UploadDeliveryFile:   commands.NewUploadDeliveryFileCommandHandler(o, c.storage),
		UpdateDeliveryStatus: commands.NewUpdateDeliveryStatusCommandHandler(o),
		DeleteDeliveryFile:   commands.NewDeleteDeliveryFileCommandHandler(o, c.storage),

		SelectConfirmationItem: commands.NewSelectConfirmationItemCommandHandler(o),
		AnswerConfirmation:     commands.NewAnswerConfirmationCommandHandler(o),

		GetOrder:             queries.NewGetOrderQueryHandler(c.orderReader()),
		ListOrders:           queries.NewListOrdersQueryHandler(c.gormDB),
		CountCompletedOrders: queries.NewCountCompletedOrdersQueryHandler(c.gormDB),
		RenderContract:       queries.NewRenderContractQueryHandler(c.orderReader(), c.identity, render.NewContractPDF()),
		ExportLedger:         queries.NewExportLedgerQueryHandler(c.orderReader(), render.NewLedgerXLSX()),
		OpenStoredFile:       queries.NewOpenStoredFileQueryHandler(c.orderReader(), c.storage),
	}
}

// NewServer builds the HTTP server over Handlers.
func (c *CompositionRoot) NewServer() *httpin.Server {
	return httpin.NewServer(c.Handlers(), c.log)
}

func (c *CompositionRoot) CreateImportTemplateCommandHandler() commands.ImportTemplateCommandHandler {
	var f commands.TemplateUoWFactory = FuncTemplateUoWFactory(func() commands.TemplateUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportTemplateCommandHandler(f, c.log)
}

func (c *CompositionRoot) CreateAdvancePaidOrdersCommandHandler() commands.AdvancePaidOrdersCommandHandler {
	return commands.NewAdvancePaidOrdersCommandHandler(c.orchestrator)
}

// Jobs returns the background jobs the configuration enables.
func (c *CompositionRoot) Jobs() *jobs.JobManager {
	list := []jobs.Job{
		jobs.NewPaymentPollJob(c.CreateAdvancePaidOrdersCommandHandler(), c.cfg.PaymentPollSchedule, c.log),
	}
	if c.cfg.ListenNotifications {
		list = append(list, jobs.NewNotificationListenerJob(c.cfg.DSN(), c.cfg.NotifyChannel, jobs.LogNotification(c.log), c.log))
	}
	return jobs.NewJobManager(list...)
}

// orderReader loads aggregates outside any unit of work for the queries.
func (c *CompositionRoot) orderReader() queries.OrderReader {
	return orderrepo.NewGormOrderRepository(c.gormDB, noTracking{})
}

type noTracking struct{}

func (noTracking) TrackAggregate(kernel.UUID, any) {}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncTemplateUoWFactory func() commands.TemplateUoW

func (f FuncTemplateUoWFactory) Create() commands.TemplateUoW {
	return f()
}
