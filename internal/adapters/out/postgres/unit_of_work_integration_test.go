package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/model/template"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2026, 6, 2, 14, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite checks transaction boundaries and event
// draining of the GORM unit of work against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory

	requester kernel.Actor
	tmpl      *template.Template
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE
		orders, contracts, contract_clauses, payment_cards, delivery_items,
		delivery_files, confirmation_blocks, order_history, order_templates`).Error
	suite.Require().NoError(err)

	suite.requester, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
	suite.Require().NoError(err)
	suite.tmpl, err = template.NewTemplate(kernel.NewUUID(), template.Terms{
		Name:          "Translation",
		ProviderID:    kernel.NewUUID(),
		StartingPrice: kernel.MustMoney("400"),
		PaymentMethod: payment.FullPayment,
		Deliverables:  []string{"Translated text"},
	})
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrderFromTemplate(kernel.NewUUID(), order.GenerateNumber(now), suite.requester.UserID(), suite.tmpl, "", "", now)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAndDrainsEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.TemplateRepository().Save(ctx, suite.tmpl))
	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(o.Cancel("duplicate", suite.requester, now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	events := uow.PullEvents()
	kinds := make([]order.EventKind, 0, len(events))
	for _, e := range events {
		suite.True(e.OrderID.IsEqual(o.ID()))
		kinds = append(kinds, e.Kind)
	}
	suite.Equal([]order.EventKind{
		order.EventOrderCreated,
		order.EventStatusChanged,
		order.EventOrderCancelled,
	}, kinds)
	suite.Empty(uow.PullEvents())

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, stored.Status())
	suite.Equal(int64(2), stored.Version())

	tmpl, err := suite.factory.Create().TemplateRepository().Get(ctx, suite.tmpl.ID())
	suite.Require().NoError(err)
	suite.Equal("Translation", tmpl.Name())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChangesAndEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(uow.PullEvents())
	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_IsHarmless() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	suite.ErrorIs(suite.factory.Create().Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentWriters_SecondUpdateConflicts() {
	ctx := context.Background()
	o := suite.newOrder()
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.OrderRepository().Add(ctx, o))
	suite.Require().NoError(seed.Commit(ctx))

	first, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(first.UpdatePrice(kernel.MustMoney("450"), now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, first))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(second.UpdatePrice(kernel.MustMoney("500"), now))
	err = uow.OrderRepository().Update(ctx, second)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Require().NoError(uow.Rollback(ctx))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
