package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/sqlitetest"
	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/model/template"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2026, 5, 11, 9, 30, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryTestSuite runs the same repository checks against whatever
// database open returns.
type OrderRepositoryTestSuite struct {
	suite.Suite
	open    func(t *testing.T) *gorm.DB
	cleanup func()

	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker

	requester kernel.Actor
	provider  kernel.Actor
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.db = suite.open(suite.T())
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)

	var err error
	suite.requester, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
	suite.Require().NoError(err)
	suite.provider, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleProvider)
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryTestSuite) TearDownSuite() {
	if suite.cleanup != nil {
		suite.cleanup()
	}
}

func (suite *OrderRepositoryTestSuite) newOrder() *order.Order {
	tmpl, err := template.NewTemplate(kernel.NewUUID(), template.Terms{
		Name:          "Packaging design",
		ProviderID:    suite.provider.UserID(),
		StartingPrice: kernel.MustMoney("900"),
		PaymentMethod: payment.Installment2_3,
		Clauses: []contract.ClauseTerms{
			{Name: "Scope", Content: "Box and label"},
			{Name: "Rights", Content: "Full transfer"},
		},
		Blocks: []confirmation.BlockTerms{
			{Name: "Brief", Kind: confirmation.KindText},
			{Name: "Extras", Kind: confirmation.KindList, Multiple: true, Items: []confirmation.ItemTerms{
				{Name: "Mockups", UnitPrice: kernel.MustMoney("50"), Quantity: 2},
				{Name: "Print files", UnitPrice: kernel.MustMoney("30"), Quantity: 1},
			}},
		},
		Deliverables: []string{"Dieline", "Label"},
	})
	suite.Require().NoError(err)

	o, err := order.NewOrderFromTemplate(kernel.NewUUID(), order.GenerateNumber(now), suite.requester.UserID(), tmpl, "", "packaging", now)
	suite.Require().NoError(err)
	return o
}

// inProgress drives an order through quoting, signing and payment and uploads
// one delivery file.
func (suite *OrderRepositoryTestSuite) inProgress() *order.Order {
	o := suite.newOrder()
	blocks := o.ConfirmationBlocks()
	suite.Require().NoError(o.AnswerConfirmation(blocks[0].ID(), "Eco friendly", now))
	suite.Require().NoError(o.SelectConfirmationItem(blocks[1].ID(), blocks[1].Items()[0].ID, now))

	suite.Require().NoError(o.RequestQuote(suite.requester, now))
	suite.Require().NoError(o.SendQuote(kernel.MustMoney("1000"), suite.provider, now))
	suite.Require().NoError(o.AcceptQuote(suite.requester, now))
	suite.Require().NoError(o.SignContract(kernel.PartyRequester, "https://sig/r.png", suite.requester, now))
	suite.Require().NoError(o.SignContract(kernel.PartyProvider, "https://sig/p.png", suite.provider, now))
	for _, c := range o.PaymentCards() {
		_, err := o.AttachPaymentReceipt(c.ID(), fileRef("receipt.pdf"), now)
		suite.Require().NoError(err)
		suite.Require().NoError(o.UpdatePaymentStatus(c.ID(), payment.Paid, suite.requester, now))
	}
	suite.Require().Equal(order.InProgress, o.Status())

	_, err := o.AttachDeliveryFile(o.DeliveryItems()[0].ID(), fileRef("dieline.pdf"), now)
	suite.Require().NoError(err)
	return o
}

func fileRef(name string) kernel.FileRef {
	ref, err := kernel.NewFileRef("files/"+kernel.NewUUID().String(), name, "https://files.example/"+name)
	if err != nil {
		panic(err)
	}
	return ref
}

func (suite *OrderRepositoryTestSuite) TestAdd_RoundTripsTheWholeAggregate() {
	ctx := context.Background()
	o := suite.inProgress()

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Equal(int64(1), o.Version())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.Number(), got.Number())
	suite.Equal(order.InProgress, got.Status())
	suite.True(got.Price().Equal(kernel.MustMoney("1000")))
	suite.True(got.StartingPrice().Equal(kernel.MustMoney("900")))
	suite.Equal(payment.Installment2_3, got.PaymentMethod())
	suite.Equal([]string{"Dieline", "Label"}, got.Deliverables())
	suite.Equal(int64(1), got.Version())

	suite.True(got.Contract().IsExecuted())
	suite.Equal("https://sig/p.png", got.Contract().ProviderSignature().URL)
	suite.Require().Len(got.Contract().Clauses(), 2)
	suite.Equal("Scope", got.Contract().Clauses()[0].Name())

	cards := got.PaymentCards()
	suite.Require().Len(cards, 2)
	suite.Equal(1, cards[0].Installment())
	suite.True(cards[0].Amount().Equal(kernel.MustMoney("300")))
	suite.Equal(payment.Paid, cards[1].Status())
	suite.Equal("receipt.pdf", cards[1].Receipt().Name())
	suite.True(cards[1].Invoice().IsZero())

	items := got.DeliveryItems()
	suite.Require().Len(items, 2)
	suite.Equal("Dieline", items[0].Description())
	suite.Require().Len(items[0].Files(), 1)
	suite.Equal("dieline.pdf", items[0].Files()[0].Ref().Name())

	blocks := got.ConfirmationBlocks()
	suite.Require().Len(blocks, 2)
	suite.Equal("Eco friendly", blocks[0].Content())
	suite.True(blocks[1].Items()[0].Selected)
	suite.True(confirmation.AllAnswered(blocks))

	history := got.History()
	suite.Require().Len(history, len(o.History()))
	last := history[len(history)-1]
	suite.Equal(order.AwaitingPayment, last.From)
	suite.Equal(order.InProgress, last.To)
	var quoted *kernel.Money
	for _, h := range history {
		if h.To == order.QuoteSent {
			quoted = h.Price
		}
	}
	suite.Require().NotNil(quoted)
	suite.True(quoted.Equal(kernel.MustMoney("1000")))
}

func (suite *OrderRepositoryTestSuite) TestUpdate_ReplacesOwnedRecordsAndBumpsVersion() {
	ctx := context.Background()
	o := suite.inProgress()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	item := o.DeliveryItems()[0]
	fileID := item.Files()[0].ID()
	_, err := o.RemoveDeliveryFile(fileID, now)
	suite.Require().NoError(err)
	_, err = o.AddPaymentCard(kernel.MustMoney("75"), nil, now)
	suite.Require().NoError(err)
	suite.Require().NoError(o.MarkDelivered(o.DeliveryItems()[1].ID(), suite.provider, now))

	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(int64(2), o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(2), got.Version())
	suite.Equal(order.Delivered, got.Status())
	suite.Empty(got.DeliveryItems()[0].Files())
	suite.Equal(delivery.Delivered, got.DeliveryItems()[1].Status())
	suite.Require().Len(got.PaymentCards(), 3)
	suite.True(got.PaymentCards()[2].IsExtra())
	suite.Len(got.History(), len(o.History()))

	_, err = suite.repository.GetByDeliveryFile(ctx, fileID)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_RejectsStaleVersion() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Cancel("changed mind", suite.requester, now))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.UpdatePrice(kernel.MustMoney("1200"), now))
	err = suite.repository.Update(ctx, second)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, got.Status())
	suite.True(got.Price().Equal(kernel.MustMoney("900")))
}

func (suite *OrderRepositoryTestSuite) TestUpdate_MissingOrder() {
	err := suite.repository.Update(context.Background(), suite.newOrder())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestPendingChangeKeepsSignatureSnapshot() {
	ctx := context.Background()
	o := suite.newOrder()
	blocks := o.ConfirmationBlocks()
	suite.Require().NoError(o.AnswerConfirmation(blocks[0].ID(), "Matte", now))
	suite.Require().NoError(o.SelectConfirmationItem(blocks[1].ID(), blocks[1].Items()[1].ID, now))
	suite.Require().NoError(o.RequestQuote(suite.requester, now))
	suite.Require().NoError(o.SendQuote(kernel.MustMoney("950"), suite.provider, now))
	suite.Require().NoError(o.AcceptQuote(suite.requester, now))
	suite.Require().NoError(o.SignContract(kernel.PartyRequester, "https://sig/r.png", suite.requester, now))
	suite.Require().NoError(o.RequestContractChange(kernel.PartyProvider, "Add a clause", "Source files included", now))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	change := got.Contract().PendingChange()
	suite.Require().NotNil(change)
	suite.Equal(kernel.PartyProvider, change.RequestedBy)
	suite.Equal("Source files included", change.ProposedText)
	suite.False(got.Contract().RequesterSignature().Signed)

	requester, provider := got.Contract().SignatureSnapshot()
	suite.Require().NotNil(requester)
	suite.Require().NotNil(provider)
	suite.True(requester.Signed)
	suite.Equal("https://sig/r.png", requester.URL)
	suite.False(provider.Signed)

	suite.Require().NoError(got.RejectContractChange(kernel.PartyRequester, suite.requester, now))
	suite.Nil(got.Contract().PendingChange())
}

func (suite *OrderRepositoryTestSuite) TestLookupsResolveTheOwningOrder() {
	ctx := context.Background()
	o := suite.inProgress()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	item := o.DeliveryItems()[0]
	lookups := map[string]func() (*order.Order, error){
		"contract": func() (*order.Order, error) { return suite.repository.GetByContract(ctx, o.Contract().ID()) },
		"card":     func() (*order.Order, error) { return suite.repository.GetByPaymentCard(ctx, o.PaymentCards()[0].ID()) },
		"item":     func() (*order.Order, error) { return suite.repository.GetByDeliveryItem(ctx, item.ID()) },
		"file":     func() (*order.Order, error) { return suite.repository.GetByDeliveryFile(ctx, item.Files()[0].ID()) },
		"block": func() (*order.Order, error) {
			return suite.repository.GetByConfirmationBlock(ctx, o.ConfirmationBlocks()[1].ID())
		},
		"receipt key": func() (*order.Order, error) {
			return suite.repository.GetByFileKey(ctx, o.PaymentCards()[0].Receipt().Key())
		},
		"delivery file key": func() (*order.Order, error) {
			return suite.repository.GetByFileKey(ctx, item.Files()[0].Ref().Key())
		},
	}
	for name, lookup := range lookups {
		got, err := lookup()
		suite.Require().NoError(err, name)
		suite.True(got.ID().IsEqual(o.ID()), name)
	}

	_, err := suite.repository.GetByPaymentCard(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetByFileKey(ctx, "files/unknown")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestGetAllInStatus() {
	ctx := context.Background()
	inquiry := suite.newOrder()
	running := suite.inProgress()
	suite.Require().NoError(suite.repository.Add(ctx, inquiry))
	suite.Require().NoError(suite.repository.Add(ctx, running))

	got, err := suite.repository.GetAllInStatus(ctx, order.InProgress)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.True(got[0].ID().IsEqual(running.ID()))

	got, err = suite.repository.GetAllInStatus(ctx, order.Completed)
	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *OrderRepositoryTestSuite) TestDelete_RemovesEveryOwnedRow() {
	ctx := context.Background()
	o := suite.inProgress()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o))

	_, err := suite.repository.Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	for _, table := range []string{
		"contracts", "contract_clauses", "payment_cards", "delivery_items",
		"delivery_files", "confirmation_blocks", "order_history",
	} {
		var n int64
		suite.Require().NoError(suite.db.Table(table).Count(&n).Error)
		suite.Zero(n, table)
	}

	suite.ErrorIs(suite.repository.Delete(ctx, o), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestGet_InvalidID() {
	_, err := suite.repository.Get(context.Background(), kernel.UUID{})
	suite.ErrorIs(err, kernel.ErrUUIDIsNotConstructed)
}

func TestOrderRepository_SQLite(t *testing.T) {
	suite.Run(t, &OrderRepositoryTestSuite{
		open: func(t *testing.T) *gorm.DB { return sqlitetest.Open(t) },
	})
}

func TestOrderRepository_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, postgres_adapter.Migrate(db))

	suite.Run(t, &OrderRepositoryTestSuite{
		open: func(t *testing.T) *gorm.DB {
			require.NoError(t, db.Exec(`TRUNCATE TABLE
				orders, contracts, contract_clauses, payment_cards,
				delivery_items, delivery_files, confirmation_blocks, order_history`).Error)
			return db
		},
		cleanup: func() { _ = container.Terminate(context.Background()) },
	})
}
