package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/model/template"
	"orderflow/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.result(m.Called(ctx, id))
}
func (m *MockOrderRepository) GetByContract(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.result(m.Called(ctx, id))
}
func (m *MockOrderRepository) GetByPaymentCard(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.result(m.Called(ctx, id))
}
func (m *MockOrderRepository) GetByDeliveryItem(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.result(m.Called(ctx, id))
}
func (m *MockOrderRepository) GetByDeliveryFile(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.result(m.Called(ctx, id))
}
func (m *MockOrderRepository) GetByConfirmationBlock(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.result(m.Called(ctx, id))
}
func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, s order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, s)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) result(args mock.Arguments) (*order.Order, error) {
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockTemplateRepository struct{ mock.Mock }

func (m *MockTemplateRepository) Get(ctx context.Context, id kernel.UUID) (*template.Template, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*template.Template)
	return t, args.Error(1)
}
func (m *MockTemplateRepository) Save(ctx context.Context, t *template.Template) error {
	return m.Called(ctx, t).Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockUoW) TemplateRepository() ports.TemplateRepository {
	return m.Called().Get(0).(ports.TemplateRepository)
}
func (m *MockUoW) PullEvents() []order.Event {
	events, _ := m.Called().Get(0).([]order.Event)
	return events
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Emit(ctx context.Context, e order.Event) error {
	return m.Called(ctx, e).Error(0)
}

type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) Save(ctx context.Context, prefix, name string, r io.Reader) (kernel.FileRef, error) {
	args := m.Called(ctx, prefix, name, r)
	return args.Get(0).(kernel.FileRef), args.Error(1)
}
func (m *MockFileStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}
func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) Lookup(ctx context.Context, id kernel.UUID) (ports.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Identity), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

type parties struct {
	requester kernel.Actor
	provider  kernel.Actor
}

func newParties(t *testing.T) parties {
	t.Helper()
	r, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
	require.NoError(t, err)
	p, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleProvider)
	require.NoError(t, err)
	return parties{requester: r, provider: p}
}

func (p parties) template(t *testing.T, deliverables ...string) *template.Template {
	t.Helper()
	tmpl, err := template.NewTemplate(kernel.NewUUID(), template.Terms{
		Name:          "Logo design",
		ProviderID:    p.provider.UserID(),
		StartingPrice: kernel.MustMoney("1000"),
		PaymentMethod: payment.FullPayment,
		Deliverables:  deliverables,
	})
	require.NoError(t, err)
	return tmpl
}

func (p parties) order(t *testing.T, deliverables ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrderFromTemplate(kernel.NewUUID(), order.GenerateNumber(fixedNow), p.requester.UserID(), p.template(t, deliverables...), "", "", fixedNow)
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func newOrchestrator(factory commands.UoWFactory, notifier *MockNotifier) *commands.Orchestrator {
	return commands.NewOrchestrator(factory, notifier, zerolog.Nop(), commands.WithClock(func() time.Time { return fixedNow }))
}
