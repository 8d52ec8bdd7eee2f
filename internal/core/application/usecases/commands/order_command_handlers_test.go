package commands_test

import (
	"errors"
	"strings"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	p := newParties(t)

	t.Run("should add order built from template and notify after commit", func(t *testing.T) {
		ctx := t.Context()
		tmpl := p.template(t)
		orderID := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(p.requester, orderID, tmpl.ID(), "Company logo", "design")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		templates := new(MockTemplateRepository)
		notifier := new(MockNotifier)
		uow := new(MockUoW)
		created := []order.Event{{Kind: order.EventOrderCreated, OrderID: orderID}}
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("TemplateRepository").Return(templates).Once(),
			templates.On("Get", ctx, tmpl.ID()).Return(tmpl, nil).Once(),
			uow.On("OrderRepository").Return(orders).Once(),
			orders.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
				return o.ID().IsEqual(orderID) && o.Status() == order.Inquiry && o.Name() == "Company logo"
			})).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("PullEvents").Return(created).Once(),
			notifier.On("Emit", ctx, created[0]).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewCreateOrderCommandHandler(newOrchestrator(factory, notifier)).Handle(ctx, cmd)

		require.NoError(t, err)
		orders.AssertExpectations(t)
		templates.AssertExpectations(t)
		notifier.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should return not found for missing template", func(t *testing.T) {
		ctx := t.Context()
		templateID := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(p.requester, kernel.NewUUID(), templateID, "", "")
		require.NoError(t, err)

		templates := new(MockTemplateRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("TemplateRepository").Return(templates).Once(),
			templates.On("Get", ctx, templateID).Return(nil, errs.NewObjectNotFoundError("template", templateID)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewCreateOrderCommandHandler(newOrchestrator(factory, nil)).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject command not built by constructor", func(t *testing.T) {
		factory := new(MockUoWFactory)

		err := commands.NewCreateOrderCommandHandler(newOrchestrator(factory, nil)).Handle(t.Context(), commands.CreateOrderCommand{})

		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestOrchestrator_Mutate(t *testing.T) {
	p := newParties(t)

	t.Run("should update, commit and swallow notification failure", func(t *testing.T) {
		ctx := t.Context()
		o := p.order(t)
		cmd, err := commands.NewRequestQuoteCommand(p.requester, o.ID())
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		notifier := new(MockNotifier)
		uow := new(MockUoW)
		events := []order.Event{{Kind: order.EventStatusChanged}}
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			repo.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("PullEvents").Return(events).Once(),
			notifier.On("Emit", ctx, events[0]).Return(errors.New("smtp down")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewRequestQuoteCommandHandler(newOrchestrator(factory, notifier)).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.QuoteRequest, o.Status())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("should refuse outsiders before changing anything", func(t *testing.T) {
		ctx := t.Context()
		o := p.order(t)
		outsider, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
		require.NoError(t, err)
		cmd, err := commands.NewRequestQuoteCommand(outsider, o.ID())
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewRequestQuoteCommandHandler(newOrchestrator(factory, nil)).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.Inquiry, o.Status())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should not commit an illegal transition", func(t *testing.T) {
		ctx := t.Context()
		o := p.order(t)
		cmd, err := commands.NewAcceptQuoteCommand(p.requester, o.ID())
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewAcceptQuoteCommandHandler(newOrchestrator(factory, nil)).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should surface version conflict", func(t *testing.T) {
		ctx := t.Context()
		o := p.order(t)
		cmd, err := commands.NewCancelOrderCommand(p.provider, o.ID(), "no capacity")
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			repo.On("Update", ctx, o).Return(errs.NewVersionIsInvalidError("order", o.ID(), 0)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewCancelOrderCommandHandler(newOrchestrator(factory, nil)).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should stop when begin fails", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCompleteOrderCommand(p.requester, kernel.NewUUID())
		require.NoError(t, err)

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewCompleteOrderCommandHandler(newOrchestrator(factory, nil)).Handle(ctx, cmd)

		require.EqualError(t, err, "begin error")
		uow.AssertNotCalled(t, "OrderRepository")
	})
}

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	p := newParties(t)
	ctx := t.Context()
	o := p.order(t, "Concepts")
	cmd, err := commands.NewDeleteOrderCommand(p.requester, o.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Delete", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Emit", ctx, mock.MatchedBy(func(e order.Event) bool {
			return e.Kind == order.EventOrderDeleted && e.OrderID.IsEqual(o.ID())
		})).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	storage := new(MockFileStorage)

	err = commands.NewDeleteOrderCommandHandler(newOrchestrator(factory, notifier), storage).Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOrderCommandConstructors(t *testing.T) {
	p := newParties(t)

	t.Run("should reject missing actor", func(t *testing.T) {
		_, err := commands.NewRequestQuoteCommand(kernel.Actor{}, kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non positive quote price", func(t *testing.T) {
		_, err := commands.NewSendQuoteCommand(p.provider, kernel.NewUUID(), kernel.Zero())
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(p.provider, kernel.NewUUID(), order.Unknown, "")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should trim reason", func(t *testing.T) {
		cmd, err := commands.NewCancelOrderCommand(p.provider, kernel.NewUUID(), "  busy \n")
		require.NoError(t, err)
		assert.Equal(t, "busy", cmd.Reason())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("should collect every invalid field", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.Actor{}, kernel.UUID{}, kernel.UUID{}, "", "")
		require.Error(t, err)
		assert.GreaterOrEqual(t, strings.Count(err.Error(), "\n"), 2)
	})
}
