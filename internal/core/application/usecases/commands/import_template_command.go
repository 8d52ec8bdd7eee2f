package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/template"
	"orderflow/internal/pkg/guard"

	"github.com/rs/zerolog"
)

var ErrImportTemplateCommandIsNotConstructed = errors.New(
	"ImportTemplateCommand must be created via NewImportTemplateCommand constructor",
)

// ImportTemplateCommand inserts or replaces a provider template. It is issued by
// the "template import" CLI command.
type ImportTemplateCommand struct {
	template *template.Template

	guard guard.ConstructorGuard
}

// NewImportTemplateCommand validates terms into a template.
func NewImportTemplateCommand(id kernel.UUID, terms template.Terms) (ImportTemplateCommand, error) {
	tmpl, err := template.NewTemplate(id, terms)
	if err != nil {
		return ImportTemplateCommand{}, err
	}
	return ImportTemplateCommand{template: tmpl, guard: guard.NewConstructorGuard()}, nil
}

func (c ImportTemplateCommand) Validate() error {
	return c.guard.Validate(ErrImportTemplateCommandIsNotConstructed)
}

func (c ImportTemplateCommand) Template() *template.Template { return c.template }

type ImportTemplateCommandHandler struct {
	uowFactory TemplateUoWFactory
	log        zerolog.Logger
}

func NewImportTemplateCommandHandler(uowFactory TemplateUoWFactory, log zerolog.Logger) ImportTemplateCommandHandler {
	return ImportTemplateCommandHandler{uowFactory: uowFactory, log: log}
}

func (h ImportTemplateCommandHandler) Handle(ctx context.Context, c ImportTemplateCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.TemplateRepository().Save(ctx, c.Template()); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.log.Info().Str("template", c.Template().ID().String()).Str("name", c.Template().Name()).Msg("template imported")
	return nil
}
