package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/template"
)

// TemplateRepository reads and maintains the order templates providers publish.
type TemplateRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*template.Template, error)

	// Save inserts the template or replaces it when the id already exists.
	Save(ctx context.Context, tmpl *template.Template) error
}
