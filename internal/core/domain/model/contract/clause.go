package contract

import (
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Clause is one named block of contract text. Sort is the zero-based position
// inside the contract and is kept contiguous by the owning Contract.
type Clause struct {
	id      kernel.UUID
	name    string
	content string
	sort    int
}

// ClauseTerms is the template-side description of a clause.
type ClauseTerms struct {
	Name    string
	Content string
}

func newClause(id kernel.UUID, name, content string, sort int) (*Clause, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("clause name")
	}
	return &Clause{id: id, name: name, content: content, sort: sort}, nil
}

// RestoreClause rebuilds a clause from storage.
func RestoreClause(id kernel.UUID, name, content string, sort int) (*Clause, error) {
	return newClause(id, name, content, sort)
}

func (c *Clause) ID() kernel.UUID { return c.id }
func (c *Clause) Name() string    { return c.name }
func (c *Clause) Content() string { return c.content }
func (c *Clause) Sort() int       { return c.sort }
