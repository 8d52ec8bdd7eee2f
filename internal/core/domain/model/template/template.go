// Package template holds order templates: the provider's reference data an order
// is instantiated from (starting price, payment split, contract terms,
// confirmation blocks and expected deliverables).
package template

import (
	"errors"
	"slices"
	"strings"

	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"
)

// ErrTemplateIsNotConstructed is returned by Validate for zero-value templates.
var ErrTemplateIsNotConstructed = errors.New("Template must be created via NewTemplate constructor")

// Template is read-only configuration owned by a provider.
type Template struct {
	id                  kernel.UUID
	name                string
	providerID          kernel.UUID
	startingPrice       kernel.Money
	paymentMethod       payment.Method
	contractName        string
	contractDescription string
	clauses             []contract.ClauseTerms
	blocks              []confirmation.BlockTerms
	deliverables        []string

	isConstructed bool
}

// Terms is the full description of a template.
type Terms struct {
	Name                string
	ProviderID          kernel.UUID
	StartingPrice       kernel.Money
	PaymentMethod       payment.Method
	ContractName        string
	ContractDescription string
	Clauses             []contract.ClauseTerms
	Blocks              []confirmation.BlockTerms
	Deliverables        []string
}

// NewTemplate validates terms. It is used both by the import command and by the repository.
func NewTemplate(id kernel.UUID, t Terms) (*Template, error) {
	tpl := &Template{
		id:                  id,
		name:                strings.TrimSpace(t.Name),
		providerID:          t.ProviderID,
		startingPrice:       t.StartingPrice,
		paymentMethod:       t.PaymentMethod,
		contractName:        t.ContractName,
		contractDescription: t.ContractDescription,
		clauses:             slices.Clone(t.Clauses),
		blocks:              slices.Clone(t.Blocks),
		deliverables:        slices.Clone(t.Deliverables),
		isConstructed:       true,
	}

	var nameErr error
	if tpl.name == "" {
		nameErr = errs.NewValueIsRequiredError("template name")
	}
	if err := errors.Join(
		id.Validate(),
		t.ProviderID.Validate(),
		t.PaymentMethod.Validate(),
		nameErr,
	); err != nil {
		return nil, err
	}
	if tpl.contractName == "" {
		tpl.contractName = tpl.name
	}
	return tpl, nil
}

// Validate reports whether the template was built through NewTemplate.
func (t *Template) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTemplateIsNotConstructed
	}
	return nil
}

func (t *Template) ID() kernel.UUID                   { return t.id }
func (t *Template) Name() string                      { return t.name }
func (t *Template) ProviderID() kernel.UUID           { return t.providerID }
func (t *Template) StartingPrice() kernel.Money       { return t.startingPrice }
func (t *Template) PaymentMethod() payment.Method     { return t.paymentMethod }
func (t *Template) ContractName() string              { return t.contractName }
func (t *Template) ContractDescription() string       { return t.contractDescription }
func (t *Template) Clauses() []contract.ClauseTerms   { return slices.Clone(t.clauses) }
func (t *Template) Blocks() []confirmation.BlockTerms { return slices.Clone(t.blocks) }
func (t *Template) Deliverables() []string            { return slices.Clone(t.deliverables) }
