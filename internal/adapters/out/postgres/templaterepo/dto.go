// Package templaterepo persists the order templates providers publish. Clauses,
// confirmation blocks and deliverables are stored as JSON columns of the template row.
package templaterepo

import (
	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/model/template"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TemplateDTO represents the database structure for order templates.
type TemplateDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string          `gorm:"type:varchar(255);not null" json:"name"`
	ProviderID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"provider_id"`
	StartingPrice       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"starting_price"`
	PaymentMethod       string          `gorm:"type:varchar(32);not null" json:"payment_method"`
	ContractName        string          `gorm:"type:varchar(255)" json:"contract_name"`
	ContractDescription string          `gorm:"type:text" json:"contract_description"`
	Clauses             []ClauseDTO     `gorm:"type:text;serializer:json" json:"clauses"`
	Blocks              []BlockDTO      `gorm:"type:text;serializer:json" json:"blocks"`
	Deliverables        []string        `gorm:"type:text;serializer:json" json:"deliverables"`
}

// TableName specifies the database table name for templates.
func (TemplateDTO) TableName() string {
	return "order_templates"
}

// ClauseDTO is a template clause inside the JSON column.
type ClauseDTO struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// BlockDTO is a template confirmation block inside the JSON column.
type BlockDTO struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Multiple bool      `json:"multiple"`
	Items    []ItemDTO `json:"items,omitempty"`
}

// ItemDTO is one list option of a template block.
type ItemDTO struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func fromDomain(t *template.Template) TemplateDTO {
	dto := TemplateDTO{
		ID:                  t.ID().Bytes(),
		Name:                t.Name(),
		ProviderID:          t.ProviderID().Bytes(),
		StartingPrice:       t.StartingPrice().Decimal(),
		PaymentMethod:       t.PaymentMethod().String(),
		ContractName:        t.ContractName(),
		ContractDescription: t.ContractDescription(),
		Clauses:             make([]ClauseDTO, 0, len(t.Clauses())),
		Blocks:              make([]BlockDTO, 0, len(t.Blocks())),
		Deliverables:        t.Deliverables(),
	}
	for _, c := range t.Clauses() {
		dto.Clauses = append(dto.Clauses, ClauseDTO{Name: c.Name, Content: c.Content})
	}
	for _, b := range t.Blocks() {
		block := BlockDTO{Name: b.Name, Kind: string(b.Kind), Multiple: b.Multiple}
		for _, it := range b.Items {
			block.Items = append(block.Items, ItemDTO{
				Name:      it.Name,
				UnitPrice: it.UnitPrice.Decimal(),
				Quantity:  it.Quantity,
			})
		}
		dto.Blocks = append(dto.Blocks, block)
	}
	return dto
}

func toDomain(dto TemplateDTO) (*template.Template, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	terms, err := dto.Terms()
	if err != nil {
		return nil, err
	}
	return template.NewTemplate(id, terms)
}

// Terms converts the stored representation to template terms. The template
// import command decodes files in the same shape.
func (dto TemplateDTO) Terms() (template.Terms, error) {
	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return template.Terms{}, err
	}
	price, err := kernel.NewMoney(dto.StartingPrice)
	if err != nil {
		return template.Terms{}, err
	}
	method, err := payment.ParseMethod(dto.PaymentMethod)
	if err != nil {
		return template.Terms{}, err
	}

	terms := template.Terms{
		Name:                dto.Name,
		ProviderID:          providerID,
		StartingPrice:       price,
		PaymentMethod:       method,
		ContractName:        dto.ContractName,
		ContractDescription: dto.ContractDescription,
		Deliverables:        dto.Deliverables,
	}
	for _, c := range dto.Clauses {
		terms.Clauses = append(terms.Clauses, contract.ClauseTerms{Name: c.Name, Content: c.Content})
	}
	for _, b := range dto.Blocks {
		kind, kindErr := confirmation.ParseKind(b.Kind)
		if kindErr != nil {
			return template.Terms{}, kindErr
		}
		block := confirmation.BlockTerms{Name: b.Name, Kind: kind, Multiple: b.Multiple}
		for _, it := range b.Items {
			unit, moneyErr := kernel.NewMoney(it.UnitPrice)
			if moneyErr != nil {
				return template.Terms{}, moneyErr
			}
			block.Items = append(block.Items, confirmation.ItemTerms{
				Name:      it.Name,
				UnitPrice: unit,
				Quantity:  it.Quantity,
			})
		}
		terms.Blocks = append(terms.Blocks, block)
	}
	return terms, nil
}
