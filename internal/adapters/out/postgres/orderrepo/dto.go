// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// The order aggregate spans eight tables: the order row, its contract and clauses, payment
// cards, delivery items and their files, confirmation blocks and the status history.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number        string          `gorm:"type:varchar(12);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Type          string          `gorm:"type:varchar(64)"`
	RequesterID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProviderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	TemplateID    uuid.UUID       `gorm:"type:uuid"`
	Status        int             `gorm:"type:int;not null;index"`
	Price         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	StartingPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(32);not null"`
	Deliverables  []string        `gorm:"type:text;serializer:json"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime:false"`

	Contract *ContractDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Cards    []PaymentCardDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Items    []DeliveryItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Blocks   []ConfirmationDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History  []HistoryRecordDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// SignatureDTO is one embedded signature slot.
type SignatureDTO struct {
	Signed   bool   `gorm:"not null;default:false"`
	URL      string `gorm:"type:varchar(1024)"`
	SignedAt *time.Time
}

// ChangeRequestDTO is the embedded pending change request. RequestedBy is empty
// when no change is pending.
type ChangeRequestDTO struct {
	Reason       string `gorm:"type:text"`
	ProposedText string `gorm:"type:text"`
	RequestedBy  string `gorm:"type:varchar(16)"`
	RequestedAt  *time.Time
}

// ContractDTO represents the one-to-one contract of an order.
type ContractDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      int             `gorm:"type:int;not null"`
	RevisedAt   *time.Time

	Requester SignatureDTO     `gorm:"embedded;embeddedPrefix:requester_"`
	Provider  SignatureDTO     `gorm:"embedded;embeddedPrefix:provider_"`
	Change    ChangeRequestDTO `gorm:"embedded;embeddedPrefix:change_"`

	// The snapshot columns hold the signatures captured when the pending change was requested.
	HasSnapshot       bool         `gorm:"not null;default:false"`
	SnapshotRequester SignatureDTO `gorm:"embedded;embeddedPrefix:snapshot_requester_"`
	SnapshotProvider  SignatureDTO `gorm:"embedded;embeddedPrefix:snapshot_provider_"`

	Clauses []ClauseDTO `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for contracts.
func (ContractDTO) TableName() string {
	return "contracts"
}

// ClauseDTO represents one contract clause.
type ClauseDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Content    string    `gorm:"type:text"`
	Sort       int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for contract clauses.
func (ClauseDTO) TableName() string {
	return "contract_clauses"
}

// FileRefDTO is an embedded file storage reference. Key is empty when nothing is attached.
type FileRefDTO struct {
	Key  string `gorm:"type:varchar(512)"`
	Name string `gorm:"type:varchar(255)"`
	URL  string `gorm:"type:varchar(1024)"`
}

// PaymentCardDTO represents one installment of the payment ledger.
type PaymentCardDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Installment int             `gorm:"type:int;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      int             `gorm:"type:int;not null;index"`
	DueDate     *time.Time
	Receipt     FileRefDTO `gorm:"embedded;embeddedPrefix:receipt_"`
	Invoice     FileRefDTO `gorm:"embedded;embeddedPrefix:invoice_"`
	PaidAt      *time.Time
	Extra       bool `gorm:"not null;default:false"`
}

// TableName specifies the database table name for payment cards.
func (PaymentCardDTO) TableName() string {
	return "payment_cards"
}

// DeliveryItemDTO represents one expected deliverable.
type DeliveryItemDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"type:uuid;not null;index"`
	Position            int       `gorm:"type:int;not null"`
	Description         string    `gorm:"type:text;not null"`
	Status              int       `gorm:"type:int;not null"`
	ModificationComment string    `gorm:"type:text"`
	DeliveredAt         *time.Time
	UpdatedAt           time.Time `gorm:"not null;autoUpdateTime:false"`
	IsFinal             bool      `gorm:"not null;default:false"`

	Files []DeliveryFileDTO `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery items.
func (DeliveryItemDTO) TableName() string {
	return "delivery_items"
}

// DeliveryFileDTO represents a file attached to a delivery item.
type DeliveryFileDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ItemID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Ref        FileRefDTO `gorm:"embedded;embeddedPrefix:file_"`
	UploadedAt time.Time  `gorm:"not null"`
}

// TableName specifies the database table name for delivery files.
func (DeliveryFileDTO) TableName() string {
	return "delivery_files"
}

// ListItemDTO is one list option, stored inside the block row as JSON.
type ListItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Selected  bool            `json:"selected"`
}

// ConfirmationDTO represents one confirmation block.
type ConfirmationDTO struct {
	ID       uuid.UUID     `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	Name     string        `gorm:"type:varchar(255);not null"`
	Kind     string        `gorm:"type:varchar(8);not null"`
	Multiple bool          `gorm:"not null;default:false"`
	Sort     int           `gorm:"type:int;not null"`
	Content  string        `gorm:"type:text"`
	Items    []ListItemDTO `gorm:"type:text;serializer:json"`
}

// TableName specifies the database table name for confirmation blocks.
func (ConfirmationDTO) TableName() string {
	return "confirmation_blocks"
}

// HistoryRecordDTO represents one append-only status history entry.
type HistoryRecordDTO struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	FromStatus int              `gorm:"type:int;not null"`
	ToStatus   int              `gorm:"type:int;not null"`
	Reason     string           `gorm:"type:text"`
	Price      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	ActorID    *uuid.UUID       `gorm:"type:uuid"`
	ActorRole  string           `gorm:"type:varchar(16)"`
	At         time.Time        `gorm:"not null;index"`
}

// TableName specifies the database table name for history records.
func (HistoryRecordDTO) TableName() string {
	return "order_history"
}

// Models lists every table of the order aggregate in migration order.
func Models() []any {
	return []any{
		&OrderDTO{},
		&ContractDTO{},
		&ClauseDTO{},
		&PaymentCardDTO{},
		&DeliveryItemDTO{},
		&DeliveryFileDTO{},
		&ConfirmationDTO{},
		&HistoryRecordDTO{},
	}
}
