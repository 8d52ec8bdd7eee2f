package orderrepo

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with every owned record.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The order row is only written when its stored
// version still equals the aggregate's; owned records are then replaced and
// history rows appended.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	header := dto
	header.Version = aggregate.Version() + 1
	result := db.Model(&header).
		Where("version = ?", aggregate.Version()).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&header)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.conflictOrMissing(ctx, aggregate)
	}

	if err := r.replaceOwned(db, dto); err != nil {
		return err
	}

	aggregate.MarkPersisted(header.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) conflictOrMissing(ctx context.Context, aggregate *order.Order) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError("order", aggregate.ID().String(), aggregate.Version())
}

// replaceOwned rewrites the contract, cards, items, files and blocks of the
// order and appends history records that are not stored yet.
func (r *GormOrderRepository) replaceOwned(db *gorm.DB, dto OrderDTO) error {
	if err := deleteOwned(db, dto.ID, false); err != nil {
		return err
	}

	if dto.Contract != nil {
		if err := db.Create(dto.Contract).Error; err != nil {
			return err
		}
	}
	if len(dto.Cards) > 0 {
		if err := db.Create(&dto.Cards).Error; err != nil {
			return err
		}
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}
	if len(dto.Blocks) > 0 {
		if err := db.Create(&dto.Blocks).Error; err != nil {
			return err
		}
	}
	if len(dto.History) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.History).Error; err != nil {
			return err
		}
	}
	return nil
}

// deleteOwned removes the rows owned by an order, children first. History is
// kept unless withHistory is set.
func deleteOwned(db *gorm.DB, orderID uuid.UUID, withHistory bool) error {
	steps := []struct {
		model any
		where string
	}{
		{&DeliveryFileDTO{}, "item_id IN (SELECT id FROM delivery_items WHERE order_id = ?)"},
		{&DeliveryItemDTO{}, "order_id = ?"},
		{&ClauseDTO{}, "contract_id IN (SELECT id FROM contracts WHERE order_id = ?)"},
		{&ContractDTO{}, "order_id = ?"},
		{&PaymentCardDTO{}, "order_id = ?"},
		{&ConfirmationDTO{}, "order_id = ?"},
	}
	if withHistory {
		steps = append(steps, struct {
			model any
			where string
		}{&HistoryRecordDTO{}, "order_id = ?"})
	}

	for _, step := range steps {
		if err := db.Where(step.where, orderID).Delete(step.model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the order and every row it owns.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	id := aggregate.ID().Bytes()
	if err := deleteOwned(db, id, true); err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByContract retrieves the order owning a contract.
func (r *GormOrderRepository) GetByContract(ctx context.Context, contractID kernel.UUID) (*order.Order, error) {
	return r.getOwner(ctx, "contract", contractID,
		"SELECT order_id FROM contracts WHERE id = ?")
}

// GetByPaymentCard retrieves the order owning a payment card.
func (r *GormOrderRepository) GetByPaymentCard(ctx context.Context, cardID kernel.UUID) (*order.Order, error) {
	return r.getOwner(ctx, "payment card", cardID,
		"SELECT order_id FROM payment_cards WHERE id = ?")
}

// GetByDeliveryItem retrieves the order owning a delivery item.
func (r *GormOrderRepository) GetByDeliveryItem(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	return r.getOwner(ctx, "delivery item", itemID,
		"SELECT order_id FROM delivery_items WHERE id = ?")
}

// GetByDeliveryFile retrieves the order owning a delivery file.
func (r *GormOrderRepository) GetByDeliveryFile(ctx context.Context, fileID kernel.UUID) (*order.Order, error) {
	return r.getOwner(ctx, "delivery file", fileID,
		`SELECT i.order_id FROM delivery_files f
		JOIN delivery_items i ON i.id = f.item_id
		WHERE f.id = ?`)
}

// GetByConfirmationBlock retrieves the order owning a confirmation block.
func (r *GormOrderRepository) GetByConfirmationBlock(ctx context.Context, blockID kernel.UUID) (*order.Order, error) {
	return r.getOwner(ctx, "confirmation block", blockID,
		"SELECT order_id FROM confirmation_blocks WHERE id = ?")
}

// GetByFileKey retrieves the order that references a stored receipt, invoice or
// delivery file.
func (r *GormOrderRepository) GetByFileKey(ctx context.Context, key string) (*order.Order, error) {
	if key == "" {
		return nil, errs.NewValueIsRequiredError("key")
	}
	return r.scanOwner(ctx, "stored file", key,
		`SELECT order_id FROM payment_cards WHERE receipt_key = ? OR invoice_key = ?
		UNION ALL
		SELECT i.order_id FROM delivery_files f
		JOIN delivery_items i ON i.id = f.item_id
		WHERE f.file_key = ?
		LIMIT 1`, key, key, key)
}

func (r *GormOrderRepository) getOwner(ctx context.Context, what string, id kernel.UUID, query string) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.scanOwner(ctx, what, id.String(), query, id.Bytes())
}

func (r *GormOrderRepository) scanOwner(ctx context.Context, what, ref, query string, args ...any) (*order.Order, error) {
	var raw uuid.UUID
	if err := r.db.WithContext(ctx).Raw(query, args...).Row().Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError(what, ref)
		}
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, orderID)
}

// GetAllInStatus retrieves all orders in status, oldest first.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.preloaded(ctx).Order("created_at").Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Contract.Clauses").
		Preload("Cards").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Items.Files", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at") }).
		Preload("Blocks").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("at") })
}
