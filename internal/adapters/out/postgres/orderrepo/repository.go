package orderrepo

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
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

// Add saves a new order to the database, children included.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.ShippingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The order row is updated
// only when its stored version matches the version the aggregate was loaded
// with; a mismatch means a concurrent writer got there first and yields
// VersionIsInvalidError. Child rows are replaced wholesale, which keeps the
// write path free of per-line diffing.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.ShippingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Omit("id", "created_at", "Goods", "Surcharges", "History").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order")
	}

	if err := r.replaceChildren(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) replaceChildren(ctx context.Context, dto OrderDTO) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("order_id = ?", dto.ID).Delete(&GoodsItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Goods) > 0 {
		if err := db.Create(&dto.Goods).Error; err != nil {
			return err
		}
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&SurchargeDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Surcharges) > 0 {
		if err := db.Create(&dto.Surcharges).Error; err != nil {
			return err
		}
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&HistoryDTO{}).Error; err != nil {
		return err
	}
	if len(dto.History) > 0 {
		if err := db.Create(&dto.History).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves an order by ID with all its children.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ShippingOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves all orders currently in the given status.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.ShippingOrder, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.preloaded(ctx).Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	return r.allToDomain(dtos)
}

// GetAllDraftsOlderThan retrieves all draft orders created before the cutoff.
func (r *GormOrderRepository) GetAllDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]*order.ShippingOrder, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Find(&dtos, "status = ? AND created_at < ?", int(order.Draft), cutoff).Error
	if err != nil {
		return nil, err
	}

	return r.allToDomain(dtos)
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Goods").
		Preload("Surcharges").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at, id")
		})
}

func (r *GormOrderRepository) allToDomain(dtos []OrderDTO) ([]*order.ShippingOrder, error) {
	orders := make([]*order.ShippingOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
