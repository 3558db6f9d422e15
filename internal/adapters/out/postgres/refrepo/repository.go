package refrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/refdata"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReferenceRepository implements ReferenceRepository using GORM.
type GormReferenceRepository struct {
	db *gorm.DB
}

// NewGormReferenceRepository creates a new GORM reference data repository.
func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

// GetRoute retrieves a route by ID.
func (r *GormReferenceRepository) GetRoute(ctx context.Context, id kernel.UUID) (refdata.Route, error) {
	var dto RouteDTO
	if err := r.first(ctx, &dto, "route", id); err != nil {
		return refdata.Route{}, err
	}

	return routeToDomain(dto)
}

// GetService retrieves a shipping service by ID.
func (r *GormReferenceRepository) GetService(ctx context.Context, id kernel.UUID) (refdata.ShippingService, error) {
	var dto ServiceDTO
	if err := r.first(ctx, &dto, "service", id); err != nil {
		return refdata.ShippingService{}, err
	}

	return serviceToDomain(dto)
}

// GetRateCards retrieves every rate card registered for the route and
// service, regardless of validity window.
func (r *GormReferenceRepository) GetRateCards(ctx context.Context, routeID, serviceID kernel.UUID) ([]refdata.RateCard, error) {
	if err := errors.Join(routeID.Validate(), serviceID.Validate()); err != nil {
		return nil, err
	}

	var dtos []RateCardDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "route_id = ? AND service_id = ?", routeID.Bytes(), serviceID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return rateCardsToDomain(dtos)
}

// GetAllRateCards retrieves every rate card in the system.
func (r *GormReferenceRepository) GetAllRateCards(ctx context.Context) ([]refdata.RateCard, error) {
	var dtos []RateCardDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return rateCardsToDomain(dtos)
}

// GetInsurancePackage retrieves an insurance package by ID.
func (r *GormReferenceRepository) GetInsurancePackage(ctx context.Context, id kernel.UUID) (refdata.InsurancePackage, error) {
	var dto InsurancePackageDTO
	if err := r.first(ctx, &dto, "insurance package", id); err != nil {
		return refdata.InsurancePackage{}, err
	}

	return insurancePackageToDomain(dto)
}

// GetSurchargeType retrieves a surcharge type by ID.
func (r *GormReferenceRepository) GetSurchargeType(ctx context.Context, id kernel.UUID) (refdata.SurchargeType, error) {
	var dto SurchargeTypeDTO
	if err := r.first(ctx, &dto, "surcharge type", id); err != nil {
		return refdata.SurchargeType{}, err
	}

	return surchargeTypeToDomain(dto)
}

// GetBranch retrieves a branch by ID.
func (r *GormReferenceRepository) GetBranch(ctx context.Context, id kernel.UUID) (refdata.Branch, error) {
	var dto BranchDTO
	if err := r.first(ctx, &dto, "branch", id); err != nil {
		return refdata.Branch{}, err
	}

	return branchToDomain(dto)
}

func (r *GormReferenceRepository) first(ctx context.Context, dto any, name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).First(dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(name, id.String())
	}

	return err
}

func rateCardsToDomain(dtos []RateCardDTO) ([]refdata.RateCard, error) {
	cards := make([]refdata.RateCard, 0, len(dtos))
	for _, dto := range dtos {
		card, err := rateCardToDomain(dto)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}
