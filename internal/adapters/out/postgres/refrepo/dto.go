// Package refrepo provides read-only persistence for reference data: routes,
// shipping services, rate cards, insurance packages, surcharge types and
// branches. Reference data is maintained by an upstream system; this adapter
// only looks rows up and maps them to domain values.
package refrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/refdata"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RouteDTO represents the database structure for routes.
type RouteDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OriginCity         string
	OriginCountry      string
	DestinationCity    string
	DestinationCountry string
	ZoneID             uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for routes.
func (RouteDTO) TableName() string {
	return "routes"
}

// ServiceDTO represents the database structure for shipping services.
type ServiceDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	Multiplier      decimal.Decimal `gorm:"type:numeric"`
	TransitTimeDays int
}

// TableName specifies the database table name for shipping services.
func (ServiceDTO) TableName() string {
	return "shipping_services"
}

// RateCardDTO represents the database structure for rate cards.
type RateCardDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RouteID       uuid.UUID       `gorm:"type:uuid;index"`
	ServiceID     uuid.UUID       `gorm:"type:uuid;index"`
	BaseRatePerKg decimal.Decimal `gorm:"type:numeric"`
	EffectiveDate time.Time
	DeletionDate  *time.Time
}

// TableName specifies the database table name for rate cards.
func (RateCardDTO) TableName() string {
	return "rate_cards"
}

// InsurancePackageDTO represents the database structure for insurance packages.
type InsurancePackageDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	Rate       decimal.Decimal `gorm:"type:numeric"`
	ActiveDate time.Time
}

// TableName specifies the database table name for insurance packages.
func (InsurancePackageDTO) TableName() string {
	return "insurance_packages"
}

// SurchargeTypeDTO represents the database structure for surcharge types.
type SurchargeTypeDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// TableName specifies the database table name for surcharge types.
func (SurchargeTypeDTO) TableName() string {
	return "surcharge_types"
}

// BranchDTO represents the database structure for branches.
type BranchDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string
	Discount decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for branches.
func (BranchDTO) TableName() string {
	return "branches"
}

func routeToDomain(dto RouteDTO) (refdata.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return refdata.Route{}, err
	}

	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return refdata.Route{}, err
	}

	return refdata.NewRoute(
		id,
		dto.OriginCity, dto.OriginCountry,
		dto.DestinationCity, dto.DestinationCountry,
		zoneID,
	)
}

func serviceToDomain(dto ServiceDTO) (refdata.ShippingService, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return refdata.ShippingService{}, err
	}

	return refdata.NewShippingService(id, dto.Name, dto.Multiplier, dto.TransitTimeDays)
}

func rateCardToDomain(dto RateCardDTO) (refdata.RateCard, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return refdata.RateCard{}, err
	}

	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return refdata.RateCard{}, err
	}

	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return refdata.RateCard{}, err
	}

	return refdata.NewRateCard(id, routeID, serviceID, dto.BaseRatePerKg, dto.EffectiveDate, dto.DeletionDate)
}

func insurancePackageToDomain(dto InsurancePackageDTO) (refdata.InsurancePackage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return refdata.InsurancePackage{}, err
	}

	return refdata.NewInsurancePackage(id, dto.Name, dto.Rate, dto.ActiveDate)
}

func surchargeTypeToDomain(dto SurchargeTypeDTO) (refdata.SurchargeType, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return refdata.SurchargeType{}, err
	}

	return refdata.NewSurchargeType(id, dto.Name)
}

func branchToDomain(dto BranchDTO) (refdata.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return refdata.Branch{}, err
	}

	return refdata.NewBranch(id, dto.Name, dto.Discount)
}
