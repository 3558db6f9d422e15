// Package orderrepo provides data transfer objects and mapping functions for
// shipping order persistence. It implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and their
// relational representation: one order row plus goods, surcharge and history
// child rows.
package orderrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Derived pricing is stored denormalized: the totals columns are null while
// the order is unpriced or stale, so read models can tell a priced order from
// a stale one without loading children.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID  uuid.UUID `gorm:"type:uuid;index"`
	RouteID   uuid.UUID `gorm:"type:uuid;index"`
	CarrierID uuid.UUID `gorm:"type:uuid"`
	ServiceID uuid.UUID `gorm:"type:uuid"`

	VolumetricDivisor decimal.Decimal `gorm:"type:numeric"`
	BranchDiscount    decimal.Decimal `gorm:"type:numeric"`

	InsurancePackageID     *uuid.UUID       `gorm:"type:uuid"`
	InsuranceDeclaredValue *decimal.Decimal `gorm:"type:numeric"`
	InsuranceAppliedFee    *decimal.Decimal `gorm:"type:numeric"`
	InsurancePriced        bool

	ShippingFee    *decimal.Decimal `gorm:"type:numeric"`
	InsuranceFee   *decimal.Decimal `gorm:"type:numeric"`
	SurchargeTotal *decimal.Decimal `gorm:"type:numeric"`
	Discount       *decimal.Decimal `gorm:"type:numeric"`
	GrandTotal     *decimal.Decimal `gorm:"type:numeric"`

	Status      int `gorm:"index"`
	StaleScopes uint8
	Version     int

	CreatedAt time.Time
	UpdatedAt time.Time

	Goods      []GoodsItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Surcharges []SurchargeDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History    []HistoryDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "shipping_orders"
}

// GoodsItemDTO represents one goods line of an order.
type GoodsItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	CommodityTypeID uuid.UUID `gorm:"type:uuid"`

	LengthCm decimal.Decimal `gorm:"type:numeric"`
	WidthCm  decimal.Decimal `gorm:"type:numeric"`
	HeightCm decimal.Decimal `gorm:"type:numeric"`
	WeightKg decimal.Decimal `gorm:"type:numeric"`
	Quantity int

	UnitPrice decimal.Decimal `gorm:"type:numeric"`
	IsPriced  bool
}

// TableName specifies the database table name for goods lines.
func (GoodsItemDTO) TableName() string {
	return "order_goods_items"
}

// SurchargeDTO represents one surcharge applied to an order.
type SurchargeDTO struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"`
	OrderID         uuid.UUID       `gorm:"type:uuid;index"`
	SurchargeTypeID uuid.UUID       `gorm:"type:uuid"`
	Amount          decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for surcharges.
func (SurchargeDTO) TableName() string {
	return "order_surcharges"
}

// HistoryDTO represents one lifecycle record of an order.
type HistoryDTO struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	OccurredAt   time.Time
	ActingUserID uuid.UUID `gorm:"type:uuid"`
	Action       string
	FromStatus   int
	ToStatus     int
	Description  string
}

// TableName specifies the database table name for history records.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its database representation,
// children included.
func fromDomain(aggregate *order.ShippingOrder) OrderDTO {
	dto := OrderDTO{
		ID:                aggregate.ID().Bytes(),
		BranchID:          aggregate.BranchID().Bytes(),
		RouteID:           aggregate.RouteID().Bytes(),
		CarrierID:         aggregate.CarrierID().Bytes(),
		ServiceID:         aggregate.ServiceID().Bytes(),
		VolumetricDivisor: aggregate.VolumetricDivisor(),
		BranchDiscount:    aggregate.BranchDiscount(),
		Status:            int(aggregate.Status()),
		StaleScopes:       uint8(aggregate.StaleScopes()),
		Version:           aggregate.Version(),
	}

	if detail := aggregate.Insurance(); detail != nil {
		pkgID := detail.InsurancePackageID().Bytes()
		declared := detail.DeclaredValue()
		fee := detail.Fee()
		dto.InsurancePackageID = &pkgID
		dto.InsuranceDeclaredValue = &declared
		dto.InsuranceAppliedFee = &fee
		dto.InsurancePriced = detail.IsPriced()
	}

	if totals, ok := aggregate.Totals(); ok {
		shippingFee := totals.ShippingFee()
		insuranceFee := totals.InsuranceFee()
		surchargeTotal := totals.SurchargeTotal()
		discount := totals.Discount()
		grandTotal := totals.GrandTotal()
		dto.ShippingFee = &shippingFee
		dto.InsuranceFee = &insuranceFee
		dto.SurchargeTotal = &surchargeTotal
		dto.Discount = &discount
		dto.GrandTotal = &grandTotal
	}

	for _, item := range aggregate.Goods() {
		dto.Goods = append(dto.Goods, GoodsItemDTO{
			ID:              item.ID().Bytes(),
			OrderID:         dto.ID,
			CommodityTypeID: item.CommodityTypeID().Bytes(),
			LengthCm:        item.Dimensions().LengthCm(),
			WidthCm:         item.Dimensions().WidthCm(),
			HeightCm:        item.Dimensions().HeightCm(),
			WeightKg:        item.WeightKg(),
			Quantity:        item.Quantity(),
			UnitPrice:       item.UnitPrice(),
			IsPriced:        item.IsPriced(),
		})
	}

	for _, s := range aggregate.Surcharges() {
		dto.Surcharges = append(dto.Surcharges, SurchargeDTO{
			OrderID:         dto.ID,
			SurchargeTypeID: s.SurchargeTypeID().Bytes(),
			Amount:          s.Amount(),
		})
	}

	for _, h := range aggregate.History() {
		dto.History = append(dto.History, HistoryDTO{
			OrderID:      dto.ID,
			OccurredAt:   h.At(),
			ActingUserID: h.ActingUserID().Bytes(),
			Action:       string(h.Action()),
			FromStatus:   int(h.FromStatus()),
			ToStatus:     int(h.ToStatus()),
			Description:  h.Description(),
		})
	}

	return dto
}

// toDomain converts a database DTO back to an order aggregate.
// Reconstructs the complete aggregate including pricing state and history
// using RestoreShippingOrder.
func toDomain(dto OrderDTO) (*order.ShippingOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}

	goods, err := goodsToDomain(dto.Goods)
	if err != nil {
		return nil, err
	}
	surcharges, err := surchargesToDomain(dto.Surcharges)
	if err != nil {
		return nil, err
	}
	insurance, err := insuranceToDomain(dto)
	if err != nil {
		return nil, err
	}
	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	var totals *order.Totals
	if dto.GrandTotal != nil {
		restored, totalsErr := order.NewTotals(
			*dto.ShippingFee, *dto.InsuranceFee, *dto.SurchargeTotal, *dto.Discount,
		)
		if totalsErr != nil {
			return nil, totalsErr
		}

		totals = &restored
	}

	return order.RestoreShippingOrder(
		id, branchID, routeID, carrierID, serviceID,
		dto.VolumetricDivisor, dto.BranchDiscount,
		goods, surcharges, insurance,
		order.Status(dto.Status), history, totals,
		order.RecalcScope(dto.StaleScopes), dto.Version,
	)
}

func goodsToDomain(dtos []GoodsItemDTO) ([]order.GoodsItem, error) {
	goods := make([]order.GoodsItem, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		commodityTypeID, err := kernel.UUIDFromBytes(dto.CommodityTypeID[:])
		if err != nil {
			return nil, err
		}

		dims, err := kernel.NewDimensions(dto.LengthCm, dto.WidthCm, dto.HeightCm)
		if err != nil {
			return nil, err
		}

		item, err := order.RestoreGoodsItem(
			id, commodityTypeID, dims, dto.WeightKg, dto.Quantity,
			dto.UnitPrice, dto.IsPriced,
		)
		if err != nil {
			return nil, err
		}

		goods = append(goods, item)
	}

	return goods, nil
}

func surchargesToDomain(dtos []SurchargeDTO) ([]order.Surcharge, error) {
	surcharges := make([]order.Surcharge, 0, len(dtos))
	for _, dto := range dtos {
		typeID, err := kernel.UUIDFromBytes(dto.SurchargeTypeID[:])
		if err != nil {
			return nil, err
		}

		s, err := order.NewSurcharge(typeID, dto.Amount)
		if err != nil {
			return nil, err
		}

		surcharges = append(surcharges, s)
	}

	return surcharges, nil
}

func insuranceToDomain(dto OrderDTO) (*order.InsuranceDetail, error) {
	if dto.InsurancePackageID == nil {
		return nil, nil
	}

	pkgID, err := kernel.UUIDFromBytes((*dto.InsurancePackageID)[:])
	if err != nil {
		return nil, err
	}

	fee := decimal.Zero
	if dto.InsuranceAppliedFee != nil {
		fee = *dto.InsuranceAppliedFee
	}

	detail, err := order.RestoreInsuranceDetail(pkgID, *dto.InsuranceDeclaredValue, fee, dto.InsurancePriced)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func historyToDomain(dtos []HistoryDTO) ([]order.HistoryEntry, error) {
	history := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		userID, err := kernel.UUIDFromBytes(dto.ActingUserID[:])
		if err != nil {
			return nil, err
		}

		entry, err := order.NewHistoryEntry(
			dto.OccurredAt, userID, order.Action(dto.Action),
			order.Status(dto.FromStatus), order.Status(dto.ToStatus),
			dto.Description,
		)
		if err != nil {
			return nil, err
		}

		history = append(history, entry)
	}

	return history, nil
}
