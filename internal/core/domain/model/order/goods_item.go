package order

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrGoodsItemIsNotConstructed is returned when a GoodsItem was not created
// through the NewGoodsItem constructor.
var ErrGoodsItemIsNotConstructed = errors.New("GoodsItem must be created via NewGoodsItem constructor")

// GoodsItem is one line of a shipping order: a commodity with physical
// dimensions, actual weight and quantity. Its unit price is derived — the
// pricing service computes it from the chargeable weight and the resolved
// rate, and the aggregate writes it back through ApplyPricing. A goods item
// never exists outside its order.
type GoodsItem struct {
	id              kernel.UUID
	commodityTypeID kernel.UUID
	dims            kernel.Dimensions
	weightKg        decimal.Decimal
	quantity        int

	// unitPrice is zero until the order is priced; IsPriced distinguishes
	// a genuinely free line from an unpriced one.
	unitPrice decimal.Decimal
	isPriced  bool

	isConstructed bool
}

// NewGoodsItem creates a validated GoodsItem.
// The weight must be strictly positive and the quantity at least 1.
// Malformed geometry is rejected by the Dimensions value object before it
// can ever reach the volumetric calculation.
func NewGoodsItem(
	id kernel.UUID,
	commodityTypeID kernel.UUID,
	dims kernel.Dimensions,
	weightKg decimal.Decimal,
	quantity int,
) (GoodsItem, error) {
	if err := errors.Join(
		id.Validate(),
		commodityTypeID.Validate(),
		dims.Validate(),
	); err != nil {
		return GoodsItem{}, err
	}

	if !weightKg.IsPositive() {
		return GoodsItem{}, errs.NewValueIsInvalidErrorWithCause(
			"weightKg",
			fmt.Errorf("%s is not greater than 0", weightKg),
		)
	}

	if quantity < 1 {
		return GoodsItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return GoodsItem{
		id:              id,
		commodityTypeID: commodityTypeID,
		dims:            dims,
		weightKg:        weightKg,
		quantity:        quantity,
		isConstructed:   true,
	}, nil
}

// RestoreGoodsItem reconstructs a GoodsItem from persistence, including its
// previously computed unit price.
func RestoreGoodsItem(
	id kernel.UUID,
	commodityTypeID kernel.UUID,
	dims kernel.Dimensions,
	weightKg decimal.Decimal,
	quantity int,
	unitPrice decimal.Decimal,
	isPriced bool,
) (GoodsItem, error) {
	item, err := NewGoodsItem(id, commodityTypeID, dims, weightKg, quantity)
	if err != nil {
		return GoodsItem{}, err
	}

	if isPriced {
		if unitPrice.IsNegative() {
			return GoodsItem{}, errs.NewValueIsInvalidErrorWithCause(
				"unitPrice",
				fmt.Errorf("%s is negative", unitPrice),
			)
		}
		item.unitPrice = unitPrice
		item.isPriced = true
	}

	return item, nil
}

// Validate ensures the GoodsItem was created via NewGoodsItem.
func (g GoodsItem) Validate() error {
	if !g.isConstructed {
		return ErrGoodsItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (g GoodsItem) ID() kernel.UUID {
	return g.id
}

// CommodityTypeID returns the id of the commodity type being shipped.
func (g GoodsItem) CommodityTypeID() kernel.UUID {
	return g.commodityTypeID
}

// Dimensions returns the package geometry of one unit.
func (g GoodsItem) Dimensions() kernel.Dimensions {
	return g.dims
}

// WeightKg returns the actual weight of one unit in kilograms.
func (g GoodsItem) WeightKg() decimal.Decimal {
	return g.weightKg
}

// Quantity returns the number of units on the line.
func (g GoodsItem) Quantity() int {
	return g.quantity
}

// UnitPrice returns the derived price of one unit.
// Meaningful only when IsPriced reports true.
func (g GoodsItem) UnitPrice() decimal.Decimal {
	return g.unitPrice
}

// IsPriced reports whether the line carries a computed unit price.
func (g GoodsItem) IsPriced() bool {
	return g.isPriced
}

// LineTotal returns unitPrice × quantity for a priced line.
func (g GoodsItem) LineTotal() decimal.Decimal {
	return g.unitPrice.Mul(decimal.NewFromInt(int64(g.quantity)))
}
