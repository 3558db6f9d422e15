package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateShippingOrderCommandIsNotConstructed = errors.New(
		"CreateShippingOrderCommand must be created via NewCreateShippingOrderCommand constructor",
	)
	ErrGoodsAreRequired          = errors.New("at least one goods line is required")
	ErrQuantityIsInvalid         = errors.New("quantity must be at least 1")
	ErrWeightIsInvalid           = errors.New("weight must be greater than 0")
	ErrDimensionsAreInvalid      = errors.New("all dimensions must be greater than 0")
	ErrDivisorIsInvalid          = errors.New("volumetric divisor must be greater than 0")
	ErrSurchargeAmountIsInvalid  = errors.New("surcharge amount must be greater than 0")
	ErrDeclaredValueIsInvalid    = errors.New("declared value must be greater than 0")
)

// GoodsLineInput describes one goods line of a new order: what is shipped,
// its per-unit geometry and weight, and how many units.
type GoodsLineInput struct {
	CommodityTypeID kernel.UUID
	LengthCm        decimal.Decimal
	WidthCm         decimal.Decimal
	HeightCm        decimal.Decimal
	WeightKg        decimal.Decimal
	Quantity        int
}

// SurchargeInput describes one surcharge applied to a new order.
type SurchargeInput struct {
	SurchargeTypeID kernel.UUID
	Amount          decimal.Decimal
}

// InsuranceInput describes the optional insurance selection of a new order.
type InsuranceInput struct {
	InsurancePackageID kernel.UUID
	DeclaredValue      decimal.Decimal
}

// CreateShippingOrderCommand represents a request to create and price a new
// shipping order in one step: the referenced branch, route, carrier and
// service, the goods lines, and the optional surcharges and insurance.
//
// The command validates shape (ids well-formed, goods present, amounts
// positive); referential existence is checked by the handler against the
// reference data inside the transaction.
type CreateShippingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	branchID          kernel.UUID
	routeID           kernel.UUID
	carrierID         kernel.UUID
	serviceID         kernel.UUID
	volumetricDivisor decimal.Decimal
	goods             []GoodsLineInput
	surcharges        []SurchargeInput
	insurance         *InsuranceInput

	guard guard.ConstructorGuard
}

// NewCreateShippingOrderCommand creates a command to register a new shipping
// order. Validates that all ids are valid, the divisor is positive, at least
// one goods line is present and every line carries positive weight, positive
// dimensions and a quantity of at least 1.
func NewCreateShippingOrderCommand(
	orderID, branchID, routeID, carrierID, serviceID kernel.UUID,
	volumetricDivisor decimal.Decimal,
	goods []GoodsLineInput,
	surcharges []SurchargeInput,
	insurance *InsuranceInput,
) (CreateShippingOrderCommand, error) {
	cmd := CreateShippingOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBranchID(branchID),
		cmd.setRouteID(routeID),
		cmd.setCarrierID(carrierID),
		cmd.setServiceID(serviceID),
		cmd.setVolumetricDivisor(volumetricDivisor),
		cmd.setGoods(goods),
		cmd.setSurcharges(surcharges),
		cmd.setInsurance(insurance),
	); err != nil {
		return CreateShippingOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateShippingOrderCommandIsNotConstructed if validation fails.
func (c CreateShippingOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateShippingOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateShippingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BranchID returns the id of the originating branch.
func (c CreateShippingOrderCommand) BranchID() kernel.UUID {
	return c.branchID
}

// RouteID returns the id of the shipping route.
func (c CreateShippingOrderCommand) RouteID() kernel.UUID {
	return c.routeID
}

// CarrierID returns the id of the contracted carrier.
func (c CreateShippingOrderCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// ServiceID returns the id of the selected service level.
func (c CreateShippingOrderCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

// VolumetricDivisor returns the DIM divisor for the order.
func (c CreateShippingOrderCommand) VolumetricDivisor() decimal.Decimal {
	return c.volumetricDivisor
}

// Goods returns the goods lines of the new order.
func (c CreateShippingOrderCommand) Goods() []GoodsLineInput {
	return c.goods
}

// Surcharges returns the surcharges of the new order.
func (c CreateShippingOrderCommand) Surcharges() []SurchargeInput {
	return c.surcharges
}

// Insurance returns the optional insurance selection, nil when uninsured.
func (c CreateShippingOrderCommand) Insurance() *InsuranceInput {
	return c.insurance
}

func (c *CreateShippingOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateShippingOrderCommand) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.branchID = id
	return nil
}

func (c *CreateShippingOrderCommand) setRouteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.routeID = id
	return nil
}

func (c *CreateShippingOrderCommand) setCarrierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.carrierID = id
	return nil
}

func (c *CreateShippingOrderCommand) setServiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.serviceID = id
	return nil
}

func (c *CreateShippingOrderCommand) setVolumetricDivisor(divisor decimal.Decimal) error {
	if !divisor.IsPositive() {
		return ErrDivisorIsInvalid
	}
	c.volumetricDivisor = divisor
	return nil
}

func (c *CreateShippingOrderCommand) setGoods(goods []GoodsLineInput) error {
	if len(goods) == 0 {
		return ErrGoodsAreRequired
	}
	for _, line := range goods {
		if err := line.CommodityTypeID.Validate(); err != nil {
			return err
		}
		if !line.LengthCm.IsPositive() || !line.WidthCm.IsPositive() || !line.HeightCm.IsPositive() {
			return ErrDimensionsAreInvalid
		}
		if !line.WeightKg.IsPositive() {
			return ErrWeightIsInvalid
		}
		if line.Quantity < 1 {
			return ErrQuantityIsInvalid
		}
	}
	c.goods = goods
	return nil
}

func (c *CreateShippingOrderCommand) setSurcharges(surcharges []SurchargeInput) error {
	for _, s := range surcharges {
		if err := s.SurchargeTypeID.Validate(); err != nil {
			return err
		}
		if !s.Amount.IsPositive() {
			return ErrSurchargeAmountIsInvalid
		}
	}
	c.surcharges = surcharges
	return nil
}

func (c *CreateShippingOrderCommand) setInsurance(insurance *InsuranceInput) error {
	if insurance == nil {
		return nil
	}
	if err := insurance.InsurancePackageID.Validate(); err != nil {
		return err
	}
	if !insurance.DeclaredValue.IsPositive() {
		return ErrDeclaredValueIsInvalid
	}
	c.insurance = insurance
	return nil
}
