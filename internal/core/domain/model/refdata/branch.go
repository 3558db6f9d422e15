package refdata

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrBranchIsNotConstructed is returned when a Branch instance was not
// created through the NewBranch constructor.
var ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

// Branch is an originating office of the company. Each branch carries a flat
// discount that is snapshotted onto orders created at that branch and
// subtracted from their grand total.
type Branch struct {
	id       kernel.UUID
	name     string
	discount decimal.Decimal

	isConstructed bool
}

// NewBranch creates a validated Branch.
// The discount is a flat amount and must not be negative; zero means the
// branch grants no discount.
func NewBranch(id kernel.UUID, name string, discount decimal.Decimal) (Branch, error) {
	if err := id.Validate(); err != nil {
		return Branch{}, err
	}
	if name == "" {
		return Branch{}, errs.NewValueIsRequiredError("name")
	}
	if discount.IsNegative() {
		return Branch{}, errs.NewValueIsInvalidErrorWithCause(
			"discount",
			fmt.Errorf("%s is negative", discount),
		)
	}

	return Branch{
		id:            id,
		name:          name,
		discount:      discount,
		isConstructed: true,
	}, nil
}

// Validate ensures the Branch was created via NewBranch.
func (b Branch) Validate() error {
	if !b.isConstructed {
		return ErrBranchIsNotConstructed
	}
	return nil
}

// ID returns the branch's unique identifier.
func (b Branch) ID() kernel.UUID {
	return b.id
}

// Name returns the branch name.
func (b Branch) Name() string {
	return b.name
}

// Discount returns the flat discount granted by the branch.
func (b Branch) Discount() decimal.Decimal {
	return b.discount
}
