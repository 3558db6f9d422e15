package order

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrShippingOrderIsNotConstructed is returned when a ShippingOrder was
	// not created through the NewShippingOrder factory method.
	ErrShippingOrderIsNotConstructed = errors.New("ShippingOrder must be created via NewShippingOrder constructor")

	// ErrOrderIsNotEditable is returned when a pricing input is mutated on
	// an order that already left Draft. Approved orders are priced facts;
	// changing their inputs would silently invalidate the agreed total.
	ErrOrderIsNotEditable = errors.New("order pricing inputs can only change while the order is in Draft status")

	// ErrOrderIsNotPriced is returned when an order is confirmed while its
	// totals are missing or stale. A partially priced order must never
	// advance through the lifecycle.
	ErrOrderIsNotPriced = errors.New("order must be fully priced before it can be confirmed")

	// ErrGoodsItemNotFound is returned when a goods line referenced by id
	// does not exist on the order.
	ErrGoodsItemNotFound = errors.New("goods item not found on order")
)

// LinePrice carries the unit price computed for one goods line.
type LinePrice struct {
	GoodsItemID kernel.UUID
	UnitPrice   decimal.Decimal
}

// PricingResult is the complete outcome of one pricing pass over an order:
// a unit price for every goods line plus the insurance fee (zero when the
// order carries no insurance). The pricing service produces it; the
// aggregate applies it atomically through ApplyPricing. Pricing is
// all-or-nothing: there is no way to apply a subset of line prices.
type PricingResult struct {
	LinePrices   []LinePrice
	InsuranceFee decimal.Decimal
}

// ShippingOrder is the aggregate root of the rating and lifecycle engine.
// It owns its goods lines, surcharges and insurance detail (their lifetime
// is the order's lifetime) and references reference data — branch, route,
// carrier, service — by id only.
//
// ShippingOrder follows these invariants:
//   - Identifiers and the volumetric divisor are validated at construction
//   - Derived values (unit prices, insurance fee, totals) are written only
//     via ApplyPricing and are recomputed whenever a pricing input changes
//   - Status transitions follow the lifecycle state machine; every change
//     appends exactly one history entry
//   - Pricing inputs are frozen once the order leaves Draft
//
// The stale-scope set (see RecalcScope) makes the recomputation dependency
// graph explicit: each mutator declares which derived sections it
// invalidates, and IsPriced is false until a pricing pass clears them.
type ShippingOrder struct {
	id        kernel.UUID
	branchID  kernel.UUID
	routeID   kernel.UUID
	carrierID kernel.UUID
	serviceID kernel.UUID

	// volumetricDivisor converts cm³ to DIM kilograms; commonly 5000 or
	// 6000 depending on the carrier contract. Carried per order, never
	// hard-coded.
	volumetricDivisor decimal.Decimal

	// branchDiscount is snapshotted from the originating branch at
	// creation so later branch edits do not retroactively reprice orders.
	branchDiscount decimal.Decimal

	goods      []GoodsItem
	surcharges []Surcharge
	insurance  *InsuranceDetail

	status  Status
	history []HistoryEntry

	totals      *Totals
	staleScopes RecalcScope

	// version supports optimistic locking of transitions: the repository
	// refuses to persist an order whose stored version moved on.
	version int

	isConstructed bool
}

// NewShippingOrder creates a new order in Draft status with no goods lines.
// All referenced ids must be valid, the volumetric divisor strictly positive
// and the branch discount non-negative. The new order is entirely stale:
// every pricing scope is marked until the first pricing pass runs.
func NewShippingOrder(
	id, branchID, routeID, carrierID, serviceID kernel.UUID,
	volumetricDivisor decimal.Decimal,
	branchDiscount decimal.Decimal,
) (*ShippingOrder, error) {
	o := &ShippingOrder{
		status:        Draft,
		staleScopes:   ScopeLinePricing | ScopeInsurance | ScopeTotals,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBranchID(branchID),
		o.setRouteID(routeID),
		o.setCarrierID(carrierID),
		o.setServiceID(serviceID),
		o.setVolumetricDivisor(volumetricDivisor),
		o.setBranchDiscount(branchDiscount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreShippingOrder reconstructs an order from persistence.
// Used by repositories only; it revalidates every component the same way
// the constructors do.
func RestoreShippingOrder(
	id, branchID, routeID, carrierID, serviceID kernel.UUID,
	volumetricDivisor decimal.Decimal,
	branchDiscount decimal.Decimal,
	goods []GoodsItem,
	surcharges []Surcharge,
	insurance *InsuranceDetail,
	status Status,
	history []HistoryEntry,
	totals *Totals,
	staleScopes RecalcScope,
	version int,
) (*ShippingOrder, error) {
	o, err := NewShippingOrder(id, branchID, routeID, carrierID, serviceID, volumetricDivisor, branchDiscount)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	for _, item := range goods {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}
	for _, s := range surcharges {
		if err = s.Validate(); err != nil {
			return nil, err
		}
	}
	if insurance != nil {
		if err = insurance.Validate(); err != nil {
			return nil, err
		}
	}
	for _, h := range history {
		if err = h.Validate(); err != nil {
			return nil, err
		}
	}
	if totals != nil {
		if err = totals.Validate(); err != nil {
			return nil, err
		}
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError(fmt.Sprintf("order version %d", version))
	}

	o.goods = goods
	o.surcharges = surcharges
	o.insurance = insurance
	o.status = status
	o.history = history
	o.totals = totals
	o.staleScopes = staleScopes
	o.version = version
	return o, nil
}

// Validate ensures the ShippingOrder was created through its constructor.
func (o *ShippingOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrShippingOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *ShippingOrder) IsEqual(other *ShippingOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *ShippingOrder) ID() kernel.UUID {
	return o.id
}

// BranchID returns the id of the originating branch.
func (o *ShippingOrder) BranchID() kernel.UUID {
	return o.branchID
}

// RouteID returns the id of the shipping route.
func (o *ShippingOrder) RouteID() kernel.UUID {
	return o.routeID
}

// CarrierID returns the id of the carrier contracted for the shipment.
func (o *ShippingOrder) CarrierID() kernel.UUID {
	return o.carrierID
}

// ServiceID returns the id of the selected service level.
func (o *ShippingOrder) ServiceID() kernel.UUID {
	return o.serviceID
}

// VolumetricDivisor returns the order's DIM divisor.
func (o *ShippingOrder) VolumetricDivisor() decimal.Decimal {
	return o.volumetricDivisor
}

// BranchDiscount returns the flat discount snapshotted from the branch.
func (o *ShippingOrder) BranchDiscount() decimal.Decimal {
	return o.branchDiscount
}

// Goods returns a copy of the order's goods lines.
func (o *ShippingOrder) Goods() []GoodsItem {
	out := make([]GoodsItem, len(o.goods))
	copy(out, o.goods)
	return out
}

// Surcharges returns a copy of the order's surcharges.
func (o *ShippingOrder) Surcharges() []Surcharge {
	out := make([]Surcharge, len(o.surcharges))
	copy(out, o.surcharges)
	return out
}

// Insurance returns the order's insurance detail, or nil when uninsured.
func (o *ShippingOrder) Insurance() *InsuranceDetail {
	if o.insurance == nil {
		return nil
	}
	detail := *o.insurance
	return &detail
}

// Status returns the current lifecycle status.
func (o *ShippingOrder) Status() Status {
	return o.status
}

// History returns a copy of the order's status-change log.
func (o *ShippingOrder) History() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// Totals returns the money projection and whether it has been computed.
func (o *ShippingOrder) Totals() (Totals, bool) {
	if o.totals == nil {
		return Totals{}, false
	}
	return *o.totals, true
}

// StaleScopes returns the set of derived sections awaiting recomputation.
func (o *ShippingOrder) StaleScopes() RecalcScope {
	return o.staleScopes
}

// Version returns the optimistic-lock version of the aggregate.
func (o *ShippingOrder) Version() int {
	return o.version
}

// IsPriced reports whether the order carries complete, current totals:
// totals computed, no stale scope, and every goods line priced.
func (o *ShippingOrder) IsPriced() bool {
	if o.totals == nil || !o.staleScopes.IsEmpty() {
		return false
	}
	for _, item := range o.goods {
		if !item.IsPriced() {
			return false
		}
	}
	return true
}

// TotalWeightKg returns the actual weight of the whole order:
// Σ line weight × quantity. Derived on demand, never stored.
func (o *ShippingOrder) TotalWeightKg() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.goods {
		total = total.Add(item.WeightKg().Mul(decimal.NewFromInt(int64(item.Quantity()))))
	}
	return total
}

// TotalVolumeM3 returns the volume of the whole order in cubic meters:
// Σ line volume × quantity. Derived on demand, never stored.
func (o *ShippingOrder) TotalVolumeM3() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.goods {
		total = total.Add(item.Dimensions().VolumeM3().Mul(decimal.NewFromInt(int64(item.Quantity()))))
	}
	return total
}

// ChangeRoute replaces the order's route and invalidates line pricing.
func (o *ShippingOrder) ChangeRoute(routeID kernel.UUID) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if err := routeID.Validate(); err != nil {
		return err
	}
	o.routeID = routeID
	o.markStale(ScopeLinePricing | ScopeTotals)
	return nil
}

// ChangeService replaces the service level and invalidates line pricing.
func (o *ShippingOrder) ChangeService(serviceID kernel.UUID) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if err := serviceID.Validate(); err != nil {
		return err
	}
	o.serviceID = serviceID
	o.markStale(ScopeLinePricing | ScopeTotals)
	return nil
}

// ChangeVolumetricDivisor replaces the DIM divisor and invalidates line pricing.
func (o *ShippingOrder) ChangeVolumetricDivisor(divisor decimal.Decimal) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if err := o.setVolumetricDivisor(divisor); err != nil {
		return err
	}
	o.markStale(ScopeLinePricing | ScopeTotals)
	return nil
}

// AddGoodsItem appends a goods line and invalidates line pricing.
func (o *ShippingOrder) AddGoodsItem(item GoodsItem) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	o.goods = append(o.goods, item)
	o.markStale(ScopeLinePricing | ScopeTotals)
	return nil
}

// UpdateGoodsItem replaces the goods line with the same id and invalidates
// line pricing. Returns ErrGoodsItemNotFound when no line matches.
func (o *ShippingOrder) UpdateGoodsItem(item GoodsItem) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	for i, existing := range o.goods {
		if existing.ID().IsEqual(item.ID()) {
			o.goods[i] = item
			o.markStale(ScopeLinePricing | ScopeTotals)
			return nil
		}
	}
	return ErrGoodsItemNotFound
}

// RemoveGoodsItem deletes the goods line with the given id and invalidates
// line pricing. Returns ErrGoodsItemNotFound when no line matches.
func (o *ShippingOrder) RemoveGoodsItem(id kernel.UUID) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	for i, existing := range o.goods {
		if existing.ID().IsEqual(id) {
			o.goods = append(o.goods[:i], o.goods[i+1:]...)
			o.markStale(ScopeLinePricing | ScopeTotals)
			return nil
		}
	}
	return ErrGoodsItemNotFound
}

// SetInsurance attaches or replaces the insurance detail and invalidates
// the insurance fee.
func (o *ShippingOrder) SetInsurance(detail InsuranceDetail) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if err := detail.Validate(); err != nil {
		return err
	}
	o.insurance = &detail
	o.markStale(ScopeInsurance | ScopeTotals)
	return nil
}

// ClearInsurance removes the insurance detail and invalidates the fee.
func (o *ShippingOrder) ClearInsurance() error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	o.insurance = nil
	o.markStale(ScopeInsurance | ScopeTotals)
	return nil
}

// AddSurcharge appends a surcharge and invalidates the totals.
func (o *ShippingOrder) AddSurcharge(s Surcharge) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	o.surcharges = append(o.surcharges, s)
	o.markStale(ScopeTotals)
	return nil
}

// RemoveSurcharge deletes the first surcharge of the given type and
// invalidates the totals.
func (o *ShippingOrder) RemoveSurcharge(surchargeTypeID kernel.UUID) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	for i, existing := range o.surcharges {
		if existing.SurchargeTypeID().IsEqual(surchargeTypeID) {
			o.surcharges = append(o.surcharges[:i], o.surcharges[i+1:]...)
			o.markStale(ScopeTotals)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("surcharge", surchargeTypeID.String())
}

// ChangeBranchDiscount replaces the snapshotted discount and invalidates
// the totals.
func (o *ShippingOrder) ChangeBranchDiscount(discount decimal.Decimal) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if err := o.setBranchDiscount(discount); err != nil {
		return err
	}
	o.markStale(ScopeTotals)
	return nil
}

// ApplyPricing atomically installs the outcome of one pricing pass: every
// goods line receives its unit price, the insurance fee is set, and the
// totals projection is rebuilt from the applied components. The pass is
// all-or-nothing — any inconsistency (missing line price, unknown line,
// negative value, fee for a missing insurance) rejects the whole result and
// leaves the order untouched.
func (o *ShippingOrder) ApplyPricing(result PricingResult) error {
	if len(o.goods) == 0 {
		return errs.NewValueIsRequiredError("goods")
	}

	priced, err := o.pricedGoods(result.LinePrices)
	if err != nil {
		return err
	}

	if result.InsuranceFee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"insuranceFee",
			fmt.Errorf("%s is negative", result.InsuranceFee),
		)
	}
	if o.insurance == nil && !result.InsuranceFee.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause(
			"insuranceFee",
			errors.New("fee computed for an order without insurance"),
		)
	}

	shippingFee := decimal.Zero
	for _, item := range priced {
		shippingFee = shippingFee.Add(item.LineTotal())
	}

	surchargeTotal := decimal.Zero
	for _, s := range o.surcharges {
		surchargeTotal = surchargeTotal.Add(s.Amount())
	}

	totals, err := NewTotals(shippingFee, result.InsuranceFee, surchargeTotal, o.branchDiscount)
	if err != nil {
		return err
	}

	o.goods = priced
	if o.insurance != nil {
		o.insurance.fee = result.InsuranceFee
		o.insurance.isPriced = true
	}
	o.totals = &totals
	o.staleScopes = 0
	return nil
}

// pricedGoods builds the new goods slice with unit prices applied, without
// mutating the order. Every line must be priced exactly once.
func (o *ShippingOrder) pricedGoods(linePrices []LinePrice) ([]GoodsItem, error) {
	if len(linePrices) != len(o.goods) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"linePrices",
			fmt.Errorf("%d prices for %d goods lines", len(linePrices), len(o.goods)),
		)
	}

	priced := make([]GoodsItem, len(o.goods))
	copy(priced, o.goods)

	seen := make(map[kernel.UUID]bool, len(linePrices))
	for _, lp := range linePrices {
		if lp.UnitPrice.IsNegative() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"unitPrice",
				fmt.Errorf("%s is negative", lp.UnitPrice),
			)
		}
		if seen[lp.GoodsItemID] {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"linePrices",
				fmt.Errorf("duplicate price for goods item %s", lp.GoodsItemID),
			)
		}
		seen[lp.GoodsItemID] = true

		found := false
		for i, item := range priced {
			if item.ID().IsEqual(lp.GoodsItemID) {
				priced[i].unitPrice = lp.UnitPrice
				priced[i].isPriced = true
				found = true
				break
			}
		}
		if !found {
			return nil, errs.NewObjectNotFoundError("goodsItem", lp.GoodsItemID.String())
		}
	}

	return priced, nil
}

// Transition applies a lifecycle action to the order: one state change plus
// one history append, or a typed failure with no effect. Confirming a Draft
// additionally requires the order to be fully priced, so an unpriced or
// stale order can never enter the approval flow.
func (o *ShippingOrder) Transition(action Action, actingUserID kernel.UUID, at time.Time) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	if o.status == Draft && action == ActionConfirm && !o.IsPriced() {
		return ErrOrderIsNotPriced
	}

	newStatus, err := o.status.Apply(action)
	if err != nil {
		return err
	}

	entry, err := NewHistoryEntry(at, actingUserID, action, o.status, newStatus, action.Description())
	if err != nil {
		return err
	}

	o.status = newStatus
	o.history = append(o.history, entry)
	return nil
}

// MoveOnBoard applies a kanban column drop under the given policy.
//
// Under BoardEnforceLifecycle the drop must correspond to a legal lifecycle
// action (the primary action or cancel); otherwise the move is rejected with
// IllegalBoardMoveError and the order keeps its column. Under BoardFreeMove
// any valid target column is accepted for a non-terminal order, and the move
// is recorded in history with the board-move action.
func (o *ShippingOrder) MoveOnBoard(target Status, actingUserID kernel.UUID, at time.Time, policy BoardPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	if err := actingUserID.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	switch policy {
	case BoardEnforceLifecycle:
		action, ok := o.status.ActionTo(target)
		if !ok {
			return NewIllegalBoardMoveError(o.status, target)
		}
		return o.Transition(action, actingUserID, at)

	case BoardFreeMove:
		if o.status.IsTerminal() || target == o.status {
			return NewIllegalBoardMoveError(o.status, target)
		}

		entry, err := NewHistoryEntry(
			at, actingUserID, ActionBoardMove, o.status, target,
			fmt.Sprintf("moved on board from %s to %s", o.status, target),
		)
		if err != nil {
			return err
		}

		o.status = target
		o.history = append(o.history, entry)
		return nil

	default:
		return NewIllegalBoardMoveError(o.status, target)
	}
}

// markStale merges scopes into the stale set and drops the totals, so a
// half-updated order can never be mistaken for a priced one.
func (o *ShippingOrder) markStale(scopes RecalcScope) {
	o.staleScopes |= scopes
	o.totals = nil
}

// ensureEditable rejects pricing-input mutations once the order left Draft.
func (o *ShippingOrder) ensureEditable() error {
	if o.status != Draft {
		return ErrOrderIsNotEditable
	}
	return nil
}

func (o *ShippingOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ShippingOrder) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.branchID = id
	return nil
}

func (o *ShippingOrder) setRouteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.routeID = id
	return nil
}

func (o *ShippingOrder) setCarrierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.carrierID = id
	return nil
}

func (o *ShippingOrder) setServiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.serviceID = id
	return nil
}

func (o *ShippingOrder) setVolumetricDivisor(divisor decimal.Decimal) error {
	if !divisor.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"volumetricDivisor",
			fmt.Errorf("%s is not greater than 0", divisor),
		)
	}
	o.volumetricDivisor = divisor
	return nil
}

func (o *ShippingOrder) setBranchDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"branchDiscount",
			fmt.Errorf("%s is negative", discount),
		)
	}
	o.branchDiscount = discount
	return nil
}
