// Package validation scores an order across independent rule domains
// before the fulfillment pipeline touches any state. Each domain
// contributes errors, warnings and suggestions; failing domains reduce a
// confidence score that starts at 100. The score is advisory: an order
// is valid exactly when no domain produced an error.
package validation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Score penalties per failing rule domain.
const (
	customerPenalty    = 30
	itemsPenalty       = 25
	addressPenalty     = 15
	businessPenalty    = 20
	supplyChainPenalty = 10
)

const (
	creditWarningUtilization = 0.8
	largeQuantityLimit       = 10000
	bulkQuantityLimit        = 100
	marginFactor             = 1.1
)

var (
	minimumOrderValue  = decimal.NewFromFloat(25.00)
	zipCodePattern     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	supportedCountries = []string{"US", "CA", "MX"}
	hazmatKeywords     = []string{"battery", "chemical", "liquid"}
)

// Result is the outcome of validating one order.
type Result struct {
	IsValid     bool
	Errors      []string
	Warnings    []string
	Suggestions []string
	Score       int
}

// Validator scores orders. Implemented by OrderValidator; substituted in
// orchestrator tests.
type Validator interface {
	ValidateOrder(ctx context.Context, o *order.Order) Result
}

var _ Validator = &OrderValidator{}

// OrderValidator is the default Validator. It performs only reads
// (customer standing, inventory records) and never mutates state.
type OrderValidator struct {
	customers ports.CustomerReader
	inventory ports.InventoryReader
	now       func() time.Time
}

// NewOrderValidator creates a validator using the wall clock.
func NewOrderValidator(customers ports.CustomerReader, inventory ports.InventoryReader) (*OrderValidator, error) {
	return NewOrderValidatorWithClock(customers, inventory, time.Now)
}

// NewOrderValidatorWithClock creates a validator with an explicit clock.
// Delivery-date, weekend, holiday and peak-season rules depend on it.
func NewOrderValidatorWithClock(
	customers ports.CustomerReader,
	inventory ports.InventoryReader,
	now func() time.Time,
) (*OrderValidator, error) {
	if customers == nil {
		return nil, errs.NewValueIsRequiredError("customers")
	}
	if inventory == nil {
		return nil, errs.NewValueIsRequiredError("inventory")
	}
	if now == nil {
		return nil, errs.NewValueIsRequiredError("now")
	}

	return &OrderValidator{customers: customers, inventory: inventory, now: now}, nil
}

// domainResult is the contribution of a single rule domain.
type domainResult struct {
	errors      []string
	warnings    []string
	suggestions []string
}

func (d domainResult) failed() bool {
	return len(d.errors) > 0
}

// ValidateOrder evaluates all five rule domains and aggregates their
// findings. Warnings and suggestions are always collected, whether or
// not their domain failed; a domain's penalty applies only when it
// produced errors, except for the supply chain domain which never errors
// and is penalized when it raised warnings.
//
// Any panic during evaluation collapses to a single generic error with
// score 0, discarding partial findings.
func (v *OrderValidator) ValidateOrder(ctx context.Context, o *order.Order) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				IsValid:  false,
				Errors:   []string{"System error during validation"},
				Warnings: []string{},
				Score:    0,
			}
		}
	}()

	score := 100
	res := Result{}

	customer := v.validateCustomer(ctx, o)
	res.merge(customer)
	if customer.failed() {
		score -= customerPenalty
	}

	items := v.validateItems(ctx, o)
	res.merge(items)
	if items.failed() {
		score -= itemsPenalty
	}

	address := v.validateAddress(o.ShippingAddress())
	res.merge(address)
	if address.failed() {
		score -= addressPenalty
	}

	business := v.validateBusinessRules(o)
	res.merge(business)
	if business.failed() {
		score -= businessPenalty
	}

	supplyChain := v.validateSupplyChain(o)
	res.merge(supplyChain)
	if len(supplyChain.warnings) > 0 {
		score -= supplyChainPenalty
	}

	if score < 0 {
		score = 0
	}
	res.Score = score
	res.IsValid = len(res.Errors) == 0

	return res
}

func (r *Result) merge(d domainResult) {
	r.Errors = append(r.Errors, d.errors...)
	r.Warnings = append(r.Warnings, d.warnings...)
	r.Suggestions = append(r.Suggestions, d.suggestions...)
}

// validateCustomer checks that the customer exists, is active, and is
// within its credit limit counting open (pending or processing) orders.
func (v *OrderValidator) validateCustomer(ctx context.Context, o *order.Order) domainResult {
	var d domainResult

	customer, err := v.customers.Get(ctx, o.CustomerID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			d.errors = append(d.errors, "Customer not found")
		} else {
			d.errors = append(d.errors, "Error validating customer")
		}
		return d
	}

	if !customer.Active {
		d.errors = append(d.errors, "Customer account is inactive")
	}

	if customer.CreditLimit != nil {
		openTotal, err := v.customers.OpenOrdersTotal(ctx, o.CustomerID())
		if err != nil {
			d.errors = append(d.errors, "Error validating customer")
			return d
		}

		warnAt := customer.CreditLimit.Mul(decimal.NewFromFloat(creditWarningUtilization))
		if openTotal.GreaterThan(warnAt) {
			d.warnings = append(d.warnings, "Customer approaching credit limit")
		}
		if openTotal.GreaterThan(*customer.CreditLimit) {
			d.errors = append(d.errors, "Customer exceeds credit limit")
		}
	}

	return d
}

// validateItems checks every line against its inventory record:
// existence, active flag, sane quantity and price, margin against unit
// cost, and available stock.
func (v *OrderValidator) validateItems(ctx context.Context, o *order.Order) domainResult {
	var d domainResult

	for _, line := range o.Items() {
		item, err := v.inventory.GetBySKU(ctx, o.OrganizationID(), line.SKU)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				d.errors = append(d.errors, fmt.Sprintf("SKU %s not found in inventory", line.SKU))
			} else {
				d.errors = append(d.errors, "Error validating items")
			}
			continue
		}

		if !item.Active {
			d.errors = append(d.errors, fmt.Sprintf("SKU %s is inactive", line.SKU))
			continue
		}

		if line.Quantity <= 0 {
			d.errors = append(d.errors, fmt.Sprintf("Invalid quantity for SKU %s", line.SKU))
		}
		if line.Quantity > largeQuantityLimit {
			d.warnings = append(d.warnings, fmt.Sprintf("Large quantity ordered for SKU %s", line.SKU))
		}

		if !line.UnitPrice.IsPositive() {
			d.errors = append(d.errors, fmt.Sprintf("Invalid unit price for SKU %s", line.SKU))
		}

		if item.UnitCost != nil {
			floor := item.UnitCost.Mul(decimal.NewFromFloat(marginFactor))
			if line.UnitPrice.LessThan(floor) {
				d.warnings = append(d.warnings, fmt.Sprintf("Low margin on SKU %s", line.SKU))
				d.suggestions = append(d.suggestions,
					fmt.Sprintf("Consider adjusting pricing for %s to maintain healthy margins", line.SKU))
			}
		}

		if line.Quantity > item.QuantityAvailable {
			d.warnings = append(d.warnings, fmt.Sprintf("Insufficient stock for SKU %s", line.SKU))
			d.suggestions = append(d.suggestions,
				fmt.Sprintf("Consider partial fulfillment or backorder for %s", line.SKU))
		}
	}

	return d
}

// validateAddress checks required fields, ZIP code format, and that the
// destination country is in the supported set.
func (v *OrderValidator) validateAddress(address order.Address) domainResult {
	var d domainResult

	if strings.TrimSpace(address.Street) == "" {
		d.errors = append(d.errors, "Street address is required")
	}
	if strings.TrimSpace(address.City) == "" {
		d.errors = append(d.errors, "City is required")
	}
	if strings.TrimSpace(address.State) == "" {
		d.errors = append(d.errors, "State is required")
	}

	zip := strings.TrimSpace(address.ZipCode)
	if zip == "" {
		d.errors = append(d.errors, "ZIP code is required")
	} else if !zipCodePattern.MatchString(zip) {
		d.errors = append(d.errors, "Invalid ZIP code format")
	}

	supported := false
	for _, c := range supportedCountries {
		if address.Country == c {
			supported = true
			break
		}
	}
	if !supported {
		d.errors = append(d.errors, fmt.Sprintf("Shipping to %s is not currently supported", address.Country))
	}

	return d
}

// validateBusinessRules enforces the minimum order value and checks the
// requested delivery date for lead time, weekends and shipping holidays.
func (v *OrderValidator) validateBusinessRules(o *order.Order) domainResult {
	var d domainResult

	subtotal := o.Subtotal()
	if subtotal.LessThan(minimumOrderValue) {
		d.errors = append(d.errors, fmt.Sprintf(
			"Order total $%s is below minimum of $%s",
			subtotal.StringFixed(2), minimumOrderValue.StringFixed(2)))
	}

	requested := o.RequiredDeliveryDate()
	if requested == nil {
		return d
	}

	now := v.now()
	daysOut := requested.Sub(now).Hours() / 24

	if daysOut < 1 {
		d.errors = append(d.errors, "Requested delivery date must be at least 1 day in the future")
	} else if daysOut < 2 {
		d.warnings = append(d.warnings, "Rush delivery may incur additional charges")
		d.suggestions = append(d.suggestions, "Consider express shipping for same-day or next-day delivery")
	}

	if wd := requested.Weekday(); wd == time.Saturday || wd == time.Sunday {
		d.warnings = append(d.warnings, "Weekend delivery requested - additional charges may apply")
	}

	if isShippingHoliday(*requested) {
		d.warnings = append(d.warnings, "Delivery requested on a shipping holiday")
		d.suggestions = append(d.suggestions, "Consider adjusting delivery date to avoid holiday delays")
	}

	return d
}

// validateSupplyChain flags hazmat keywords, bulk quantities, and peak
// season capacity pressure. This domain only warns; it never fails an
// order.
func (v *OrderValidator) validateSupplyChain(o *order.Order) domainResult {
	var d domainResult

	hazmat := false
	bulk := false
	for _, line := range o.Items() {
		description := strings.ToLower(line.Description)
		for _, keyword := range hazmatKeywords {
			if strings.Contains(description, keyword) {
				hazmat = true
				break
			}
		}
		if line.Quantity > bulkQuantityLimit {
			bulk = true
		}
	}

	if hazmat {
		d.warnings = append(d.warnings, "Order contains potential hazardous materials")
		d.suggestions = append(d.suggestions, "Verify proper hazmat documentation and carrier capabilities")
	}
	if bulk {
		d.warnings = append(d.warnings, "Order contains large quantities")
		d.suggestions = append(d.suggestions, "Consider LTL shipping for bulk orders")
	}

	if month := v.now().Month(); month == time.November || month == time.December || month == time.January {
		d.warnings = append(d.warnings, "Peak season - expect potential delays")
		d.suggestions = append(d.suggestions, "Consider expedited processing for time-sensitive orders")
	}

	return d
}

// isShippingHoliday reports whether the date falls on one of the fixed
// carrier holidays: New Year's Day, Independence Day, Christmas Day.
func isShippingHoliday(date time.Time) bool {
	switch {
	case date.Month() == time.January && date.Day() == 1:
		return true
	case date.Month() == time.July && date.Day() == 4:
		return true
	case date.Month() == time.December && date.Day() == 25:
		return true
	default:
		return false
	}
}
