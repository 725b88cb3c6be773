package proration

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/flexprice/billingsim/internal/domain/invoice"
	ierr "github.com/flexprice/billingsim/internal/errors"
)

// Calculator produces the unused-time credit and remaining-time charge
// for a mid-cycle subscription change.
type Calculator interface {
	Calculate(params Params) (*Result, error)
}

// NewCalculator returns the second-based calculator, the only
// granularity the provider's preview math uses.
func NewCalculator() Calculator {
	return &secondBasedCalculator{}
}

type secondBasedCalculator struct{}

func (c *secondBasedCalculator) Calculate(params Params) (*Result, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	// Fraction of the period left at the proration date.
	totalSeconds := decimal.NewFromInt(params.CurrentPeriodEnd - params.CurrentPeriodStart)
	remainingSeconds := decimal.NewFromInt(params.CurrentPeriodEnd - params.ProrationDate)
	coefficient := remainingSeconds.Div(totalSeconds)

	result := &Result{}

	// Unused-time credit, rounded up. The ceiling here and the floor on
	// the charge below are asymmetric on purpose; the provider behaves
	// this way and tests written against it depend on it.
	unused := params.OldPlan.Amount.
		Mul(params.OldQuantity).
		Mul(coefficient).
		Ceil()

	result.CreditItem = invoice.NewLineItem(invoice.LineItemParams{
		Amount:      lo.ToPtr(unused.Neg()),
		Currency:    params.Currency,
		Description: lo.ToPtr("Unused time"),
		Plan:        params.OldPlan,
		Quantity:    lo.ToPtr(params.OldQuantity),
		PeriodStart: lo.ToPtr(params.ProrationDate),
		PeriodEnd:   lo.ToPtr(params.CurrentPeriodEnd),
		Proration:   true,
	}, LineItemDefaults(params))

	// The remaining-time charge only applies when the new plan bills on
	// the same cycle and no trial override defers it.
	if params.NewPlan.SameBillingCycle(params.OldPlan) && !params.TrialEndRequested {
		remaining := params.NewPlan.Amount.
			Mul(params.NewQuantity).
			Mul(coefficient).
			Floor()

		result.ChargeItem = invoice.NewLineItem(invoice.LineItemParams{
			Amount:      lo.ToPtr(remaining),
			Currency:    params.Currency,
			Description: lo.ToPtr("Remaining time"),
			Plan:        params.NewPlan,
			Quantity:    lo.ToPtr(params.NewQuantity),
			PeriodStart: lo.ToPtr(params.ProrationDate),
			PeriodEnd:   lo.ToPtr(params.CurrentPeriodEnd),
			Proration:   true,
		}, LineItemDefaults(params))
	}

	return result, nil
}

// LineItemDefaults maps proration params onto the line builder defaults.
func LineItemDefaults(params Params) invoice.LineItemDefaults {
	return invoice.LineItemDefaults{
		Amount:   decimal.Zero,
		Currency: params.Currency,
	}
}

func validateParams(params Params) error {
	if params.OldPlan == nil {
		return ierr.NewError("missing old plan").
			WithHint("proration requires the subscription's current plan").
			Mark(ierr.ErrValidation)
	}
	if params.NewPlan == nil {
		return ierr.NewError("missing new plan").
			WithHint("proration requires the candidate plan").
			Mark(ierr.ErrValidation)
	}
	if params.CurrentPeriodEnd <= params.CurrentPeriodStart {
		return ierr.NewError("invalid billing period").
			WithHintf("period end %d must be after period start %d",
				params.CurrentPeriodEnd, params.CurrentPeriodStart).
			Mark(ierr.ErrValidation)
	}
	return nil
}
