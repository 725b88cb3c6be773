package proration

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/flexprice/billingsim/internal/domain/plan"
	ierr "github.com/flexprice/billingsim/internal/errors"
	"github.com/flexprice/billingsim/internal/types"
)

type CalculatorTestSuite struct {
	suite.Suite
	calculator Calculator
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}

func (s *CalculatorTestSuite) SetupTest() {
	s.calculator = NewCalculator()
}

func (s *CalculatorTestSuite) monthlyPlan(id string, amount int64) *plan.Plan {
	return &plan.Plan{
		ID:            id,
		Name:          id,
		Amount:        decimal.NewFromInt(amount),
		Currency:      "usd",
		Interval:      types.BillingIntervalMonth,
		IntervalCount: 1,
	}
}

func (s *CalculatorTestSuite) TestMidCycleUpgrade() {
	// Period [1000, 4000], change at 2500: half the period remains gone,
	// half remains. Credit ceil(3000*1500/3000)=1500, charge 3000.
	result, err := s.calculator.Calculate(Params{
		OldPlan:            s.monthlyPlan("plan_basic", 3000),
		NewPlan:            s.monthlyPlan("plan_pro", 6000),
		OldQuantity:        decimal.NewFromInt(1),
		NewQuantity:        decimal.NewFromInt(1),
		CurrentPeriodStart: 1000,
		CurrentPeriodEnd:   4000,
		ProrationDate:      2500,
		Currency:           "usd",
	})
	s.NoError(err)
	s.NotNil(result.CreditItem)
	s.NotNil(result.ChargeItem)

	s.True(result.CreditItem.Amount.Equal(decimal.NewFromInt(-1500)),
		"credit amount = %s", result.CreditItem.Amount)
	s.Equal("Unused time", result.CreditItem.Description)
	s.True(result.CreditItem.Proration)
	s.Equal(int64(2500), result.CreditItem.PeriodStart)
	s.Equal(int64(4000), result.CreditItem.PeriodEnd)

	s.True(result.ChargeItem.Amount.Equal(decimal.NewFromInt(3000)),
		"charge amount = %s", result.ChargeItem.Amount)
	s.Equal("Remaining time", result.ChargeItem.Description)
	s.True(result.ChargeItem.Proration)

	items := result.LineItems()
	s.Len(items, 2)
	s.Equal(result.CreditItem, items[0])
	s.Equal(result.ChargeItem, items[1])
}

func (s *CalculatorTestSuite) TestRoundingAsymmetry() {
	// Credit rounds up, charge truncates. Period of 3, one second used:
	// coefficient 2/3. Credit ceil(100*2/3)=67, charge floor(100*2/3)=66.
	result, err := s.calculator.Calculate(Params{
		OldPlan:            s.monthlyPlan("plan_a", 100),
		NewPlan:            s.monthlyPlan("plan_b", 100),
		OldQuantity:        decimal.NewFromInt(1),
		NewQuantity:        decimal.NewFromInt(1),
		CurrentPeriodStart: 0,
		CurrentPeriodEnd:   3,
		ProrationDate:      1,
		Currency:           "usd",
	})
	s.NoError(err)
	s.True(result.CreditItem.Amount.Equal(decimal.NewFromInt(-67)),
		"credit amount = %s", result.CreditItem.Amount)
	s.True(result.ChargeItem.Amount.Equal(decimal.NewFromInt(66)),
		"charge amount = %s", result.ChargeItem.Amount)
}

func (s *CalculatorTestSuite) TestQuantityMultiplies() {
	result, err := s.calculator.Calculate(Params{
		OldPlan:            s.monthlyPlan("plan_a", 3000),
		NewPlan:            s.monthlyPlan("plan_a", 3000),
		OldQuantity:        decimal.NewFromInt(2),
		NewQuantity:        decimal.NewFromInt(5),
		CurrentPeriodStart: 1000,
		CurrentPeriodEnd:   4000,
		ProrationDate:      2500,
		Currency:           "usd",
	})
	s.NoError(err)
	s.True(result.CreditItem.Amount.Equal(decimal.NewFromInt(-3000)))
	s.True(result.ChargeItem.Amount.Equal(decimal.NewFromInt(7500)))
}

func (s *CalculatorTestSuite) TestDifferentIntervalSkipsCharge() {
	yearly := &plan.Plan{
		ID:            "plan_yearly",
		Amount:        decimal.NewFromInt(30000),
		Currency:      "usd",
		Interval:      types.BillingIntervalYear,
		IntervalCount: 1,
	}
	result, err := s.calculator.Calculate(Params{
		OldPlan:            s.monthlyPlan("plan_monthly", 3000),
		NewPlan:            yearly,
		OldQuantity:        decimal.NewFromInt(1),
		NewQuantity:        decimal.NewFromInt(1),
		CurrentPeriodStart: 1000,
		CurrentPeriodEnd:   4000,
		ProrationDate:      2500,
		Currency:           "usd",
	})
	s.NoError(err)
	s.NotNil(result.CreditItem)
	s.Nil(result.ChargeItem)
	s.Len(result.LineItems(), 1)
}

func (s *CalculatorTestSuite) TestTrialEndSkipsCharge() {
	result, err := s.calculator.Calculate(Params{
		OldPlan:            s.monthlyPlan("plan_a", 3000),
		NewPlan:            s.monthlyPlan("plan_b", 6000),
		OldQuantity:        decimal.NewFromInt(1),
		NewQuantity:        decimal.NewFromInt(1),
		CurrentPeriodStart: 1000,
		CurrentPeriodEnd:   4000,
		ProrationDate:      2500,
		TrialEndRequested:  true,
		Currency:           "usd",
	})
	s.NoError(err)
	s.NotNil(result.CreditItem)
	s.Nil(result.ChargeItem)
}

func (s *CalculatorTestSuite) TestOutOfPeriodDateComputes() {
	// Range-checking the proration date is the previewer's concern; the
	// calculator carries the arithmetic through, so a date past the
	// period end flips the signs.
	result, err := s.calculator.Calculate(Params{
		OldPlan:            s.monthlyPlan("plan_a", 3000),
		NewPlan:            s.monthlyPlan("plan_b", 6000),
		OldQuantity:        decimal.NewFromInt(1),
		NewQuantity:        decimal.NewFromInt(1),
		CurrentPeriodStart: 1000,
		CurrentPeriodEnd:   4000,
		ProrationDate:      5500,
		Currency:           "usd",
	})
	s.NoError(err)
	s.True(result.CreditItem.Amount.Equal(decimal.NewFromInt(1500)),
		"credit amount = %s", result.CreditItem.Amount)
	s.True(result.ChargeItem.Amount.Equal(decimal.NewFromInt(-3000)),
		"charge amount = %s", result.ChargeItem.Amount)
}

func (s *CalculatorTestSuite) TestMissingPlans() {
	_, err := s.calculator.Calculate(Params{
		NewPlan:            s.monthlyPlan("plan_b", 6000),
		OldQuantity:        decimal.NewFromInt(1),
		NewQuantity:        decimal.NewFromInt(1),
		CurrentPeriodStart: 1000,
		CurrentPeriodEnd:   4000,
		ProrationDate:      2500,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
