package hra_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstkit/internal/domain"
	"gstkit/internal/hra"
)

var components = domain.PayrollComponents{Company: "Acme", BasicComponent: "Basic", HRAComponent: "House Rent Allowance"}

func monthlyInput(rent float64, metro bool) hra.Input {
	return hra.Input{
		Components:    components,
		DocStatus:     domain.DocStatusSubmitted,
		Assignment:    &domain.SalaryAssignment{Employee: "EMP-1", SalaryStructure: "Staff", PayrollFrequency: domain.PayrollMonthly},
		HasHRAEarning: true,
		Earnings: []domain.SalaryComponentAmount{
			{Component: "Basic", Amount: 50000},
			{Component: "House Rent Allowance", Amount: 20000},
		},
		MonthlyHouseRent:  rent,
		RentedInMetroCity: metro,
	}
}

func TestAnnualComponentPay(t *testing.T) {
	tests := []struct {
		freq domain.PayrollFrequency
		want float64
	}{
		{domain.PayrollDaily, 365},
		{domain.PayrollWeekly, 52},
		{domain.PayrollFortnightly, 26},
		{domain.PayrollMonthly, 12},
		{domain.PayrollBimonthly, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			got, err := hra.AnnualComponentPay(tt.freq, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := hra.AnnualComponentPay("Quarterly", 1)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestAnnualEligibleExemption_MetroExample(t *testing.T) {
	got, err := hra.AnnualEligibleExemption(monthlyInput(15000, true))
	require.NoError(t, err)
	assert.Equal(t, 20000.0, got.HRAAmount)
	assert.Equal(t, 120000.0, got.AnnualExemption)
	assert.Equal(t, 10000.0, got.MonthlyExemption)
}

func TestAnnualEligibleExemption_NonMetroUsesFortyPercent(t *testing.T) {
	got, err := hra.AnnualEligibleExemption(monthlyInput(40000, false))
	require.NoError(t, err)
	// min(240000, 480000-60000, 240000)
	assert.Equal(t, 240000.0, got.AnnualExemption)
	assert.Equal(t, 20000.0, got.MonthlyExemption)
}

func TestAnnualEligibleExemption_NegativeClampsToZero(t *testing.T) {
	got, err := hra.AnnualEligibleExemption(monthlyInput(1000, true))
	require.NoError(t, err)
	assert.Equal(t, 20000.0, got.HRAAmount)
	assert.Zero(t, got.AnnualExemption)
	assert.Zero(t, got.MonthlyExemption)
}

func TestAnnualEligibleExemption_Preconditions(t *testing.T) {
	t.Run("missing components", func(t *testing.T) {
		in := monthlyInput(15000, true)
		in.Components.HRAComponent = ""
		_, err := hra.AnnualEligibleExemption(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfiguration))
		assert.Equal(t, "Please mention Basic and HRA component in Company", err.Error())
	})

	t.Run("no assignment on submitted declaration", func(t *testing.T) {
		in := monthlyInput(15000, true)
		in.Assignment = nil
		_, err := hra.AnnualEligibleExemption(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.Equal(t, "Salary Structure must be submitted before submission of Tax Exemption Declaration", err.Error())
	})

	t.Run("no assignment on draft declaration", func(t *testing.T) {
		in := monthlyInput(15000, true)
		in.Assignment = nil
		in.DocStatus = domain.DocStatusDraft
		got, err := hra.AnnualEligibleExemption(in)
		require.NoError(t, err)
		assert.Equal(t, hra.Exemption{}, got)
	})

	t.Run("structure without hra earning", func(t *testing.T) {
		in := monthlyInput(15000, true)
		in.HasHRAEarning = false
		got, err := hra.AnnualEligibleExemption(in)
		require.NoError(t, err)
		assert.Equal(t, hra.Exemption{}, got)
	})

	t.Run("no rent keeps hra amount", func(t *testing.T) {
		got, err := hra.AnnualEligibleExemption(monthlyInput(0, true))
		require.NoError(t, err)
		assert.Equal(t, hra.Exemption{HRAAmount: 20000}, got)
	})
}

func TestComponentAmounts(t *testing.T) {
	t.Run("repeated basic before hra keeps the last", func(t *testing.T) {
		basic, h := hra.ComponentAmounts([]domain.SalaryComponentAmount{
			{Component: "Basic", Amount: 100},
			{Component: "Basic", Amount: 999},
			{Component: "Conveyance", Amount: 5},
			{Component: "House Rent Allowance", Amount: 40},
		}, components)
		assert.Equal(t, 999.0, basic)
		assert.Equal(t, 40.0, h)
	})

	t.Run("stops once both are found", func(t *testing.T) {
		basic, h := hra.ComponentAmounts([]domain.SalaryComponentAmount{
			{Component: "Basic", Amount: 100},
			{Component: "House Rent Allowance", Amount: 40},
			{Component: "Basic", Amount: 999},
		}, components)
		assert.Equal(t, 100.0, basic)
		assert.Equal(t, 40.0, h)
	})

	t.Run("zero amount does not count as found", func(t *testing.T) {
		basic, h := hra.ComponentAmounts([]domain.SalaryComponentAmount{
			{Component: "House Rent Allowance", Amount: 0},
			{Component: "Basic", Amount: 100},
			{Component: "House Rent Allowance", Amount: 40},
		}, components)
		assert.Equal(t, 100.0, basic)
		assert.Equal(t, 40.0, h)
	})
}

func date(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func proof(name, from, to string) domain.ProofSubmission {
	return domain.ProofSubmission{
		Name:           name,
		Employee:       "EMP-1",
		PayrollPeriod:  "FY2026",
		DocStatus:      domain.DocStatusSubmitted,
		RentedFromDate: date(from),
		RentedToDate:   date(to),
	}
}

func TestValidateRentDates(t *testing.T) {
	t.Run("missing dates", func(t *testing.T) {
		sub := &domain.ProofSubmission{Name: "NEW", RentedFromDate: date("2026-04-01")}
		err := hra.ValidateRentDates(sub, nil)
		require.Error(t, err)
		assert.Equal(t, "House rented dates required for exemption calculation", err.Error())
	})

	t.Run("too short", func(t *testing.T) {
		sub := proof("NEW", "2026-04-01", "2026-04-14")
		err := hra.ValidateRentDates(&sub, nil)
		require.Error(t, err)
		assert.Equal(t, "House rented dates should be atleast 15 days apart", err.Error())
	})

	t.Run("fourteen day difference is enough", func(t *testing.T) {
		sub := proof("NEW", "2026-04-01", "2026-04-15")
		assert.NoError(t, hra.ValidateRentDates(&sub, nil))
	})

	t.Run("overlap", func(t *testing.T) {
		prior := []domain.ProofSubmission{proof("PRF-1", "2026-01-01", "2026-03-31")}
		sub := proof("NEW", "2026-03-15", "2026-06-30")
		err := hra.ValidateRentDates(&sub, prior)
		require.Error(t, err)
		assert.Equal(t, "House rent paid days overlapping with PRF-1", err.Error())
	})

	t.Run("adjacent ranges do not overlap", func(t *testing.T) {
		prior := []domain.ProofSubmission{proof("PRF-1", "2026-01-01", "2026-03-31")}
		sub := proof("NEW", "2026-04-01", "2026-06-30")
		assert.NoError(t, hra.ValidateRentDates(&sub, prior))
	})

	t.Run("shared boundary day overlaps", func(t *testing.T) {
		prior := []domain.ProofSubmission{proof("PRF-1", "2026-01-01", "2026-04-01")}
		sub := proof("NEW", "2026-04-01", "2026-06-30")
		assert.Error(t, hra.ValidateRentDates(&sub, prior))
	})

	t.Run("enclosing range overlaps", func(t *testing.T) {
		prior := []domain.ProofSubmission{proof("PRF-1", "2026-05-01", "2026-05-31")}
		sub := proof("NEW", "2026-04-01", "2026-06-30")
		assert.Error(t, hra.ValidateRentDates(&sub, prior))
	})

	t.Run("range inside a prior proof is accepted", func(t *testing.T) {
		prior := []domain.ProofSubmission{proof("PRF-1", "2026-01-01", "2026-12-31")}
		sub := proof("NEW", "2026-04-01", "2026-06-30")
		assert.NoError(t, hra.ValidateRentDates(&sub, prior))
	})

	t.Run("ignores drafts, self and other periods", func(t *testing.T) {
		draft := proof("PRF-1", "2026-04-01", "2026-06-30")
		draft.DocStatus = domain.DocStatusDraft
		other := proof("PRF-2", "2026-04-01", "2026-06-30")
		other.PayrollPeriod = "FY2025"
		self := proof("NEW", "2026-04-01", "2026-06-30")
		sub := proof("NEW", "2026-04-01", "2026-06-30")
		assert.NoError(t, hra.ValidateRentDates(&sub, []domain.ProofSubmission{draft, other, self}))
	})
}

func TestMonthFactor(t *testing.T) {
	assert.Equal(t, 3.0, hra.MonthFactor(*date("2026-04-01"), *date("2026-06-30")))
	assert.Equal(t, 0.5, hra.MonthFactor(*date("2026-04-01"), *date("2026-04-15")))
	assert.Equal(t, 1.0, hra.MonthFactor(*date("2026-04-01"), *date("2026-04-30")))
}

func TestCalculatePeriodExemption(t *testing.T) {
	sub := proof("NEW", "2026-04-01", "2026-06-30")
	sub.HouseRentPaymentAmount = 45000
	sub.RentedInMetroCity = true

	got, err := hra.CalculatePeriodExemption(&sub, nil, monthlyInput(0, false))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 15000.0, got.MonthlyHouseRent)
	assert.Equal(t, 120000.0, got.AnnualExemption)
	assert.Equal(t, 10000.0, got.MonthlyExemption)
	assert.Equal(t, 30000.0, got.TotalEligibleHRAExemption)
}

func TestCalculatePeriodExemption_NoPayment(t *testing.T) {
	sub := proof("NEW", "2026-04-01", "2026-04-02")
	got, err := hra.CalculatePeriodExemption(&sub, nil, monthlyInput(0, false))
	require.NoError(t, err)
	assert.Nil(t, got)
}
