package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/propscan/propscan/pkg/model"
)

func threeFlat() model.Property {
	p := model.Property{
		URL:           "https://www.redfin.com/IL/Chicago/456-Oak-Ave-60614/home/11111",
		StreetAddress: "456 Oak Ave",
		City:          "Chicago",
		State:         "IL",
		Price:         100000,
		NumUnits:      3,
		TotalRent:     2000,
		AnnualTaxes:   3000,
	}
	for i := 0; i < p.NumUnits; i++ {
		p.UtilitiesPaidByUnit = append(p.UtilitiesPaidByUnit, model.AllUtilities())
	}
	return p
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestRunThreeFlatDefaults(t *testing.T) {
	p := threeFlat()
	res, err := Run(p, Resolve(p))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	approx(t, "loan amount", res.LoanAmount, 75000)
	if res.LoanAmount > p.Price {
		t.Error("loan amount must not exceed price")
	}
	// 5000 closing + 0 renovation + 25000 down + 75000*0.00125 points.
	approx(t, "total cash needed", res.TotalCashNeeded, 30093.75)
	approx(t, "gross income", res.GrossIncome, 2000)

	// Every tenant pays every utility, so the landlord carries none of
	// them: insurance 1500/12 + taxes 3000/12 + 40 misc + rent ratios.
	wantOpex := 1500.0/12 + 3000.0/12 + 40 + 2000*(0.07+0.05+0.05+0.1)
	approx(t, "operating expenses", res.MonthlyOperatingExpenses, wantOpex)
	approx(t, "noi", res.NetOperatingIncome, res.GrossIncome-res.MonthlyOperatingExpenses)

	wantPI := (0.05 / 12 * 75000) / (1 - math.Pow(1+0.05/12, -360))
	approx(t, "monthly p&i", res.MonthlyPAndI, wantPI)

	approx(t, "total cash flow", res.TotalCashFlow, res.NetOperatingIncome-res.MonthlyPAndI)
	approx(t, "cash flow per unit * units", res.CashFlowPerUnit*float64(p.NumUnits), res.TotalCashFlow)
	approx(t, "cap rate", res.CapRate, res.NetOperatingIncome*12/res.LoanAmount)
	approx(t, "loan constant", res.LoanConstant, res.MonthlyPAndI*12/res.LoanAmount)
	approx(t, "cocr", res.COCR, res.TotalCashFlow*12/res.TotalCashNeeded)
	approx(t, "debt coverage", res.DebtCoverage, res.NetOperatingIncome/res.MonthlyPAndI)
}

func TestRunDegenerateInputs(t *testing.T) {
	cases := []struct {
		name    string
		prop    func() model.Property
		vars    func(Variables)
		divisor string
	}{
		{
			name:    "zero units",
			prop:    func() model.Property { p := threeFlat(); p.NumUnits = 0; return p },
			vars:    func(Variables) {},
			divisor: "number of units",
		},
		{
			name:    "zero loan amount",
			prop:    threeFlat,
			vars:    func(v Variables) { v["down_payment"] = 1.0 },
			divisor: "loan amount",
		},
		{
			name: "zero total cash needed",
			prop: threeFlat,
			vars: func(v Variables) {
				v["down_payment"] = 0
				v["closing_costs"] = 0
				v["renovation_budget"] = 0
				v["loan_points"] = 0
			},
			divisor: "total cash needed",
		},
		{
			name:    "zero interest rate",
			prop:    threeFlat,
			vars:    func(v Variables) { v["interest_rate"] = 0 },
			divisor: "monthly principal and interest",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.prop()
			vars := Resolve(p)
			tc.vars(vars)

			_, err := Run(p, vars)
			var degenerate *DegenerateInputError
			if !errors.As(err, &degenerate) {
				t.Fatalf("err = %v, want DegenerateInputError", err)
			}
			if degenerate.Divisor != tc.divisor {
				t.Errorf("divisor = %q, want %q", degenerate.Divisor, tc.divisor)
			}
		})
	}
}

func TestRunDoesNotMutateInputs(t *testing.T) {
	p := threeFlat()
	vars := Resolve(p)
	before := make(Variables, len(vars))
	for k, v := range vars {
		before[k] = v
	}

	if _, err := Run(p, vars); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for k, v := range before {
		if vars[k] != v {
			t.Errorf("vars[%q] changed from %v to %v", k, v, vars[k])
		}
	}
}
