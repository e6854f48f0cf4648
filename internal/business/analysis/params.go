// Package analysis computes rental investment metrics from scraped
// property records.
package analysis

import "github.com/propscan/propscan/pkg/model"

// Parameter is one named financial assumption. PerUnit parameters scale
// with the unit count; utility-tagged parameters are charged only for
// units whose tenant does not already cover that utility.
type Parameter struct {
	Key         string        `json:"key"`
	Description string        `json:"description"`
	Default     float64       `json:"default"`
	PerUnit     bool          `json:"perUnit,omitempty"`
	Utility     model.Utility `json:"utility,omitempty"`
}

// Registry is the fixed catalog of assumptions feeding every analysis.
var Registry = []Parameter{
	{Key: "interest_rate", Description: "The interest rate of the loan, as a percentage", Default: 0.05},
	{Key: "closing_costs", Description: "The estimated closing costs", Default: 5000.0},
	{Key: "renovation_budget", Description: "The estimated renovation budget", Default: 0.0},
	{Key: "down_payment", Description: "The down payment for the loan, as a percentage", Default: 0.25},
	{Key: "loan_points", Description: "The loan points, as a percentage", Default: 0.00125},
	{Key: "loan_years", Description: "The number of years that the loan is amortized over", Default: 30},
	{Key: "other_income", Description: "Any other misc income to consider when analyzing", Default: 0.0},
	{Key: "electricity_expense", Description: "The estimated monthly electricity expense, per unit", Default: 25.0, PerUnit: true, Utility: model.UtilityElectric},
	{Key: "gas_expense", Description: "The estimated monthly gas expense, per unit", Default: 35.0, PerUnit: true, Utility: model.UtilityGas},
	{Key: "water_expense", Description: "The estimated monthly water expense, per unit", Default: 35.0, PerUnit: true, Utility: model.UtilityWater},
	{Key: "sewer_expense", Description: "The estimated monthly sewer expense, per unit", Default: 5.0, PerUnit: true, Utility: model.UtilitySewer},
	{Key: "garbage_expense", Description: "The estimated monthly garbage expense, per unit", Default: 5.0, PerUnit: true, Utility: model.UtilityGarbage},
	{Key: "hoa_expense", Description: "The estimated monthly total HOA expense", Default: 0.0},
	{Key: "insurance_expense", Description: "The estimated yearly insurance expense, per unit", Default: 500.0, PerUnit: true},
	{Key: "other_expense", Description: "The total estimated misc expenses", Default: 40.0},
	{Key: "vacancy", Description: "The estimated vacancy factor, as percentage of the monthly rent", Default: 0.07},
	{Key: "repairs", Description: "The estimated repairs rate, as percentage of the monthly rent", Default: 0.05},
	{Key: "capex", Description: "The estimated capex rate, as percentage of the monthly rent", Default: 0.05},
	{Key: "prop_mgmt", Description: "The estimated property management rate, as percentage of the monthly rent", Default: 0.1},
}
