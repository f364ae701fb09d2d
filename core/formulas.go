package core

import "github.com/huangsam/tradeoff/schema"

// BuildFormulas returns the formal definition of every metric in display order.
func BuildFormulas(clamped bool) schema.FormulasRenderModel {
	people := []schema.ConstraintID{schema.TeamSize, schema.Timeline, schema.Complexity, schema.UserBase}
	delivery := []schema.ConstraintID{schema.TeamSize, schema.Timeline, schema.Complexity}

	formulas := []schema.FormulaDefinition{
		{
			Key:      schema.ConversionKey,
			Name:     "Conversion",
			Purpose:  "Share of visitors who become users",
			Inputs:   people,
			Formula:  "65 * team * (2 - timeline) * (2 - complexity) * sqrt(userBase)",
			Rounding: "integer",
		},
		{
			Key:      schema.SatisfactionKey,
			Name:     "Satisfaction",
			Purpose:  "Average user rating out of 5",
			Inputs:   people,
			Formula:  "4.2 * team * (2 - timeline) * (2 - complexity) * sqrt(userBase)",
			Rounding: "one decimal",
		},
		{
			Key:      schema.TimeToValueKey,
			Name:     "Time to Value",
			Purpose:  "Days until a new user sees value",
			Inputs:   delivery,
			Formula:  "14 * (2 - team) * timeline * complexity",
			Rounding: "integer",
		},
		{
			Key:      schema.ErrorRateKey,
			Name:     "Error Rate",
			Purpose:  "Percentage of failing sessions",
			Inputs:   delivery,
			Formula:  "2.5 * (2 - team) * timeline * complexity",
			Rounding: "one decimal",
		},
		{
			Key:      schema.UserRetentionKey,
			Name:     "User Retention",
			Purpose:  "Percentage of users still active after a month",
			Inputs:   []schema.ConstraintID{schema.TeamSize, schema.Complexity, schema.UserBase},
			Formula:  "78 * team * (2 - complexity) * sqrt(userBase)",
			Rounding: "integer",
		},
		{
			Key:      schema.DevelopmentCostKey,
			Name:     "Development Cost",
			Purpose:  "Total delivery cost in dollars",
			Inputs:   delivery,
			Formula:  "100000 * team * timeline * complexity",
			Rounding: "integer",
		},
		{
			Key:      schema.MarketShareKey,
			Name:     "Market Share",
			Purpose:  "Percentage of the addressable market captured",
			Inputs:   []schema.ConstraintID{schema.Budget, schema.MarketRisk, schema.UserBase},
			Formula:  "15 * budget * (2 - marketRisk) * sqrt(userBase)",
			Rounding: "integer",
		},
		{
			Key:      schema.InnovationScoreKey,
			Name:     "Innovation Score",
			Purpose:  "Appetite for novel bets",
			Inputs:   []schema.ConstraintID{schema.MarketRisk, schema.Complexity, schema.Budget},
			Formula:  "70 * marketRisk * complexity * budget / 100",
			Rounding: "integer",
		},
	}
	for i := range formulas {
		formulas[i].Direction = schema.MetricDirections[formulas[i].Key]
	}

	description := "Each factor is value/100; a missing constraint counts as 100. Rounding is half-up."
	if clamped {
		description += " Results are clamped to their valid ranges."
	}

	return schema.FormulasRenderModel{
		Title:       "Tradeoff Metrics",
		Description: description,
		Clamped:     clamped,
		Formulas:    formulas,
	}
}
