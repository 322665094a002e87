package nutrition

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// quantityPattern matches a leading decimal number followed by a unit label
// ("3 cookies", "2.5 cups").
var quantityPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(.+)$`)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeServings rescales each detected food to a unit serving and
// recomputes the meal totals. An item whose quantity parses to N > 1 gets
// servingMultiplier = N, its quantity relabeled "1 <unit>", and every macro
// divided by N (2 decimal places). Items with N <= 1, or with a missing or
// unparseable quantity, pass through untouched. The function is pure and
// never fails: malformed analyses come back unchanged.
func NormalizeServings(analysis MealAnalysis) MealAnalysis {
	if analysis.Foods == nil {
		return analysis
	}

	foods := make([]FoodItem, len(analysis.Foods))
	for i, food := range analysis.Foods {
		foods[i] = normalizeItem(food)
	}

	totals := SumUnitTotals(foods)
	out := analysis
	out.Foods = foods
	out.TotalCalories = totals.Calories
	out.TotalProtein = totals.Protein
	out.TotalCarbs = totals.Carbs
	out.TotalFat = totals.Fat
	out.TotalFiber = totals.Fiber
	out.TotalSugar = totals.Sugar
	return out
}

func normalizeItem(food FoodItem) FoodItem {
	if food.EstimatedQuantity == "" {
		return food
	}

	m := quantityPattern.FindStringSubmatch(food.EstimatedQuantity)
	if m == nil {
		return food
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil || n <= 1 {
		return food
	}

	food.ServingMultiplier = n
	food.EstimatedQuantity = fmt.Sprintf("1 %s", m[2])
	food.Calories = round2(food.Calories / n)
	food.Protein = round2(food.Protein / n)
	food.Carbs = round2(food.Carbs / n)
	food.Fat = round2(food.Fat / n)
	food.Fiber = round2(food.Fiber / n)
	food.Sugar = round2(food.Sugar / n)
	return food
}

// SumUnitTotals recomputes meal-level totals as the sum of unit macros times
// each item's multiplier, rounded to 2 decimal places.
func SumUnitTotals(foods []FoodItem) Totals {
	var t Totals
	for _, f := range foods {
		m := f.Multiplier()
		t.Calories += f.Calories * m
		t.Protein += f.Protein * m
		t.Carbs += f.Carbs * m
		t.Fat += f.Fat * m
		t.Fiber += f.Fiber * m
		t.Sugar += f.Sugar * m
	}
	t.Calories = round2(t.Calories)
	t.Protein = round2(t.Protein)
	t.Carbs = round2(t.Carbs)
	t.Fat = round2(t.Fat)
	t.Fiber = round2(t.Fiber)
	t.Sugar = round2(t.Sugar)
	return t
}
