package nutrition

import (
	"reflect"
	"testing"
)

func TestNormalizeServingsSplitsMultiUnitQuantity(t *testing.T) {
	analysis := MealAnalysis{
		Foods: []FoodItem{{
			Name:              "cookie",
			EstimatedQuantity: "3 cookies",
			Calories:          300,
			Protein:           3,
			Confidence:        ConfidenceHigh,
		}},
	}

	got := NormalizeServings(analysis)

	food := got.Foods[0]
	if food.EstimatedQuantity != "1 cookies" {
		t.Errorf("quantity = %q, want %q", food.EstimatedQuantity, "1 cookies")
	}
	if food.ServingMultiplier != 3 {
		t.Errorf("multiplier = %v, want 3", food.ServingMultiplier)
	}
	if food.Calories != 100 {
		t.Errorf("calories = %v, want 100", food.Calories)
	}
	if food.Protein != 1 {
		t.Errorf("protein = %v, want 1", food.Protein)
	}
	// totals come back to the whole detected quantity
	if got.TotalCalories != 300 {
		t.Errorf("total calories = %v, want 300", got.TotalCalories)
	}
	if got.TotalProtein != 3 {
		t.Errorf("total protein = %v, want 3", got.TotalProtein)
	}
}

func TestNormalizeServingsFractionalQuantity(t *testing.T) {
	got := NormalizeServings(MealAnalysis{
		Foods: []FoodItem{{Name: "rice", EstimatedQuantity: "2.5 cups", Calories: 500, Carbs: 110}},
	})

	food := got.Foods[0]
	if food.ServingMultiplier != 2.5 {
		t.Errorf("multiplier = %v, want 2.5", food.ServingMultiplier)
	}
	if food.EstimatedQuantity != "1 cups" {
		t.Errorf("quantity = %q, want %q", food.EstimatedQuantity, "1 cups")
	}
	if food.Calories != 200 {
		t.Errorf("calories = %v, want 200", food.Calories)
	}
	if food.Carbs != 44 {
		t.Errorf("carbs = %v, want 44", food.Carbs)
	}
}

func TestNormalizeServingsRoundsToTwoDecimals(t *testing.T) {
	got := NormalizeServings(MealAnalysis{
		Foods: []FoodItem{{Name: "almonds", EstimatedQuantity: "3 handfuls", Calories: 100}},
	})

	if got.Foods[0].Calories != 33.33 {
		t.Errorf("calories = %v, want 33.33", got.Foods[0].Calories)
	}
	// 33.33 * 3
	if got.TotalCalories != 99.99 {
		t.Errorf("total calories = %v, want 99.99", got.TotalCalories)
	}
}

func TestNormalizeServingsIdentityCases(t *testing.T) {
	cases := []struct {
		name string
		item FoodItem
	}{
		{"unit quantity", FoodItem{Name: "milk", EstimatedQuantity: "1 cup", Calories: 200}},
		{"missing quantity", FoodItem{Name: "mystery", Calories: 150}},
		{"non-numeric quantity", FoodItem{Name: "salad", EstimatedQuantity: "a bowl", Calories: 90}},
		{"fraction below one", FoodItem{Name: "butter", EstimatedQuantity: "0.5 tbsp", Calories: 50}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeServings(MealAnalysis{Foods: []FoodItem{tc.item}})
			if !reflect.DeepEqual(got.Foods[0], tc.item) {
				t.Errorf("item changed: got %+v, want %+v", got.Foods[0], tc.item)
			}
			if got.Foods[0].ServingMultiplier != 0 {
				t.Errorf("multiplier was added: %v", got.Foods[0].ServingMultiplier)
			}
		})
	}
}

func TestNormalizeServingsIdempotent(t *testing.T) {
	analysis := MealAnalysis{
		Foods: []FoodItem{{Name: "cookie", EstimatedQuantity: "3 cookies", Calories: 300, Protein: 3, Fat: 12}},
	}

	once := NormalizeServings(analysis)
	twice := NormalizeServings(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed the analysis:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalizeServingsNilFoodsIsIdentity(t *testing.T) {
	analysis := MealAnalysis{TotalCalories: 42, Notes: "woof"}
	got := NormalizeServings(analysis)
	if !reflect.DeepEqual(got, analysis) {
		t.Errorf("got %+v, want unchanged %+v", got, analysis)
	}
}

func TestNormalizeServingsDoesNotMutateInput(t *testing.T) {
	analysis := MealAnalysis{
		Foods: []FoodItem{{Name: "cookie", EstimatedQuantity: "3 cookies", Calories: 300}},
	}
	NormalizeServings(analysis)
	if analysis.Foods[0].Calories != 300 || analysis.Foods[0].EstimatedQuantity != "3 cookies" {
		t.Errorf("input mutated: %+v", analysis.Foods[0])
	}
}

func TestSumUnitTotalsHonorsMultipliers(t *testing.T) {
	foods := []FoodItem{
		{Calories: 100, ServingMultiplier: 1},
		{Calories: 50, ServingMultiplier: 2},
		{Calories: 200, ServingMultiplier: 0.5},
	}
	got := SumUnitTotals(foods)
	if got.Calories != 300 {
		t.Errorf("calories = %v, want 300", got.Calories)
	}
}

func TestSumUnitTotalsTreatsMissingMultiplierAsOne(t *testing.T) {
	foods := []FoodItem{
		{Calories: 120, Protein: 6},
		{Calories: 80, Protein: 2, ServingMultiplier: 3},
	}
	got := SumUnitTotals(foods)
	if got.Calories != 360 {
		t.Errorf("calories = %v, want 360", got.Calories)
	}
	if got.Protein != 12 {
		t.Errorf("protein = %v, want 12", got.Protein)
	}
}

func TestSumUnitTotalsZeroMacrosPassThrough(t *testing.T) {
	got := SumUnitTotals([]FoodItem{{Name: "water", EstimatedQuantity: "1 glass"}})
	if got != (Totals{}) {
		t.Errorf("got %+v, want all zeros", got)
	}
}
