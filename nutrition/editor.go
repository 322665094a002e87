package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// MinServingMultiplier is the floor enforced on edit-time serving
// adjustments. The ingestion-time multiplier in normalize.go is a separate,
// uncapped range.
const MinServingMultiplier = 0.1

var ErrItemNotFound = errors.New("ingredient not found")

// EditableItem is one ingredient in an edit session. The original* fields
// hold the unit-serving values captured when the session started and are
// never changed by serving adjustments; the displayed macro fields are
// always original x multiplier.
type EditableItem struct {
	ID                string
	Name              string
	QuantityText      string // original quantity label, empty for legacy records
	Confidence        string
	ServingMultiplier float64

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sugar    float64

	originalCalories float64
	originalProtein  float64
	originalCarbs    float64
	originalFat      float64
	originalFiber    float64
	originalSugar    float64
}

// Editor holds the ingredient list for one interactive edit session. All
// operations are synchronous and touch only in-memory state; a single
// session is the only writer.
type Editor struct {
	items    []*EditableItem
	index    map[string]*EditableItem
	mealType string
	title    string
	notes    string

	// set when ingredient identity/content changes in a way only the model
	// can re-price; gates saving until reanalysis or discard
	needsReanalysis bool
	ingredientNotes string
}

// NewEditor starts an edit session from a (normalized) analysis. Unit macro
// values become the immutable originals; displayed values start at
// unit x multiplier.
func NewEditor(analysis MealAnalysis) *Editor {
	e := &Editor{
		index:    make(map[string]*EditableItem, len(analysis.Foods)),
		mealType: analysis.MealType,
		title:    analysis.MealTitle,
		notes:    analysis.Notes,
	}
	for _, f := range analysis.Foods {
		e.add(f)
	}
	return e
}

func (e *Editor) add(f FoodItem) *EditableItem {
	m := f.Multiplier()
	it := &EditableItem{
		ID:                uuid.NewString(),
		Name:              f.Name,
		QuantityText:      f.EstimatedQuantity,
		Confidence:        f.Confidence,
		ServingMultiplier: m,
		Calories:          f.Calories * m,
		Protein:           f.Protein * m,
		Carbs:             f.Carbs * m,
		Fat:               f.Fat * m,
		Fiber:             f.Fiber * m,
		Sugar:             f.Sugar * m,
		originalCalories:  f.Calories,
		originalProtein:   f.Protein,
		originalCarbs:     f.Carbs,
		originalFat:       f.Fat,
		originalFiber:     f.Fiber,
		originalSugar:     f.Sugar,
	}
	e.items = append(e.items, it)
	e.index[it.ID] = it
	return it
}

// Items returns the current list in detection/add order.
func (e *Editor) Items() []EditableItem {
	out := make([]EditableItem, len(e.items))
	for i, it := range e.items {
		out[i] = *it
	}
	return out
}

// UpdateServing rescales one item's displayed macros from its stored unit
// values. Multipliers below the floor are clamped up to exactly 0.1.
// Serving adjustments never require reanalysis.
func (e *Editor) UpdateServing(id string, multiplier float64) error {
	it, ok := e.index[id]
	if !ok {
		return ErrItemNotFound
	}
	if multiplier < MinServingMultiplier {
		multiplier = MinServingMultiplier
	}
	it.ServingMultiplier = multiplier
	it.Calories = math.Round(it.originalCalories * multiplier)
	it.Protein = round1(it.originalProtein * multiplier)
	it.Carbs = round1(it.originalCarbs * multiplier)
	it.Fat = round1(it.originalFat * multiplier)
	it.Fiber = round1(it.originalFiber * multiplier)
	it.Sugar = round1(it.originalSugar * multiplier)
	return nil
}

// Remove deletes an item from the session. A local operation; never requires
// reanalysis.
func (e *Editor) Remove(id string) error {
	if _, ok := e.index[id]; !ok {
		return ErrItemNotFound
	}
	delete(e.index, id)
	for i, it := range e.items {
		if it.ID == id {
			e.items = append(e.items[:i], e.items[i+1:]...)
			break
		}
	}
	return nil
}

// Totals sums the current displayed macros across all items. This is the
// only place session totals are computed; they are never stored separately.
func (e *Editor) Totals() Totals {
	var t Totals
	for _, it := range e.items {
		t.Calories += it.Calories
		t.Protein += it.Protein
		t.Carbs += it.Carbs
		t.Fat += it.Fat
		t.Fiber += it.Fiber
		t.Sugar += it.Sugar
	}
	return t
}

// EditIngredients records a free-text ingredient correction. Only the model
// can map new text to macro estimates, so this flags the session for
// reanalysis, gating the save action.
func (e *Editor) EditIngredients(notes string) {
	e.ingredientNotes = notes
	e.needsReanalysis = true
}

// IngredientNotes returns the pending free-text correction, if any.
func (e *Editor) IngredientNotes() string { return e.ingredientNotes }

// NeedsReanalysis reports whether a fresh model call must happen before the
// session can be saved.
func (e *Editor) NeedsReanalysis() bool { return e.needsReanalysis }

// ReplaceAnalysis swaps in the result of a reanalysis, replacing the whole
// item list and clearing the dirty flag.
func (e *Editor) ReplaceAnalysis(analysis MealAnalysis) {
	e.items = nil
	e.index = make(map[string]*EditableItem, len(analysis.Foods))
	e.mealType = analysis.MealType
	e.title = analysis.MealTitle
	e.notes = analysis.Notes
	for _, f := range analysis.Foods {
		e.add(f)
	}
	e.needsReanalysis = false
	e.ingredientNotes = ""
}

// Analysis exports the session as a MealAnalysis with totals recomputed from
// the current items.
func (e *Editor) Analysis() MealAnalysis {
	foods := make([]FoodItem, 0, len(e.items))
	for _, it := range e.items {
		foods = append(foods, FoodItem{
			Name:              it.Name,
			EstimatedQuantity: it.QuantityText,
			Confidence:        it.Confidence,
			ServingMultiplier: it.ServingMultiplier,
			Calories:          it.originalCalories,
			Protein:           it.originalProtein,
			Carbs:             it.originalCarbs,
			Fat:               it.originalFat,
			Fiber:             it.originalFiber,
			Sugar:             it.originalSugar,
		})
	}
	t := e.Totals()
	return MealAnalysis{
		Foods:         foods,
		TotalCalories: t.Calories,
		TotalProtein:  t.Protein,
		TotalCarbs:    t.Carbs,
		TotalFat:      t.Fat,
		TotalFiber:    t.Fiber,
		TotalSugar:    t.Sugar,
		MealType:      e.mealType,
		MealTitle:     e.title,
		Notes:         e.notes,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatServingDisplay renders a quantity label with its multiplier applied,
// e.g. "2 cups x 1.5 = 3.0 cups". Free-form labels fall back to
// "<label> x <multiplier>"; missing labels read "Unknown quantity".
func FormatServingDisplay(quantityText string, multiplier float64) string {
	if quantityText == "" {
		if multiplier == 1 {
			return "Unknown quantity"
		}
		return fmt.Sprintf("Unknown quantity × %.1f", multiplier)
	}
	if multiplier == 1 {
		return quantityText
	}

	if m := quantityPattern.FindStringSubmatch(quantityText); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return fmt.Sprintf("%s × %.1f = %.1f %s", quantityText, multiplier, n*multiplier, m[2])
		}
	}
	return fmt.Sprintf("%s × %.1f", quantityText, multiplier)
}
