package services

// JSON schemas for structured model output. The model is required to match
// these exactly (strict mode), so the decode side can stay dumb.

var nutritionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"foods": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":               map[string]any{"type": "string", "description": "Name of the food item"},
					"estimated_quantity": map[string]any{"type": "string", "description": "Estimated portion size"},
					"calories":           map[string]any{"type": "number", "description": "Calories in the food item"},
					"protein":            map[string]any{"type": "number", "description": "Protein content in grams"},
					"carbs":              map[string]any{"type": "number", "description": "Carbohydrate content in grams"},
					"fat":                map[string]any{"type": "number", "description": "Fat content in grams"},
					"fiber":              map[string]any{"type": "number", "description": "Fiber content in grams"},
					"sugar":              map[string]any{"type": "number", "description": "Sugar content in grams"},
					"confidence": map[string]any{
						"type":        "string",
						"enum":        []string{"high", "medium", "low"},
						"description": "Confidence level in the analysis",
					},
				},
				"required": []string{
					"name", "estimated_quantity", "calories", "protein",
					"carbs", "fat", "fiber", "sugar", "confidence",
				},
				"additionalProperties": false,
			},
		},
		"total_calories": map[string]any{"type": "number", "description": "Total calories for the entire meal"},
		"total_protein":  map[string]any{"type": "number", "description": "Total protein content in grams"},
		"total_carbs":    map[string]any{"type": "number", "description": "Total carbohydrate content in grams"},
		"total_fat":      map[string]any{"type": "number", "description": "Total fat content in grams"},
		"total_fiber":    map[string]any{"type": "number", "description": "Total fiber content in grams"},
		"total_sugar":    map[string]any{"type": "number", "description": "Total sugar content in grams"},
		"meal_type": map[string]any{
			"type":        "string",
			"enum":        []string{"breakfast", "lunch", "dinner", "snack"},
			"description": "Type of meal",
		},
		"notes": map[string]any{"type": "string", "description": "Additional observations about the meal"},
	},
	"required": []string{
		"foods", "total_calories", "total_protein", "total_carbs",
		"total_fat", "total_fiber", "total_sugar", "meal_type", "notes",
	},
	"additionalProperties": false,
}

var goalAnalysisSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"trend": map[string]any{
			"type":        "string",
			"description": "Brief assessment of current trend (1-2 sentences)",
		},
		"recommendation": map[string]any{
			"type":        "string",
			"description": "Specific, actionable recommendation to improve goal compliance (2-3 sentences)",
		},
	},
	"required":             []string{"trend", "recommendation"},
	"additionalProperties": false,
}

var todayRecommendationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"recommendation": map[string]any{
			"type":        "string",
			"description": "Formatted recommendation with sections separated by line breaks.",
		},
	},
	"required":             []string{"recommendation"},
	"additionalProperties": false,
}

var goalDefinitionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":               map[string]any{"type": "string", "description": "Short goal name"},
		"description":        map[string]any{"type": "string", "description": "One-paragraph goal description"},
		"guidelines":         map[string]any{"type": "string", "description": "Concrete dietary guidelines"},
		"evaluationCriteria": map[string]any{"type": "string", "description": "How to judge meal compliance"},
		"targets": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"calories": map[string]any{"type": []string{"number", "null"}},
				"protein":  map[string]any{"type": []string{"number", "null"}},
				"carbs":    map[string]any{"type": []string{"number", "null"}},
				"fat":      map[string]any{"type": []string{"number", "null"}},
			},
			"required":             []string{"calories", "protein", "carbs", "fat"},
			"additionalProperties": false,
		},
	},
	"required":             []string{"name", "description", "guidelines", "evaluationCriteria", "targets"},
	"additionalProperties": false,
}
