package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Tzeak/yumlog/nutrition"
)

// OpenAIService talks to the chat-completions API with JSON-schema
// structured output. All nutrition intelligence lives behind this client;
// the rest of the app only sees the structured shapes it returns.
type OpenAIService struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewOpenAIService() *OpenAIService {
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-2024-08-06"
	}
	return &OpenAIService{
		client:  &http.Client{Timeout: 60 * time.Second},
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
	Strict bool           `json:"strict"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// completeStructured performs one structured-output call and returns the raw
// JSON payload the model produced.
func (s *OpenAIService) completeStructured(system string, user []contentPart, schemaName string, schema map[string]any, maxTokens int) ([]byte, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not configured")
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: maxTokens,
		ResponseFormat: responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchema{Name: schemaName, Schema: schema, Strict: true},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read openai response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("openai api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("openai api error (%d): %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse openai response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}
	choice := out.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("openai refused the request: %s", choice.Message.Refusal)
	}
	if choice.FinishReason == "length" {
		return nil, fmt.Errorf("incomplete response: max tokens exceeded")
	}
	return []byte(choice.Message.Content), nil
}

// AnalyzeImage sends a meal photo (raw bytes) for nutrition analysis.
// ingredientNotes carries reanalysis corrections; userDescription carries
// the user's own description of the meal. The returned analysis is already
// serving-size normalized.
func (s *OpenAIService) AnalyzeImage(image []byte, ingredientNotes, userDescription string) (nutrition.MealAnalysis, error) {
	prompt := "Analyze this food image and provide detailed nutritional information. Be as accurate as possible with portion sizes and nutritional values. If you're unsure about specific values, provide reasonable estimates and mark confidence as 'low'."

	if userDescription != "" {
		prompt = fmt.Sprintf(`Analyze this food image with the following user description: %s

Use this description to help identify ingredients and estimate portion sizes more accurately. Consider the user's description when analyzing the image and calculating nutritional values.

Provide detailed nutritional information. Be as accurate as possible with portion sizes and nutritional values. If you're unsure about specific values, provide reasonable estimates and mark confidence as 'low'.`, userDescription)
	} else if ingredientNotes != "" {
		prompt = fmt.Sprintf(`Please reanalyze this food image with the following additional information: %s

Consider this information when identifying ingredients and estimating nutritional values. If the user mentions specific ingredients, make sure to include them in your analysis. If they mention corrections to previous analysis, incorporate those corrections.

Provide detailed nutritional information. Be as accurate as possible with portion sizes and nutritional values. If you're unsure about specific values, provide reasonable estimates and mark confidence as 'low'.`, ingredientNotes)
	}

	user := []contentPart{
		{Type: "text", Text: prompt},
		{Type: "image_url", ImageURL: &imageURL{URL: dataURI(image)}},
	}

	raw, err := s.completeStructured(
		"You are a nutrition expert. Analyze food images and provide detailed nutritional information in a structured format.",
		user, "nutrition_analysis", nutritionSchema, 1000,
	)
	if err != nil {
		return nutrition.MealAnalysis{}, fmt.Errorf("failed to analyze image: %w", err)
	}
	return parseAnalysis(raw)
}

// AnalyzeText analyzes a free-text meal description. The returned analysis
// is already serving-size normalized.
func (s *OpenAIService) AnalyzeText(description string) (nutrition.MealAnalysis, error) {
	user := []contentPart{{Type: "text", Text: fmt.Sprintf(`Analyze this meal description and provide detailed nutritional information: %s

Be as accurate as possible with portion sizes and nutritional values. If you're unsure about specific values, provide reasonable estimates and mark confidence as 'low'. Consider typical serving sizes for the foods mentioned.`, description)}}

	raw, err := s.completeStructured(
		"You are a nutrition expert. Analyze text descriptions of meals and provide detailed nutritional information in a structured format. Be as accurate as possible with portion sizes and nutritional values based on the description provided.",
		user, "nutrition_analysis", nutritionSchema, 1000,
	)
	if err != nil {
		return nutrition.MealAnalysis{}, fmt.Errorf("failed to analyze text description: %w", err)
	}
	return parseAnalysis(raw)
}

func parseAnalysis(raw []byte) (nutrition.MealAnalysis, error) {
	var analysis nutrition.MealAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nutrition.MealAnalysis{}, fmt.Errorf("failed to parse structured response: %w", err)
	}
	return nutrition.NormalizeServings(analysis), nil
}

func dataURI(image []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)
}

// GoalInsight is the model's verdict on goal compliance.
type GoalInsight struct {
	Trend          string `json:"trend"`
	Recommendation string `json:"recommendation"`
}

// AnalyzeGoalProgress scores a prepared meal-history prompt against a goal.
func (s *OpenAIService) AnalyzeGoalProgress(prompt string) (*GoalInsight, error) {
	raw, err := s.completeStructured(
		"You are a nutrition expert. Analyze meal data for diet goal compliance and provide encouraging, actionable advice.",
		[]contentPart{{Type: "text", Text: prompt}},
		"goal_analysis", goalAnalysisSchema, 500,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze goal progress: %w", err)
	}
	var out GoalInsight
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse goal analysis: %w", err)
	}
	return &out, nil
}

// TodayInsight is the model's advice for the rest of the day.
type TodayInsight struct {
	Recommendation string `json:"recommendation"`
}

// AnalyzeTodayRecommendation asks for rest-of-day advice from a prepared
// today's-meals prompt.
func (s *OpenAIService) AnalyzeTodayRecommendation(prompt string) (*TodayInsight, error) {
	raw, err := s.completeStructured(
		"You are a nutrition expert. Provide specific, actionable advice for what to eat for the rest of today based on what they've already eaten.",
		[]contentPart{{Type: "text", Text: prompt}},
		"today_recommendation", todayRecommendationSchema, 300,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze today's recommendation: %w", err)
	}
	var out TodayInsight
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse today's recommendation: %w", err)
	}
	return &out, nil
}

// GoalDraft is a model-generated goal definition ready for user review.
type GoalDraft struct {
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Guidelines         string      `json:"guidelines"`
	EvaluationCriteria string      `json:"evaluationCriteria"`
	Targets            GoalTargets `json:"targets"`
}

type GoalTargets struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

// GenerateGoal turns a free-text goal description into structured
// guidelines and evaluation criteria.
func (s *OpenAIService) GenerateGoal(description string) (*GoalDraft, error) {
	prompt := fmt.Sprintf(`Create a dietary goal definition from this description: %s

Produce a short name, a one-paragraph description, concrete dietary guidelines (what to eat, what to avoid, target macro ranges where they apply), and evaluation criteria that can be used to judge whether a week of meals complied with the goal. Include numeric daily targets for calories, protein, carbs, and fat only when the goal implies them; otherwise leave them null.`, description)

	raw, err := s.completeStructured(
		"You are a nutrition expert. Turn free-text dietary objectives into structured, actionable goal definitions.",
		[]contentPart{{Type: "text", Text: prompt}},
		"goal_definition", goalDefinitionSchema, 700,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate goal: %w", err)
	}
	var out GoalDraft
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse generated goal: %w", err)
	}
	return &out, nil
}
