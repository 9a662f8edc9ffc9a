// Package categorize suggests an expense category from a free-text
// description, backed by an OpenAI-compatible chat API with an LRU cache
// in front of it.
package categorize

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Categories is the closed set a suggestion is drawn from. Anything the
// model returns outside this set is mapped to "other".
var Categories = []string{
	"food",
	"transportation",
	"housing",
	"utilities",
	"entertainment",
	"healthcare",
	"education",
	"shopping",
	"travel",
	"other",
}

// Suggestion is a single category suggestion with model confidence.
type Suggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Client suggests a category for an expense description.
type Client interface {
	SuggestCategory(ctx context.Context, description string) (*Suggestion, error)
}

// OpenAIClient implements Client against an OpenAI-compatible API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient constructs a client. baseURL may be empty for the public
// OpenAI endpoint, or point at any compatible server.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

const systemPrompt = `You are an expense categorizer for a personal finance tracker.

Assign the expense description to exactly one category:
- food: groceries, restaurants, cafes, takeaway
- transportation: fuel, public transport, parking, rideshare
- housing: rent, mortgage, repairs, furniture
- utilities: power, water, gas, internet, phone plans
- entertainment: streaming, games, concerts, hobbies
- healthcare: doctors, pharmacy, insurance premiums
- education: courses, books, tuition
- shopping: clothing, electronics, general retail
- travel: flights, hotels, holidays
- other: anything that fits none of the above

Return JSON only: {"category": "...", "confidence": 0.0-1.0}`

var suggestionSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"category": {
			"type": "string",
			"enum": ["food", "transportation", "housing", "utilities", "entertainment", "healthcare", "education", "shopping", "travel", "other"],
			"description": "The expense category"
		},
		"confidence": {
			"type": "number",
			"minimum": 0,
			"maximum": 1,
			"description": "Confidence score between 0 and 1"
		}
	},
	"required": ["category", "confidence"],
	"additionalProperties": false
}`)

// SuggestCategory asks the model to categorize a single description.
func (c *OpenAIClient) SuggestCategory(ctx context.Context, description string) (*Suggestion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: description,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "suggestion",
				Schema: suggestionSchema,
				Strict: true,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call AI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return &suggestion, nil
}
