package gloss

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/gosign"
	"github.com/sashabaranov/go-openai"
)

// OpenAIGlosser implements Glosser using OpenAI's API.
type OpenAIGlosser struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI glosser.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIGlosser creates a new OpenAI-backed glosser.
func NewOpenAIGlosser(cfg OpenAIConfig) *OpenAIGlosser {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAIGlosser{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Gloss converts a batch of texts into sign-language gloss notation.
func (g *OpenAIGlosser) Gloss(ctx context.Context, req GlossRequest) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: g.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: g.buildUserMessage(req)},
		},
		Temperature: g.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return g.parseResponse(resp.Choices[0].Message.Content, len(req.Texts))
}

func (g *OpenAIGlosser) buildSystemPrompt(req GlossRequest) string {
	langName := gosign.GetSignLanguageName(req.SignLanguage)

	contextText := "The content is general conversational text."
	if req.Context != "" {
		contextText = fmt.Sprintf("The content is for: %s.", req.Context)
	}

	prompt := fmt.Sprintf(`# Role
You are an expert %s interpreter. You transcribe spoken-language text into %s gloss notation.

# Context
%s

# Task
Convert each provided text into %s gloss.

# Gloss Conventions
- **Notation**: Write signs in UPPERCASE, separated by spaces (e.g., HOME I GO).
- **Grammar**: Use the sign language's own word order, not the source language's.
- **Fingerspelling**: Prefix fingerspelled words with fs- (e.g., fs-JOHN).
- **Non-manual markers**: Append question/topic markers in square brackets when essential (e.g., [q], [t]).
- **Dropped words**: Omit articles, copulas and other words the sign language does not express.
- **Numbers and names**: Keep digits as digits; fingerspell proper names.

# Format
Return a valid JSON object with a single key "glosses" containing an array of strings in the exact same order as the input.
Example: { "glosses": ["HOME I GO", "YOU NAME WHAT [q]"] }
Do NOT wrap in Markdown code blocks.`, langName, langName, contextText, langName)

	return prompt
}

func (g *OpenAIGlosser) buildUserMessage(req GlossRequest) string {
	data, _ := json.Marshal(req.Texts)
	return string(data)
}

func (g *OpenAIGlosser) parseResponse(content string, expectedCount int) ([]string, error) {
	// Try parsing as object first
	var objResult map[string]interface{}
	if err := json.Unmarshal([]byte(content), &objResult); err == nil {
		// Look for "glosses" key
		if glosses, ok := objResult["glosses"]; ok {
			if arr, ok := glosses.([]interface{}); ok {
				return toStringSlice(arr, expectedCount)
			}
		}

		// Fallback: find first array value
		for _, v := range objResult {
			if arr, ok := v.([]interface{}); ok {
				return toStringSlice(arr, expectedCount)
			}
		}
	}

	// Try parsing as direct array
	var arrResult []interface{}
	if err := json.Unmarshal([]byte(content), &arrResult); err == nil {
		return toStringSlice(arrResult, expectedCount)
	}

	return nil, &ProviderError{
		Message:   "invalid response format from OpenAI",
		Retryable: false,
	}
}

func toStringSlice(arr []interface{}, expectedCount int) ([]string, error) {
	result := make([]string, len(arr))
	for i, v := range arr {
		if s, ok := v.(string); ok {
			result[i] = s
		} else {
			result[i] = fmt.Sprintf("%v", v)
		}
	}

	if len(result) != expectedCount {
		return nil, &CountMismatchError{
			Expected: expectedCount,
			Got:      len(result),
		}
	}

	return result, nil
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIGlosser implements Glosser
var _ Glosser = (*OpenAIGlosser)(nil)
