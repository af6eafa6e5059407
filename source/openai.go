package source

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/LumaLabs/lexipage"
	"github.com/sashabaranov/go-openai"
)

// Response shaping limits, matching what clients render.
const (
	maxExamples   = 3
	minExampleLen = 5 // shorter "sentences" are parser debris
)

// OpenAISource implements ExampleSource using an OpenAI-compatible chat
// completions API. Setting BaseURL pointed at another compatible endpoint
// (e.g. https://api.mistral.ai/v1) works unchanged.
type OpenAISource struct {
	client       *openai.Client
	model        string
	temperature  float32
	maxTokens    int
	maxPhraseLen int
}

// OpenAIConfig holds configuration for the OpenAI source.
type OpenAIConfig struct {
	APIKey       string  // API key
	Model        string  // Model to use (default: "gpt-4o-mini")
	Temperature  float32 // Temperature for generation (default: 0.7)
	MaxTokens    int     // Completion token budget (default: 200)
	BaseURL      string  // Custom base URL (optional)
	MaxPhraseLen int     // Maximum phrase length in runes (default: lexipage.MaxPhraseLen)
}

// NewOpenAISource creates a new OpenAI-backed example source.
func NewOpenAISource(cfg OpenAIConfig) *OpenAISource {
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
		temperature = 0.7
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 200
	}

	maxPhraseLen := cfg.MaxPhraseLen
	if maxPhraseLen <= 0 {
		maxPhraseLen = lexipage.MaxPhraseLen
	}

	return &OpenAISource{
		client:       openai.NewClientWithConfig(config),
		model:        model,
		temperature:  temperature,
		maxTokens:    maxTokens,
		maxPhraseLen: maxPhraseLen,
	}
}

// Examples generates a definition and example sentences for a phrase.
// Phrases are validated before any network call; over-limit input is
// rejected rather than sent to the API.
func (s *OpenAISource) Examples(ctx context.Context, phrase string) (Entry, error) {
	key := lexipage.NormalizeKey(phrase)
	if err := lexipage.ValidateKey(key, s.maxPhraseLen); err != nil {
		return Entry{}, err
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(key)},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return Entry{}, &lexipage.ProviderError{
			Message:   "chat completion failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return Entry{}, &lexipage.ProviderError{
			Message:   "no choices in completion",
			Retryable: true,
		}
	}

	entry, err := parseCompletion(resp.Choices[0].Message.Content)
	if err != nil {
		return Entry{}, err
	}

	entry.CreatedAt = time.Now().UTC()
	return entry, nil
}

// buildPrompt returns the fixed instruction template for a phrase.
func buildPrompt(phrase string) string {
	return fmt.Sprintf("For the word/phrase: '%s', provide:\n"+
		"1. A brief definition (1-2 sentences explaining what it means)\n"+
		"2. Three example sentences demonstrating its usage\n\n"+
		"Format your response as JSON with this structure:\n"+
		`{"definition": "Brief definition here", "examples": ["Example 1", "Example 2", "Example 3"]}`,
		phrase)
}

// parseCompletion turns the model output into an Entry. It accepts the
// requested JSON object, a bare JSON array of examples, or (as a salvage
// path) plain text with a definition line followed by example sentences.
func parseCompletion(content string) (Entry, error) {
	text := stripCodeFence(strings.TrimSpace(content))

	// Requested format: {"definition": ..., "examples": [...]}
	var obj struct {
		Definition string   `json:"definition"`
		Examples   []string `json:"examples"`
	}
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		entry := Entry{
			Definition: strings.TrimSpace(obj.Definition),
			Examples:   filterExamples(obj.Examples),
		}
		if !entry.IsZero() {
			return entry, nil
		}
	}

	// Bare array: examples only
	var arr []string
	if err := json.Unmarshal([]byte(text), &arr); err == nil {
		if examples := filterExamples(arr); len(examples) > 0 {
			return Entry{Examples: examples}, nil
		}
	}

	// Plain text salvage
	if entry, ok := salvagePlainText(text); ok {
		return entry, nil
	}

	return Entry{}, &lexipage.ContentError{Message: "completion yielded no usable entry"}
}

// stripCodeFence removes a surrounding markdown code block, if present.
func stripCodeFence(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// filterExamples drops degenerate sentences and caps the list.
func filterExamples(examples []string) []string {
	var result []string
	for _, ex := range examples {
		ex = strings.TrimSpace(ex)
		if utf8.RuneCountInString(ex) >= minExampleLen {
			result = append(result, ex)
		}
		if len(result) == maxExamples {
			break
		}
	}
	return result
}

// definitionMarkers flag a plain-text line that reads like a definition.
var definitionMarkers = []string{" is ", " means ", "refers to", "definition"}

// bulletPrefix matches list markers the model prepends to example lines.
var bulletPrefix = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)

// salvagePlainText extracts a definition and examples from a non-JSON
// completion: the first line that reads like a definition, followed by the
// remaining lines as examples. With four or more lines and no marker, the
// first line is assumed to be the definition.
func salvagePlainText(text string) (Entry, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Entry{}, false
	}

	definition := ""
	var rest []string

	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, marker := range definitionMarkers {
			if strings.Contains(lower, marker) {
				definition = line
				rest = lines[i+1:]
				break
			}
		}
		if definition != "" {
			break
		}
	}

	if definition == "" {
		if len(lines) >= 4 {
			definition = lines[0]
			rest = lines[1:]
		} else {
			rest = lines
		}
	}

	var examples []string
	for _, line := range rest {
		examples = append(examples, bulletPrefix.ReplaceAllString(line, ""))
	}
	examples = filterExamples(examples)

	if definition == "" && len(examples) == 0 {
		return Entry{}, false
	}
	return Entry{Definition: definition, Examples: examples}, true
}

func isRetryableError(err error) bool {
	// Check for common retryable conditions
	errStr := err.Error()
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
		if strings.Contains(strings.ToLower(errStr), pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAISource implements ExampleSource
var _ ExampleSource = (*OpenAISource)(nil)
