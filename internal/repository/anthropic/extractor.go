package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"shopSense/domain"
)

const extractionSystemPrompt = `You extract structured shopping intent from a user query.
Respond with a single JSON object and nothing else, using these keys:
  category (string), max_price (number), min_price (number),
  eco_friendly (bool), preferences (string array), use_case (string),
  priority ("price"|"quality"|"eco"|"balanced"),
  brand_preferences (string array), excluded_brands (string array),
  keywords (string array).
Omit keys you cannot infer. Never invent prices the user did not state.`

// Extractor parses shopping queries into structured intent with Claude.
type Extractor struct {
	client sdk.Client
	model  string
}

func NewExtractor(apiKey, model string) *Extractor {
	return &Extractor{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (e *Extractor) Extract(ctx context.Context, query string) (domain.ParsedIntent, error) {
	if err := ctx.Err(); err != nil {
		return domain.ParsedIntent{}, fmt.Errorf("context error: %w", err)
	}

	message, err := e.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(e.model),
		MaxTokens: 1024,
		System: []sdk.TextBlockParam{
			{Text: extractionSystemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(query)),
		},
		Temperature: sdk.Float(0.1),
	})
	if err != nil {
		return domain.ParsedIntent{}, fmt.Errorf("intent extraction request failed: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	parsed, err := decodeIntent(text.String())
	if err != nil {
		return domain.ParsedIntent{}, err
	}

	return parsed, nil
}

// decodeIntent tolerates markdown code fences around the JSON object.
func decodeIntent(raw string) (domain.ParsedIntent, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.IndexByte(cleaned, '{')
	end := strings.LastIndexByte(cleaned, '}')
	if start < 0 || end < start {
		return domain.ParsedIntent{}, fmt.Errorf("no JSON object in extraction response")
	}

	var parsed domain.ParsedIntent
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err != nil {
		return domain.ParsedIntent{}, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	parsed.Normalize()
	return parsed, nil
}
