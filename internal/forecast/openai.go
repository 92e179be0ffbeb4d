package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIForecaster asks a chat-completion model for the 30-day demand
// forecast. Any failure, including an unparseable reply, surfaces as an
// error so the orchestrator can fall back.
type OpenAIForecaster struct {
	client *openai.Client
	model  string
}

func NewOpenAIForecaster(apiKey, model string) *OpenAIForecaster {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIForecaster{client: openai.NewClient(apiKey), model: model}
}

const forecastSystemPrompt = "You are an inventory demand forecasting AI for a furniture store."

func (f *OpenAIForecaster) Forecast(ctx context.Context, snapshot []ProductSnapshot, month string, year int) (*AIResult, error) {
	prompt, err := buildPrompt(snapshot, month, year)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: forecastSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("forecast completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("forecast completion returned no choices")
	}

	return decodeResult(resp.Choices[0].Message.Content)
}

func buildPrompt(snapshot []ProductSnapshot, month string, year int) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Analyze the following sales and inventory data, then predict demand for the next 30 days.\n\n")
	fmt.Fprintf(&sb, "Current Date: %s %d\n", month, year)
	fmt.Fprintf(&sb, "Product Sales Data: %s\n\n", data)
	sb.WriteString(`For each product, provide:
1. Predicted demand (units) for next 30 days
2. Confidence score (0-1)
3. Seasonality level (high/medium/low)
4. Trend direction (up/down/stable)
5. Key factors influencing the prediction

Respond in this exact JSON format:
{
  "forecasts": [
    {
      "productName": "...",
      "sku": "...",
      "predictedQty": 0,
      "confidence": 0.0,
      "seasonality": "medium",
      "trend": "stable",
      "factors": "explanation of factors"
    }
  ],
  "summary": "brief overall market analysis",
  "recommendations": ["actionable recommendation 1", "recommendation 2"]
}`)
	return sb.String(), nil
}

// decodeResult extracts the JSON object from the model reply and decodes it.
// Entries missing a SKU or product name are dropped rather than failing the
// whole response.
func decodeResult(reply string) (*AIResult, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in forecast reply")
	}

	var result AIResult
	if err := json.Unmarshal([]byte(reply[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to decode forecast reply: %w", err)
	}

	valid := result.Forecasts[:0]
	for _, e := range result.Forecasts {
		if e.SKU == "" || e.ProductName == "" {
			continue
		}
		if e.Confidence < 0 {
			e.Confidence = 0
		}
		if e.Confidence > 1 {
			e.Confidence = 1
		}
		valid = append(valid, e)
	}
	result.Forecasts = valid
	if len(result.Forecasts) == 0 {
		return nil, fmt.Errorf("forecast reply contained no usable forecasts")
	}
	return &result, nil
}
