// Package openai talks to an OpenAI-style model through langchaingo. It
// covers the three estimation duties: parsing free-text meal descriptions,
// estimating nutrient profiles for named foods, and estimating the gram
// weight of one whole item. Every response field is validated defensively;
// model output is approximate data, never trusted structure.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/captain-stacks/nutrition-gpt/internal/logger"
	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/queue"
	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

// ErrMalformedResponse marks a model payload that stayed unparsable after
// the fenced-JSON unwrap attempt. Terminal for that request only.
var ErrMalformedResponse = errors.New("malformed model response")

const defaultModel = "gpt-4o-mini"

// mealUnits is the constrained vocabulary the parse prompt allows.
const mealUnits = "g, oz, cup, tbsp, tsp, lb, whole"

type Client struct {
	dispatcher *queue.Dispatcher
	complete   func(ctx context.Context, prompt string) (string, error)
}

func NewClient(apiKey, modelName string, d *queue.Dispatcher) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultModel
	}
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("create OpenAI client: %w", err)
	}
	return &Client{
		dispatcher: d,
		complete: func(ctx context.Context, prompt string) (string, error) {
			return llms.GenerateFromSinglePrompt(ctx, llm, prompt, llms.WithTemperature(0))
		},
	}, nil
}

// newClientForTesting wires a fake completion function.
func newClientForTesting(d *queue.Dispatcher, complete func(ctx context.Context, prompt string) (string, error)) *Client {
	return &Client{dispatcher: d, complete: complete}
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	var out string
	run := func(ctx context.Context) error {
		var err error
		out, err = c.complete(ctx, prompt)
		return err
	}
	if c.dispatcher == nil {
		return out, run(ctx)
	}
	if err := c.dispatcher.Do(ctx, run); err != nil {
		return "", err
	}
	return out, nil
}

// ParseMealText turns a multi-line free-text meal description into
// structured items. Items the model returns without a usable name or with
// a non-positive quantity are dropped, not propagated.
func (c *Client) ParseMealText(ctx context.Context, text string) ([]model.ParsedFood, error) {
	prompt := fmt.Sprintf(`Parse the following meal description into a JSON array.
Each element must be {"name": string, "quantity": number, "unit": string}.
"unit" must be one of: %s (full-word synonyms like "grams", "ounces",
"cups", "tablespoons", "teaspoons", "pounds" are acceptable).
Use "whole" for counted items like "2 eggs".
Respond with only the JSON array, no commentary.

Meal description:
%s`, mealUnits, text)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var items []map[string]any
	if err := decodeModelJSON(raw, &items); err != nil {
		return nil, err
	}

	foods := make([]model.ParsedFood, 0, len(items))
	for _, item := range items {
		name, _ := item["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		qty := service.ParseQuantity(item["quantity"])
		if qty.Amount <= 0 {
			continue
		}
		unit, _ := item["unit"].(string)
		if strings.TrimSpace(unit) == "" {
			unit = qty.Unit
		}
		foods = append(foods, model.ParsedFood{
			Name:     name,
			Quantity: qty.Amount,
			Unit:     service.NormalizeUnit(unit),
		})
	}
	return foods, nil
}

// EstimatedProfile is a nutrient profile as the model reports it: amounts
// with free-form unit strings, plus a serving descriptor.
type EstimatedProfile struct {
	Nutrients     map[string]model.ParsedQuantity
	ServingAmount float64
	ServingUnit   string
	ServingGrams  float64
}

// EstimateProfile asks for a per-serving nutrient profile of one food.
func (c *Client) EstimateProfile(ctx context.Context, name string) (EstimatedProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return EstimatedProfile{}, fmt.Errorf("food name is required")
	}
	prompt := fmt.Sprintf(`Provide a nutrient profile for %q as a single JSON object:
{
  "serving": {"amount": number, "unit": string, "grams": number},
  "nutrients": {
    "calories": {"amount": number, "unit": "kcal"},
    "protein": {"amount": number, "unit": "g"},
    ... one entry per nutrient you can estimate, using keys from:
    calories, protein, fat, carbs, omega3, omega6, zinc, b12, magnesium,
    vitaminE, vitaminK, vitaminA, monounsaturated, selenium, iron,
    vitaminD, b1, choline, calcium, potassium, iodine, vitaminC, folate
  }
}
"grams" is the weight of one serving in grams and must be positive.
Respond with only the JSON object.`, name)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return EstimatedProfile{}, err
	}

	var decoded struct {
		Serving   map[string]any            `json:"serving"`
		Nutrients map[string]map[string]any `json:"nutrients"`
	}
	if err := decodeModelJSON(raw, &decoded); err != nil {
		return EstimatedProfile{}, err
	}

	out := EstimatedProfile{Nutrients: map[string]model.ParsedQuantity{}}
	for key, fields := range decoded.Nutrients {
		qty := service.ParseQuantity(fields["amount"])
		if qty.Amount < 0 {
			continue
		}
		if unit, ok := fields["unit"].(string); ok && qty.Unit == "" {
			qty.Unit = strings.TrimSpace(unit)
		}
		out.Nutrients[strings.TrimSpace(key)] = qty
	}
	if len(out.Nutrients) == 0 {
		return EstimatedProfile{}, fmt.Errorf("%w: no usable nutrients for %q", ErrMalformedResponse, name)
	}

	servingQty := service.ParseQuantity(decoded.Serving["amount"])
	out.ServingAmount = servingQty.Amount
	if unit, ok := decoded.Serving["unit"].(string); ok {
		out.ServingUnit = strings.TrimSpace(unit)
	}
	out.ServingGrams = service.ParseQuantity(decoded.Serving["grams"]).Amount
	if out.ServingGrams <= 0 {
		// Fall back to converting the serving descriptor itself.
		if grams, ok := service.ConvertToGrams(out.ServingAmount, out.ServingUnit); ok && grams > 0 {
			out.ServingGrams = grams
		} else {
			logger.Warn("model serving size unusable, assuming 100 g", "food", name)
			out.ServingAmount, out.ServingUnit, out.ServingGrams = 100, "g", 100
		}
	}
	return out, nil
}

// EstimateWholeGrams implements service.WeightEstimator: the gram weight of
// one whole item of the named food.
func (c *Client) EstimateWholeGrams(ctx context.Context, name string, quantity float64, unit string) (float64, error) {
	prompt := fmt.Sprintf(`Estimate the weight in grams of one %s of %q.
The request context is %g %s of %q.
Respond with a single JSON object: {"grams": number}. The number must be
positive. Respond with only the JSON object.`, unit, name, quantity, unit, name)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return 0, err
	}

	var decoded map[string]any
	if err := decodeModelJSON(raw, &decoded); err != nil {
		return 0, err
	}
	grams := service.ParseQuantity(decoded["grams"]).Amount
	if grams <= 0 {
		return 0, fmt.Errorf("%w: non-positive gram estimate for %q", ErrMalformedResponse, name)
	}
	return grams, nil
}

// decodeModelJSON parses model output, retrying once after stripping
// triple-backtick fences. Models wrap JSON in fences routinely; that is a
// normal variant, not an error.
func decodeModelJSON(raw string, dest any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), dest); err == nil {
		return nil
	}
	unwrapped := UnwrapJSONFence(raw)
	if err := json.Unmarshal([]byte(unwrapped), dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// UnwrapJSONFence strips a ```json ... ``` (or bare ```) fence around a
// payload, returning the inner text.
func UnwrapJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
