package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
)

// ParseQuantity turns a loosely-typed external amount value into a
// ParsedQuantity. External sources send numbers, numeric strings, strings
// with trailing units ("30 g"), or nested {amount, unit} objects. The
// function is total: anything unusable yields {0, ""}.
func ParseQuantity(raw any) model.ParsedQuantity {
	switch v := raw.(type) {
	case nil:
		return model.ParsedQuantity{}
	case float64:
		return model.ParsedQuantity{Amount: finiteOrZero(v)}
	case float32:
		return model.ParsedQuantity{Amount: finiteOrZero(float64(v))}
	case int:
		return model.ParsedQuantity{Amount: float64(v)}
	case int64:
		return model.ParsedQuantity{Amount: float64(v)}
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return model.ParsedQuantity{}
		}
		return model.ParsedQuantity{Amount: finiteOrZero(f)}
	case string:
		return parseQuantityString(v)
	case map[string]any:
		amount := ParseQuantity(firstPresent(v, "amount", "value", "quantity"))
		if unit, ok := v["unit"].(string); ok && amount.Unit == "" {
			amount.Unit = strings.TrimSpace(unit)
		}
		return amount
	default:
		return model.ParsedQuantity{}
	}
}

// parseQuantityString handles "30", "30.5 g", "30g", "1/2 cup".
func parseQuantityString(s string) model.ParsedQuantity {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.ParsedQuantity{}
	}
	numEnd := 0
	for numEnd < len(s) {
		c := s[numEnd]
		if (c >= '0' && c <= '9') || c == '.' || c == '/' || (numEnd == 0 && c == '-') {
			numEnd++
			continue
		}
		break
	}
	if numEnd == 0 {
		return model.ParsedQuantity{Unit: s}
	}
	amount, ok := parseNumberOrFraction(s[:numEnd])
	if !ok {
		return model.ParsedQuantity{Unit: strings.TrimSpace(s[numEnd:])}
	}
	return model.ParsedQuantity{
		Amount: finiteOrZero(amount),
		Unit:   strings.TrimSpace(s[numEnd:]),
	}
}

func parseNumberOrFraction(s string) (float64, bool) {
	if num, den, found := strings.Cut(s, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}
