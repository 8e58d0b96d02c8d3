// Package usda is a thin client for the USDA FoodData Central search API.
// It returns raw nutrient triples; the service layer owns the translation
// into canonical nutrient keys.
package usda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/captain-stacks/nutrition-gpt/internal/queue"
)

const defaultBaseURL = "https://api.nal.usda.gov"

// FoodRecord is one search hit with its nutrient triples still in the
// external vocabulary.
type FoodRecord struct {
	FDCID           int64      `json:"fdc_id"`
	Description     string     `json:"description"`
	ServingSize     float64    `json:"serving_size"`
	ServingSizeUnit string     `json:"serving_size_unit"`
	Nutrients       []Nutrient `json:"nutrients"`
}

type Nutrient struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Search queries FoodData Central for foods matching a free-text query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]FoodRecord, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("missing USDA API key")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 10
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	reqBody := map[string]any{
		"query":    query,
		"dataType": []string{"Foundation", "SR Legacy", "Branded"},
		"pageSize": limit,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal USDA search payload: %w", err)
	}

	url := fmt.Sprintf("%s/fdc/v1/foods/search?api_key=%s", baseURL, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create USDA request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute USDA request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read USDA response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &queue.RateLimitedError{
			RetryAfter: retryAfterHeader(resp),
			Err:        fmt.Errorf("USDA request throttled"),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("USDA request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode USDA response: %w", err)
	}

	records := make([]FoodRecord, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		rec := FoodRecord{
			FDCID:           f.FDCID,
			Description:     strings.TrimSpace(f.Description),
			ServingSize:     f.ServingSize,
			ServingSizeUnit: strings.TrimSpace(f.ServingSizeUnit),
		}
		for _, n := range f.FoodNutrients {
			rec.Nutrients = append(rec.Nutrients, Nutrient{
				Name:  strings.TrimSpace(n.NutrientName),
				Value: n.Value,
				Unit:  strings.TrimSpace(n.UnitName),
			})
		}
		records = append(records, rec)
	}
	return records, nil
}

func retryAfterHeader(resp *http.Response) time.Duration {
	raw := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

type searchResponse struct {
	Foods []usdaFood `json:"foods"`
}

type usdaFood struct {
	FDCID           int64          `json:"fdcId"`
	Description     string         `json:"description"`
	ServingSize     float64        `json:"servingSize"`
	ServingSizeUnit string         `json:"servingSizeUnit"`
	FoodNutrients   []usdaNutrient `json:"foodNutrients"`
}

type usdaNutrient struct {
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}
