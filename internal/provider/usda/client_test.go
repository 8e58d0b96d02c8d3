package usda

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/captain-stacks/nutrition-gpt/internal/queue"
)

func TestSearchParsesResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body["query"] != "lentils" {
			t.Errorf("query = %v, want lentils", body["query"])
		}
		if body["pageSize"] != float64(5) {
			t.Errorf("pageSize = %v, want 5", body["pageSize"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "foods": [
    {
      "fdcId": 172420,
      "description": "Lentils, raw ",
      "servingSize": 100,
      "servingSizeUnit": "g",
      "foodNutrients": [
        {"nutrientName": "Energy", "unitName": "KCAL", "value": 116},
        {"nutrientName": "Protein", "unitName": "G", "value": 9.02}
      ]
    }
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	records, err := c.Search(context.Background(), "lentils", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.FDCID != 172420 {
		t.Fatalf("fdc id = %d, want 172420", rec.FDCID)
	}
	if rec.Description != "Lentils, raw" {
		t.Fatalf("description = %q, want trimmed", rec.Description)
	}
	if rec.ServingSize != 100 || rec.ServingSizeUnit != "g" {
		t.Fatalf("serving = %v %q", rec.ServingSize, rec.ServingSizeUnit)
	}
	if len(rec.Nutrients) != 2 || rec.Nutrients[1].Name != "Protein" || rec.Nutrients[1].Value != 9.02 {
		t.Fatalf("unexpected nutrients: %+v", rec.Nutrients)
	}
}

func TestSearchRateLimited(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.Search(context.Background(), "lentils", 5)
	var rl *queue.RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if rl.RetryAfter != 30*time.Second {
		t.Fatalf("retry-after = %v, want 30s", rl.RetryAfter)
	}
}

func TestSearchServerError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.Search(context.Background(), "lentils", 5); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestSearchInputValidation(t *testing.T) {
	t.Parallel()
	c := &Client{}
	if _, err := c.Search(context.Background(), "lentils", 5); err == nil {
		t.Fatalf("missing api key must be rejected")
	}
	c = &Client{APIKey: "demo"}
	if _, err := c.Search(context.Background(), "   ", 5); err == nil {
		t.Fatalf("blank query must be rejected")
	}
}
