package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solangegamboa/solarfin/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})
}

func TestReadReceipt_ParsesAmount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/generate" {
			t.Errorf("path = %q, want /v1/generate", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q, want bearer test-key", got)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Image == "" {
			t.Error("request image is empty, want base64 payload")
		}
		json.NewEncoder(w).Encode(generateResponse{Text: "123,45"})
	})

	amount, err := c.ReadReceipt(context.Background(), "aW1hZ2U=")
	if err != nil {
		t.Fatalf("ReadReceipt() error = %v", err)
	}
	if amount == nil || *amount != 123.45 {
		t.Errorf("amount = %v, want 123.45", amount)
	}
}

func TestReadReceipt_UnknownYieldsNoAmount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Text: "unknown"})
	})

	amount, err := c.ReadReceipt(context.Background(), "aW1hZ2U=")
	if err != nil {
		t.Fatalf("ReadReceipt() error = %v", err)
	}
	if amount != nil {
		t.Errorf("amount = %v, want nil", *amount)
	}
}

func TestReadReceipt_RemoteFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	if _, err := c.ReadReceipt(context.Background(), "aW1hZ2U="); err == nil {
		t.Error("ReadReceipt() error = nil, want remote failure")
	}
}

func TestSavingsSuggestion_ReturnsText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q, want test-model", req.Model)
		}
		json.NewEncoder(w).Encode(generateResponse{Text: "# Report\n\nSave more.\n"})
	})

	input := SuggestionInput{
		Transactions: []SuggestionTransaction{{Description: "Mercado", Amount: 250, Type: "expense", Category: "Alimentação", Date: "2025-06-01"}},
		CreditCards:  []SuggestionCard{{Name: "Nubank", CurrentBill: 150}},
	}
	text, err := c.SavingsSuggestion(context.Background(), input)
	if err != nil {
		t.Fatalf("SavingsSuggestion() error = %v", err)
	}
	if text != "# Report\n\nSave more." {
		t.Errorf("text = %q, want trimmed report", text)
	}
}
