// Package ai talks to the hosted text-generation service behind the
// receipt reader and the savings-suggestion panel. Calls are plain
// request/response with no retry policy; callers surface failures to the
// user.
package ai

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

	"github.com/solangegamboa/solarfin/internal/config"
)

type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

func NewClient(cfg config.AIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	// Image is an optional base64-encoded attachment (data URI payload).
	Image string `json:"image,omitempty"`
}

type generateResponse struct {
	Text string `json:"text"`
}

type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("generation api: status %d", e.Status)
}

func (c *Client) generate(ctx context.Context, prompt, image string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Image:  image,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", &apiError{Status: res.StatusCode, Body: string(body)}
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}

const receiptPrompt = `You are an expert receipt reader. Analyze the attached image of a fiscal receipt.
Identify and extract ONLY the final total amount paid. Look for keywords like "TOTAL", "VALOR A PAGAR", "TOTAL GERAL".
Answer with the number alone, using a dot as decimal separator. If you cannot determine the total with high confidence, answer exactly "unknown".`

// ReadReceipt sends a base64-encoded receipt image to the generation API
// and returns the extracted total, or nil when the model could not find
// one with confidence.
func (c *Client) ReadReceipt(ctx context.Context, imageBase64 string) (*float64, error) {
	text, err := c.generate(ctx, receiptPrompt, imageBase64)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	amount, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || amount <= 0 {
		// model declined or answered something non-numeric
		return nil, nil
	}
	return &amount, nil
}

// SuggestionInput is the aggregated financial picture handed to the model.
type SuggestionInput struct {
	Transactions []SuggestionTransaction `json:"transactions"`
	Loans        []SuggestionLoan        `json:"loans"`
	Recurring    []SuggestionRecurring   `json:"recurring"`
	CreditCards  []SuggestionCard        `json:"credit_cards"`
}

type SuggestionTransaction struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

type SuggestionLoan struct {
	InstitutionName   string  `json:"institution_name"`
	InstallmentAmount float64 `json:"installment_amount"`
	TotalInstallments int     `json:"total_installments"`
	PaidInstallments  int     `json:"paid_installments"`
}

type SuggestionRecurring struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

type SuggestionCard struct {
	Name        string  `json:"name"`
	CurrentBill float64 `json:"current_bill"`
}

const suggestionPreamble = `You are a personal-finance advisor. Analyze the user's financial data below and produce a clear, optimistic and actionable savings report in Markdown with the sections: overall analysis (totals and balance), positive points, areas to improve, and 3 to 5 concrete saving tips tailored to the data.

User financial data (JSON):
`

// SavingsSuggestion asks the model for a formatted savings report over the
// user's aggregated data and returns the Markdown text as-is.
func (c *Client) SavingsSuggestion(ctx context.Context, input SuggestionInput) (string, error) {
	data, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", err
	}

	text, err := c.generate(ctx, suggestionPreamble+string(data), "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
