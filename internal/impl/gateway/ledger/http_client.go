package impl_ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	port_ledger "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/ledger"

	"github.com/shopspring/decimal"
)

const (
	transactionsPath  = "/api/v1/transactions"
	maxErrorBodyBytes = 4 << 10

	typeDebit  = "DEBIT"
	typeCredit = "CREDIT"
)

type transactionRequest struct {
	IdempotencyKey           string `json:"idempotency_key"`
	Type                     string `json:"type"`
	Amount                   string `json:"amount"`
	DestinationAccountNumber int64  `json:"destination_account_number,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// HTTPClient implements the ledger client port over the account-ledger
// service's HTTP API. A 2xx empty-body response is success; anything else is
// normalized into a *port_ledger.RemoteError.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (c *HTTPClient) Debit(ctx context.Context, token, idempotencyKey string, amount decimal.Decimal) error {
	return c.post(ctx, token, transactionRequest{
		IdempotencyKey: idempotencyKey,
		Type:           typeDebit,
		Amount:         amount.StringFixed(2),
	})
}

func (c *HTTPClient) Credit(ctx context.Context, token, idempotencyKey string, destinationAccountNumber int64, amount decimal.Decimal) error {
	return c.post(ctx, token, transactionRequest{
		IdempotencyKey:           idempotencyKey,
		Type:                     typeCredit,
		Amount:                   amount.StringFixed(2),
		DestinationAccountNumber: destinationAccountNumber,
	})
}

// Reverse credits the amount back to the account the token authenticates,
// undoing an already-applied debit.
func (c *HTTPClient) Reverse(ctx context.Context, token, idempotencyKey string, amount decimal.Decimal) error {
	return c.post(ctx, token, transactionRequest{
		IdempotencyKey: idempotencyKey,
		Type:           typeCredit,
		Amount:         amount.StringFixed(2),
	})
}

func (c *HTTPClient) post(ctx context.Context, token string, body transactionRequest) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("ledger: marshal %s request: %w", body.Type, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transactionsPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("ledger: build %s request: %w", body.Type, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Idempotency-Key", body.IdempotencyKey)

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ledger: %s request: %w", body.Type, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	return normalizeError(res)
}

// normalizeError never fails: a malformed or empty error body degrades to a
// generic message with no kind tag.
func normalizeError(res *http.Response) *port_ledger.RemoteError {
	remote := &port_ledger.RemoteError{
		Message:    "ledger request failed",
		StatusCode: res.StatusCode,
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
	if err != nil {
		return remote
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return remote
	}

	if body.Message != "" {
		remote.Message = body.Message
	}
	remote.Kind = body.Type

	return remote
}
