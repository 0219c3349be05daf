package impl_ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	impl_ledger "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/impl/gateway/ledger"
	port_ledger "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Authorization  string
	IdempotencyKey string
	Body           map[string]any
}

func newLedgerServer(t *testing.T, status int, responseBody string, captured *capturedRequest) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/transactions", r.URL.Path)

		if captured != nil {
			captured.Authorization = r.Header.Get("Authorization")
			captured.IdempotencyKey = r.Header.Get("Idempotency-Key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.Body))
		}

		w.WriteHeader(status)
		if responseBody != "" {
			_, _ = w.Write([]byte(responseBody))
		}
	}))
}

func TestHTTPClient_Debit_Success(t *testing.T) {
	var captured capturedRequest
	srv := newLedgerServer(t, http.StatusNoContent, "", &captured)
	defer srv.Close()

	client := impl_ledger.NewHTTPClient(srv.URL, srv.Client())

	err := client.Debit(context.Background(), "tok-1", "idem-1:debit", decimal.RequireFromString("25.50"))
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", captured.Authorization)
	assert.Equal(t, "idem-1:debit", captured.IdempotencyKey)
	assert.Equal(t, "DEBIT", captured.Body["type"])
	assert.Equal(t, "25.50", captured.Body["amount"])
	assert.NotContains(t, captured.Body, "destination_account_number")
}

func TestHTTPClient_Credit_SendsDestination(t *testing.T) {
	var captured capturedRequest
	srv := newLedgerServer(t, http.StatusOK, "", &captured)
	defer srv.Close()

	client := impl_ledger.NewHTTPClient(srv.URL, srv.Client())

	err := client.Credit(context.Background(), "tok-1", "idem-1:credit", 100001, decimal.RequireFromString("25.50"))
	require.NoError(t, err)

	assert.Equal(t, "CREDIT", captured.Body["type"])
	assert.Equal(t, float64(100001), captured.Body["destination_account_number"])
}

func TestHTTPClient_Reverse_CreditsOriginWithoutDestination(t *testing.T) {
	var captured capturedRequest
	srv := newLedgerServer(t, http.StatusNoContent, "", &captured)
	defer srv.Close()

	client := impl_ledger.NewHTTPClient(srv.URL, srv.Client())

	err := client.Reverse(context.Background(), "tok-1", "idem-1:reversal", decimal.RequireFromString("25.50"))
	require.NoError(t, err)

	assert.Equal(t, "CREDIT", captured.Body["type"])
	assert.NotContains(t, captured.Body, "destination_account_number")
}

func TestHTTPClient_StructuredError(t *testing.T) {
	srv := newLedgerServer(t, http.StatusUnprocessableEntity, `{"message":"insufficient funds","type":"INSUFFICIENT_FUNDS"}`, nil)
	defer srv.Close()

	client := impl_ledger.NewHTTPClient(srv.URL, srv.Client())

	err := client.Debit(context.Background(), "tok-1", "idem-1:debit", decimal.RequireFromString("25.50"))
	require.Error(t, err)

	var remote *port_ledger.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "insufficient funds", remote.Message)
	assert.Equal(t, "INSUFFICIENT_FUNDS", remote.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, remote.StatusCode)
	assert.False(t, remote.IsAuth())
}

func TestHTTPClient_MalformedErrorBody_GenericKind(t *testing.T) {
	srv := newLedgerServer(t, http.StatusInternalServerError, `<html>panic</html>`, nil)
	defer srv.Close()

	client := impl_ledger.NewHTTPClient(srv.URL, srv.Client())

	err := client.Credit(context.Background(), "tok-1", "idem-1:credit", 100001, decimal.RequireFromString("1.00"))
	require.Error(t, err)

	var remote *port_ledger.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Empty(t, remote.Kind)
	assert.Equal(t, "ledger request failed", remote.Message)
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
}

func TestHTTPClient_AuthFailure(t *testing.T) {
	srv := newLedgerServer(t, http.StatusUnauthorized, `{"message":"token expired","type":"UNAUTHORIZED"}`, nil)
	defer srv.Close()

	client := impl_ledger.NewHTTPClient(srv.URL, srv.Client())

	err := client.Debit(context.Background(), "tok-1", "idem-1:debit", decimal.RequireFromString("1.00"))

	var remote *port_ledger.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.True(t, remote.IsAuth())
}

func TestHTTPClient_TransportError_NotRemote(t *testing.T) {
	client := impl_ledger.NewHTTPClient("http://127.0.0.1:1", nil)

	err := client.Debit(context.Background(), "tok-1", "idem-1:debit", decimal.RequireFromString("1.00"))
	require.Error(t, err)

	var remote *port_ledger.RemoteError
	assert.False(t, errors.As(err, &remote))
}
