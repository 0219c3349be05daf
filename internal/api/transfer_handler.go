package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/PedroCamargo-dev/transfer-orchestration-service/internal/api/middleware"
	"github.com/PedroCamargo-dev/transfer-orchestration-service/internal/platform/logger"
	port_persistence "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/persistence"
	port_transfer "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/usecase/transfer"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const idempotencyKeyHeader = "Idempotency-Key"

// TransferHandler exposes the transfer operations over HTTP.
type TransferHandler struct {
	usecase   port_transfer.ExecuteTransferUseCase
	transfers port_persistence.TransferRepository
}

func NewTransferHandler(usecase port_transfer.ExecuteTransferUseCase, transfers port_persistence.TransferRepository) *TransferHandler {
	return &TransferHandler{usecase: usecase, transfers: transfers}
}

type createTransferRequest struct {
	DestinationAccountNumber string  `json:"destination_account_number"`
	Amount                   float64 `json:"amount"`
	IdempotencyKey           string  `json:"idempotency_key"`
}

// Create executes a transfer from the authenticated account. The
// idempotency key comes from the Idempotency-Key header, with the body
// field as a fallback. A successful transfer has no response payload.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	key := r.Header.Get(idempotencyKeyHeader)
	if key == "" {
		key = req.IdempotencyKey
	}

	ctx := r.Context()
	out, err := h.usecase.Execute(ctx, port_transfer.ExecuteTransferInput{
		AccountOriginID:          middleware.AccountID(ctx),
		DestinationAccountNumber: req.DestinationAccountNumber,
		Amount:                   decimal.NewFromFloat(req.Amount),
		IdempotencyKey:           key,
		Token:                    middleware.Token(ctx),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logger.FromContext(ctx).Info("transfer accepted",
		slog.String("transfer_id", out.TransferID),
		slog.Bool("replayed", out.Replayed))

	w.WriteHeader(http.StatusNoContent)
}

type transferResponse struct {
	TransferID           string `json:"transfer_id"`
	AccountOriginID      string `json:"account_origin_id"`
	AccountDestinationID string `json:"account_destination_id"`
	Amount               string `json:"amount"`
	MovementDate         string `json:"movement_date"`
}

// GetByID returns a completed transfer owned by the authenticated account.
func (h *TransferHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	record, err := h.transfers.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, port_persistence.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "transfer not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
		return
	}

	if record.AccountOriginID() != middleware.AccountID(ctx) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "transfer not found"})
		return
	}

	writeJSON(w, http.StatusOK, transferResponse{
		TransferID:           record.ID().String(),
		AccountOriginID:      record.AccountOriginID(),
		AccountDestinationID: record.AccountDestinationID(),
		Amount:               record.Amount().StringFixed(2),
		MovementDate:         record.MovementDate(),
	})
}
