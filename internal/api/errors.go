package api

import (
	"encoding/json"
	"errors"
	"net/http"

	domain_transfer "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/domain/transfer"
)

type errorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// writeError maps a transfer error to its HTTP shape. Auth-class failures
// against the ledger come back as forbidden rather than a validation error;
// anything that is not a domain error is an internal fault and stays opaque.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *domain_transfer.Error
	if !errors.As(err, &domainErr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
		return
	}

	if domainErr.IsAuth() {
		writeJSON(w, http.StatusForbidden, errorResponse{Message: domainErr.Message, Kind: string(domainErr.Kind)})
		return
	}

	status := http.StatusUnprocessableEntity
	switch domainErr.Kind {
	case domain_transfer.KindInvalidAccount, domain_transfer.KindInvalidValue:
		status = http.StatusBadRequest
	}

	writeJSON(w, status, errorResponse{Message: domainErr.Message, Kind: string(domainErr.Kind)})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
