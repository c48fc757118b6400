package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amreid/nextup/internal/contract"
)

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
}

// writeError maps service errors to HTTP statuses. Anything that is not a
// contract error is reported as a generic 500 without detail.
func writeError(w http.ResponseWriter, err error) {
	var cerr *contract.Error
	if !errors.As(err, &cerr) {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch cerr.Code {
	case contract.ErrUnauthorized:
		status = http.StatusUnauthorized
	case contract.ErrInvalidBody:
		status = http.StatusBadRequest
	case contract.ErrNotFound:
		status = http.StatusNotFound
	case contract.ErrConflict:
		status = http.StatusConflict
	}
	writeJSON(w, status, errorBody{Error: cerr.Message, Details: cerr.Fields})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid body"})
		return false
	}
	return true
}
