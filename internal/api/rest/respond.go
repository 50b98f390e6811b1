package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeError maps domain errors to HTTP statuses. Unrecognized errors become
// opaque internal errors; their details stay in the logs.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		log.Printf("internal error: %v", err)
		domainErr = apperrors.Wrap(apperrors.CodeUnknown, "internal error", err)
	}
	writeJSON(w, domainErr.Code.HTTPStatus(), errorResponse{Error: errorBody{
		Code:    string(domainErr.Code),
		Message: domainErr.Message,
	}})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
		Code:    "INVALID_REQUEST",
		Message: message,
	}})
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeBadRequest(w, "invalid request body")
		return false
	}
	return true
}

// requireActor writes a 400 when the actor header is missing.
func requireActor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actor := actorID(r)
	if actor == "" {
		writeBadRequest(w, actorHeader+" header is required")
		return "", false
	}
	return actor, true
}
