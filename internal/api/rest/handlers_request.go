package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ojasvatstyagi/Collabro/internal/collab"
	"github.com/ojasvatstyagi/Collabro/internal/request"
)

func handleCreateRequest(deps Deps) http.HandlerFunc {
	type body struct {
		ProjectID string `json:"project_id"`
		Message   string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		created, err := deps.Collab.Create(r.Context(), collab.CreateInput{
			ProjectID:   in.ProjectID,
			RequesterID: actor,
			Message:     in.Message,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, requestToPayload(created))
	}
}

func handleGetRequest(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		found, err := deps.Collab.GetByID(r.Context(), chi.URLParam(r, "requestID"), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, requestToPayload(found))
	}
}

func handleApproveRequest(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		approved, err := deps.Collab.Approve(r.Context(), chi.URLParam(r, "requestID"), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, requestToPayload(approved))
	}
}

func handleRejectRequest(deps Deps) http.HandlerFunc {
	type body struct {
		Reason string `json:"reason"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		rejected, err := deps.Collab.Reject(r.Context(), chi.URLParam(r, "requestID"), actor, in.Reason)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, requestToPayload(rejected))
	}
}

func handleCancelRequest(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		if err := deps.Collab.Cancel(r.Context(), chi.URLParam(r, "requestID"), actor); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}

func handleListReceived(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		status := request.StatusFromLabel(r.URL.Query().Get("status"))
		requests, err := deps.Collab.ListReceived(r.Context(), actor, status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"requests": requestsToPayload(requests)})
	}
}

func handleListSent(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		status := request.StatusFromLabel(r.URL.Query().Get("status"))
		requests, err := deps.Collab.ListSent(r.Context(), actor, status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"requests": requestsToPayload(requests)})
	}
}

func handleRequestStats(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		stats, err := deps.Collab.Stats(r.Context(), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statsToPayload(stats))
	}
}
