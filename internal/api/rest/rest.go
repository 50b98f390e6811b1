// Package rest exposes the collaboration engine over HTTP.
//
// Authentication is out of scope; callers identify the acting profile with
// the X-Profile-ID header, which upstream middleware is expected to verify.
package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ojasvatstyagi/Collabro/internal/collab"
	"github.com/ojasvatstyagi/Collabro/internal/matching"
	profilesvc "github.com/ojasvatstyagi/Collabro/internal/profile/service"
	projectsvc "github.com/ojasvatstyagi/Collabro/internal/project/service"
)

// actorHeader names the acting profile on every authenticated route.
const actorHeader = "X-Profile-ID"

// Deps bundles the services behind the HTTP surface.
type Deps struct {
	Profiles *profilesvc.Service
	Projects *projectsvc.Service
	Matching *matching.Service
	Collab   *collab.Service
}

// NewHandler builds the HTTP router for the collaboration engine.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/profiles", handleCreateProfile(deps))
		r.Post("/profiles/search", handleSearchProfiles(deps))
		r.Get("/profiles/by-account/{accountID}", handleGetProfileByAccount(deps))
		r.Route("/profiles/{profileID}", func(r chi.Router) {
			r.Get("/", handleGetProfile(deps))
			r.Patch("/", handleUpdateProfile(deps))
			r.Put("/picture", handleSetPicture(deps))
			r.Post("/skills", handleAddSkill(deps))
			r.Patch("/skills/{skillID}", handleUpdateSkill(deps))
			r.Delete("/skills/{skillID}", handleRemoveSkill(deps))
			r.Post("/social-links", handleAddSocialLink(deps))
			r.Delete("/social-links/{linkID}", handleRemoveSocialLink(deps))
			r.Get("/matches/similar", handleFindSimilar(deps))
			r.Get("/matches/complementary", handleFindComplementary(deps))
			r.Get("/projects", handleListProjectsByCreator(deps))
		})

		r.Post("/projects", handleCreateProject(deps))
		r.Post("/projects/search", handleSearchProjects(deps))
		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Get("/", handleGetProject(deps))
			r.Patch("/", handleUpdateProject(deps))
			r.Post("/status", handleTransitionProject(deps))
			r.Get("/team", handleGetTeam(deps))
		})

		r.Post("/requests", handleCreateRequest(deps))
		r.Get("/requests/received", handleListReceived(deps))
		r.Get("/requests/sent", handleListSent(deps))
		r.Get("/requests/stats", handleRequestStats(deps))
		r.Route("/requests/{requestID}", func(r chi.Router) {
			r.Get("/", handleGetRequest(deps))
			r.Delete("/", handleCancelRequest(deps))
			r.Post("/approve", handleApproveRequest(deps))
			r.Post("/reject", handleRejectRequest(deps))
		})
	})

	return r
}

// actorID returns the acting profile ID, or an empty string when the header
// is missing.
func actorID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(actorHeader))
}
