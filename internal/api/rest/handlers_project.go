package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ojasvatstyagi/Collabro/internal/project"
)

func handleCreateProject(deps Deps) http.HandlerFunc {
	type body struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Category     string   `json:"category"`
		Level        string   `json:"level"`
		Technologies []string `json:"technologies"`
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

		created, err := deps.Projects.Create(r.Context(), project.CreateProjectInput{
			CreatorID:    actor,
			Title:        in.Title,
			Description:  in.Description,
			Category:     in.Category,
			Level:        project.LevelFromLabel(in.Level),
			Technologies: in.Technologies,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, projectToPayload(created))
	}
}

func handleGetProject(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := deps.Projects.Get(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, projectToPayload(p))
	}
}

func handleListProjectsByCreator(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := deps.Projects.ListByCreator(r.Context(), chi.URLParam(r, "profileID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"projects": projectsToPayload(projects)})
	}
}

func handleUpdateProject(deps Deps) http.HandlerFunc {
	type body struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Category     string   `json:"category"`
		Level        string   `json:"level"`
		Technologies []string `json:"technologies"`
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

		updated, err := deps.Projects.Update(r.Context(), chi.URLParam(r, "projectID"), actor, project.UpdateInput{
			Title:        in.Title,
			Description:  in.Description,
			Category:     in.Category,
			Level:        project.LevelFromLabel(in.Level),
			Technologies: in.Technologies,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, projectToPayload(updated))
	}
}

func handleTransitionProject(deps Deps) http.HandlerFunc {
	type body struct {
		Status string `json:"status"`
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

		moved, err := deps.Projects.Transition(r.Context(), chi.URLParam(r, "projectID"), actor, project.StatusFromLabel(in.Status))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, projectToPayload(moved))
	}
}

func handleGetTeam(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := deps.Projects.GetTeam(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, teamViewToPayload(view))
	}
}
