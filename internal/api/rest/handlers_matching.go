package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ojasvatstyagi/Collabro/internal/profile"
	"github.com/ojasvatstyagi/Collabro/internal/project"
	"github.com/ojasvatstyagi/Collabro/internal/search"
)

func handleFindSimilar(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := deps.Matching.FindSimilar(r.Context(), chi.URLParam(r, "profileID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profiles": profilesToPayload(matches)})
	}
}

func handleFindComplementary(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := deps.Matching.FindComplementary(r.Context(), chi.URLParam(r, "profileID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profiles": profilesToPayload(matches)})
	}
}

func handleSearchProfiles(deps Deps) http.HandlerFunc {
	type body struct {
		Skills          []string `json:"skills"`
		Education       string   `json:"education"`
		Location        string   `json:"location"`
		MinProficiency  string   `json:"min_proficiency"`
		MinSharedSkills int      `json:"min_shared_skills"`
		PageSize        int      `json:"page_size"`
		PageToken       string   `json:"page_token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		page, err := deps.Matching.SearchProfiles(r.Context(), search.ProfileCriteria{
			Skills:          in.Skills,
			Education:       in.Education,
			Location:        in.Location,
			MinProficiency:  profile.ProficiencyFromLabel(in.MinProficiency),
			MinSharedSkills: in.MinSharedSkills,
		}, in.PageSize, in.PageToken)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"profiles":        profilesToPayload(page.Profiles),
			"next_page_token": page.NextPageToken,
		})
	}
}

func handleSearchProjects(deps Deps) http.HandlerFunc {
	type body struct {
		Text         string   `json:"text"`
		Category     string   `json:"category"`
		Level        string   `json:"level"`
		Technologies []string `json:"technologies"`
		PageSize     int      `json:"page_size"`
		PageToken    string   `json:"page_token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		page, err := deps.Matching.SearchProjects(r.Context(), search.ProjectCriteria{
			Text:         in.Text,
			Category:     in.Category,
			Level:        project.LevelFromLabel(in.Level),
			Technologies: in.Technologies,
		}, in.PageSize, in.PageToken)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"projects":        projectsToPayload(page.Projects),
			"next_page_token": page.NextPageToken,
		})
	}
}
