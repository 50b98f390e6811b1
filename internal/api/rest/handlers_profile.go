package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ojasvatstyagi/Collabro/internal/profile"
)

func handleCreateProfile(deps Deps) http.HandlerFunc {
	type body struct {
		AccountID string `json:"account_id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		created, err := deps.Profiles.Create(r.Context(), profile.CreateProfileInput{
			AccountID: in.AccountID,
			FirstName: in.FirstName,
			LastName:  in.LastName,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, profileToPayload(created))
	}
}

func handleGetProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := deps.Profiles.Get(r.Context(), chi.URLParam(r, "profileID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, viewToPayload(view))
	}
}

func handleGetProfileByAccount(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := deps.Profiles.GetByAccount(r.Context(), chi.URLParam(r, "accountID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profileToPayload(p))
	}
}

func handleUpdateProfile(deps Deps) http.HandlerFunc {
	type body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Bio       string `json:"bio"`
		Education string `json:"education"`
		Location  string `json:"location"`
		Phone     string `json:"phone"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		updated, err := deps.Profiles.Update(r.Context(), chi.URLParam(r, "profileID"), profile.UpdateInput{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Bio:       in.Bio,
			Education: in.Education,
			Location:  in.Location,
			Phone:     in.Phone,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profileToPayload(updated))
	}
}

func handleSetPicture(deps Deps) http.HandlerFunc {
	type body struct {
		PictureURL string `json:"picture_url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		updated, err := deps.Profiles.SetPicture(r.Context(), chi.URLParam(r, "profileID"), in.PictureURL)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profileToPayload(updated))
	}
}

func handleAddSkill(deps Deps) http.HandlerFunc {
	type body struct {
		Name        string `json:"name"`
		Proficiency string `json:"proficiency"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		created, err := deps.Profiles.AddSkill(r.Context(), profile.CreateSkillInput{
			ProfileID:   chi.URLParam(r, "profileID"),
			Name:        in.Name,
			Proficiency: profile.ProficiencyFromLabel(in.Proficiency),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, skillToPayload(created))
	}
}

func handleUpdateSkill(deps Deps) http.HandlerFunc {
	type body struct {
		Proficiency string `json:"proficiency"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		updated, err := deps.Profiles.UpdateSkill(r.Context(),
			chi.URLParam(r, "profileID"),
			chi.URLParam(r, "skillID"),
			profile.ProficiencyFromLabel(in.Proficiency))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, skillToPayload(updated))
	}
}

func handleRemoveSkill(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := deps.Profiles.RemoveSkill(r.Context(), chi.URLParam(r, "profileID"), chi.URLParam(r, "skillID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}

func handleAddSocialLink(deps Deps) http.HandlerFunc {
	type body struct {
		Platform string `json:"platform"`
		URL      string `json:"url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in body
		if !decodeBody(w, r, &in) {
			return
		}

		created, err := deps.Profiles.AddSocialLink(r.Context(), profile.CreateSocialLinkInput{
			ProfileID: chi.URLParam(r, "profileID"),
			Platform:  in.Platform,
			URL:       in.URL,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, socialLinkToPayload(created))
	}
}

func handleRemoveSocialLink(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := deps.Profiles.RemoveSocialLink(r.Context(), chi.URLParam(r, "profileID"), chi.URLParam(r, "linkID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}
