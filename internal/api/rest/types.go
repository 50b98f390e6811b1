package rest

import (
	"time"

	"github.com/ojasvatstyagi/Collabro/internal/profile"
	profilesvc "github.com/ojasvatstyagi/Collabro/internal/profile/service"
	"github.com/ojasvatstyagi/Collabro/internal/project"
	projectsvc "github.com/ojasvatstyagi/Collabro/internal/project/service"
	"github.com/ojasvatstyagi/Collabro/internal/request"
)

type profilePayload struct {
	ID                   string    `json:"id"`
	AccountID            string    `json:"account_id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Bio                  string    `json:"bio,omitempty"`
	Education            string    `json:"education,omitempty"`
	Location             string    `json:"location,omitempty"`
	Phone                string    `json:"phone,omitempty"`
	PictureURL           string    `json:"picture_url,omitempty"`
	Complete             bool      `json:"complete"`
	CompletionPercentage int       `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func profileToPayload(p profile.Profile) profilePayload {
	return profilePayload{
		ID:                   p.ID,
		AccountID:            p.AccountID,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Bio:                  p.Bio,
		Education:            p.Education,
		Location:             p.Location,
		Phone:                p.Phone,
		PictureURL:           p.PictureURL,
		Complete:             p.Complete,
		CompletionPercentage: p.CompletionPercentage,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func profilesToPayload(profiles []profile.Profile) []profilePayload {
	payload := make([]profilePayload, 0, len(profiles))
	for _, p := range profiles {
		payload = append(payload, profileToPayload(p))
	}
	return payload
}

type skillPayload struct {
	ID          string    `json:"id"`
	ProfileID   string    `json:"profile_id"`
	Name        string    `json:"name"`
	Proficiency string    `json:"proficiency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func skillToPayload(s profile.Skill) skillPayload {
	return skillPayload{
		ID:          s.ID,
		ProfileID:   s.ProfileID,
		Name:        s.Name,
		Proficiency: profile.ProficiencyLabel(s.Proficiency),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type socialLinkPayload struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Platform  string    `json:"platform"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func socialLinkToPayload(link profile.SocialLink) socialLinkPayload {
	return socialLinkPayload{
		ID:        link.ID,
		ProfileID: link.ProfileID,
		Platform:  link.Platform,
		URL:       link.URL,
		CreatedAt: link.CreatedAt,
	}
}

type profileViewPayload struct {
	Profile     profilePayload      `json:"profile"`
	Skills      []skillPayload      `json:"skills"`
	SocialLinks []socialLinkPayload `json:"social_links"`
}

func viewToPayload(view profilesvc.View) profileViewPayload {
	payload := profileViewPayload{
		Profile:     profileToPayload(view.Profile),
		Skills:      make([]skillPayload, 0, len(view.Skills)),
		SocialLinks: make([]socialLinkPayload, 0, len(view.SocialLinks)),
	}
	for _, s := range view.Skills {
		payload.Skills = append(payload.Skills, skillToPayload(s))
	}
	for _, link := range view.SocialLinks {
		payload.SocialLinks = append(payload.SocialLinks, socialLinkToPayload(link))
	}
	return payload
}

type projectPayload struct {
	ID           string    `json:"id"`
	CreatorID    string    `json:"creator_id"`
	TeamID       string    `json:"team_id,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Level        string    `json:"level"`
	Technologies []string  `json:"technologies,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func projectToPayload(p project.Project) projectPayload {
	return projectPayload{
		ID:           p.ID,
		CreatorID:    p.CreatorID,
		TeamID:       p.TeamID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Level:        project.LevelLabel(p.Level),
		Technologies: p.Technologies,
		Status:       project.StatusLabel(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func projectsToPayload(projects []project.Project) []projectPayload {
	payload := make([]projectPayload, 0, len(projects))
	for _, p := range projects {
		payload = append(payload, projectToPayload(p))
	}
	return payload
}

type teamPayload struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"project_id"`
	Name      string          `json:"name"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	Members   []memberPayload `json:"members"`
}

type memberPayload struct {
	ProfileID string    `json:"profile_id"`
	AddedAt   time.Time `json:"added_at"`
}

func teamViewToPayload(view projectsvc.TeamView) teamPayload {
	payload := teamPayload{
		ID:        view.Team.ID,
		ProjectID: view.Team.ProjectID,
		Name:      view.Team.Name,
		CreatedBy: view.Team.CreatedBy,
		CreatedAt: view.Team.CreatedAt,
		Members:   make([]memberPayload, 0, len(view.Members)),
	}
	for _, member := range view.Members {
		payload.Members = append(payload.Members, memberPayload{
			ProfileID: member.ProfileID,
			AddedAt:   member.AddedAt,
		})
	}
	return payload
}

type requestPayload struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	RequesterID     string    `json:"requester_id"`
	Status          string    `json:"status"`
	Message         string    `json:"message,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func requestToPayload(r request.Request) requestPayload {
	return requestPayload{
		ID:              r.ID,
		ProjectID:       r.ProjectID,
		RequesterID:     r.RequesterID,
		Status:          request.StatusLabel(r.Status),
		Message:         r.Message,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func requestsToPayload(requests []request.Request) []requestPayload {
	payload := make([]requestPayload, 0, len(requests))
	for _, r := range requests {
		payload = append(payload, requestToPayload(r))
	}
	return payload
}

type statsPayload struct {
	PendingReceived  int64 `json:"pending_received"`
	TotalReceived    int64 `json:"total_received"`
	ApprovedReceived int64 `json:"approved_received"`
	RejectedReceived int64 `json:"rejected_received"`
	PendingSent      int64 `json:"pending_sent"`
	TotalSent        int64 `json:"total_sent"`
}

func statsToPayload(stats request.Stats) statsPayload {
	return statsPayload{
		PendingReceived:  stats.PendingReceived,
		TotalReceived:    stats.TotalReceived,
		ApprovedReceived: stats.ApprovedReceived,
		RejectedReceived: stats.RejectedReceived,
		PendingSent:      stats.PendingSent,
		TotalSent:        stats.TotalSent,
	}
}
