// Package team provides project team formation.
package team

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
	"github.com/ojasvatstyagi/Collabro/internal/platform/id"
)

// ErrEmptyProjectID indicates a missing project reference.
var ErrEmptyProjectID = apperrors.New(apperrors.CodeTeamEmptyProjectID, "project id is required")

// Team is the set of profiles collaborating on one project. A project has
// at most one team, created lazily on the first approved join request.
type Team struct {
	ID        string
	ProjectID string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}

// Member records one profile's membership in a team. Membership is a set:
// the same profile never appears twice.
type Member struct {
	TeamID    string
	ProfileID string
	AddedAt   time.Time
}

// NameForProject derives the deterministic team name from a project title.
func NameForProject(projectTitle string) string {
	return strings.TrimSpace(projectTitle) + " Team"
}

// CreateTeamInput describes the metadata needed to create a team.
type CreateTeamInput struct {
	ProjectID    string
	ProjectTitle string
	CreatedBy    string
}

// CreateTeam creates a team candidate for a project. The store attaches the
// candidate only if the project does not already have a team.
func CreateTeam(input CreateTeamInput, now func() time.Time, idGenerator func() (string, error)) (Team, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.ProjectID = strings.TrimSpace(input.ProjectID)
	if input.ProjectID == "" {
		return Team{}, ErrEmptyProjectID
	}

	teamID, err := idGenerator()
	if err != nil {
		return Team{}, fmt.Errorf("generate team id: %w", err)
	}

	return Team{
		ID:        teamID,
		ProjectID: input.ProjectID,
		Name:      NameForProject(input.ProjectTitle),
		CreatedBy: strings.TrimSpace(input.CreatedBy),
		CreatedAt: now().UTC(),
	}, nil
}
