// Package project provides collaboration project management.
package project

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
	"github.com/ojasvatstyagi/Collabro/internal/platform/id"
)

var (
	// ErrEmptyTitle indicates a missing project title.
	ErrEmptyTitle = apperrors.New(apperrors.CodeProjectEmptyTitle, "project title is required")
	// ErrEmptyCreatorID indicates a missing creator profile reference.
	ErrEmptyCreatorID = apperrors.New(apperrors.CodeProjectEmptyCreatorID, "creator profile id is required")
	// ErrInvalidLevel indicates an unknown project level.
	ErrInvalidLevel = apperrors.New(apperrors.CodeProjectInvalidLevel, "project level is invalid")
	// ErrInvalidStatusTransition indicates a disallowed status change.
	ErrInvalidStatusTransition = apperrors.New(apperrors.CodeProjectInvalidStatusTransition, "project status does not permit this transition")
)

// Status represents the lifecycle status of a project.
type Status int

const (
	// StatusUnspecified represents an invalid project status.
	StatusUnspecified Status = iota
	// StatusActive indicates a project open for collaboration.
	StatusActive
	// StatusCompleted indicates a finished project.
	StatusCompleted
	// StatusCancelled indicates an abandoned project.
	StatusCancelled
)

// StatusLabel returns the string label for a project status.
func StatusLabel(status Status) string {
	switch status {
	case StatusActive:
		return "ACTIVE"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNSPECIFIED"
	}
}

// StatusFromLabel converts a status label to a Status value.
func StatusFromLabel(label string) Status {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "ACTIVE":
		return StatusActive
	case "COMPLETED":
		return StatusCompleted
	case "CANCELLED":
		return StatusCancelled
	default:
		return StatusUnspecified
	}
}

// Level represents the experience level a project targets.
type Level int

const (
	// LevelUnspecified represents an unset project level.
	LevelUnspecified Level = iota
	// LevelBeginner targets newcomers.
	LevelBeginner
	// LevelIntermediate targets practitioners.
	LevelIntermediate
	// LevelAdvanced targets experienced contributors.
	LevelAdvanced
)

// LevelLabel returns the string label for a project level.
func LevelLabel(level Level) string {
	switch level {
	case LevelBeginner:
		return "BEGINNER"
	case LevelIntermediate:
		return "INTERMEDIATE"
	case LevelAdvanced:
		return "ADVANCED"
	default:
		return "UNSPECIFIED"
	}
}

// LevelFromLabel converts a level label to a Level value.
func LevelFromLabel(label string) Level {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "BEGINNER":
		return LevelBeginner
	case "INTERMEDIATE":
		return LevelIntermediate
	case "ADVANCED":
		return LevelAdvanced
	default:
		return LevelUnspecified
	}
}

// Project represents a collaboration project. The creator reference is
// immutable after creation; the team reference is set lazily on the first
// approved join request.
type Project struct {
	ID           string
	CreatorID    string
	TeamID       string
	Title        string
	Description  string
	Category     string
	Level        Level
	Technologies []string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwnedBy reports whether the given profile created this project.
func (p Project) IsOwnedBy(profileID string) bool {
	return p.CreatorID != "" && p.CreatorID == profileID
}

// Transition validates and applies a status change. Only ACTIVE projects
// may move to COMPLETED or CANCELLED; both are terminal.
func (p Project) Transition(target Status, now func() time.Time) (Project, error) {
	if now == nil {
		now = time.Now
	}
	if p.Status != StatusActive {
		return Project{}, ErrInvalidStatusTransition
	}
	if target != StatusCompleted && target != StatusCancelled {
		return Project{}, ErrInvalidStatusTransition
	}
	p.Status = target
	p.UpdatedAt = now().UTC()
	return p, nil
}

// UpdateInput carries the editable project attributes.
type UpdateInput struct {
	Title        string
	Description  string
	Category     string
	Level        Level
	Technologies []string
}

// ApplyUpdate validates and applies an edit to the project's attributes.
// Creator, team, and status are not editable through updates.
func (p Project) ApplyUpdate(input UpdateInput, now func() time.Time) (Project, error) {
	if now == nil {
		now = time.Now
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return Project{}, ErrEmptyTitle
	}
	if input.Level != LevelUnspecified && LevelLabel(input.Level) == "UNSPECIFIED" {
		return Project{}, ErrInvalidLevel
	}

	p.Title = input.Title
	p.Description = strings.TrimSpace(input.Description)
	p.Category = strings.TrimSpace(input.Category)
	p.Level = input.Level
	p.Technologies = dedupeTechnologies(input.Technologies)
	p.UpdatedAt = now().UTC()
	return p, nil
}

func dedupeTechnologies(values []string) []string {
	technologies := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, tech := range values {
		tech = strings.TrimSpace(tech)
		if tech == "" {
			continue
		}
		key := strings.ToLower(tech)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		technologies = append(technologies, tech)
	}
	return technologies
}

// CreateProjectInput describes the metadata needed to create a project.
type CreateProjectInput struct {
	CreatorID    string
	Title        string
	Description  string
	Category     string
	Level        Level
	Technologies []string
}

// CreateProject creates an ACTIVE project with a generated ID and timestamps.
func CreateProject(input CreateProjectInput, now func() time.Time, idGenerator func() (string, error)) (Project, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.CreatorID = strings.TrimSpace(input.CreatorID)
	if input.CreatorID == "" {
		return Project{}, ErrEmptyCreatorID
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return Project{}, ErrEmptyTitle
	}
	if input.Level != LevelUnspecified && LevelLabel(input.Level) == "UNSPECIFIED" {
		return Project{}, ErrInvalidLevel
	}

	projectID, err := idGenerator()
	if err != nil {
		return Project{}, fmt.Errorf("generate project id: %w", err)
	}

	createdAt := now().UTC()
	return Project{
		ID:           projectID,
		CreatorID:    input.CreatorID,
		Title:        input.Title,
		Description:  strings.TrimSpace(input.Description),
		Category:     strings.TrimSpace(input.Category),
		Level:        input.Level,
		Technologies: dedupeTechnologies(input.Technologies),
		Status:       StatusActive,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}
