// Package service manages collaboration projects over a persistence backend.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
	"github.com/ojasvatstyagi/Collabro/internal/platform/id"
	"github.com/ojasvatstyagi/Collabro/internal/project"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
	"github.com/ojasvatstyagi/Collabro/internal/team"
)

var (
	// ErrNotFound indicates the project does not exist.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "project not found")
	// ErrCreatorNotFound indicates the creator profile does not exist.
	ErrCreatorNotFound = apperrors.New(apperrors.CodeNotFound, "creator profile not found")
	// ErrNotOwner indicates the actor did not create the project.
	ErrNotOwner = apperrors.New(apperrors.CodeProjectNotOwnedByActor, "actor does not own this project")
)

// TeamView bundles a project's team with its membership.
type TeamView struct {
	Team    team.Team
	Members []team.Member
}

// Service manages collaboration projects and exposes their teams.
type Service struct {
	profiles    storage.ProfileStore
	projects    storage.ProjectStore
	teams       storage.TeamStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewService creates a project service with default dependencies.
func NewService(profiles storage.ProfileStore, projects storage.ProjectStore, teams storage.TeamStore) *Service {
	return &Service{
		profiles:    profiles,
		projects:    projects,
		teams:       teams,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// Create creates an active project for an existing profile.
func (s *Service) Create(ctx context.Context, input project.CreateProjectInput) (project.Project, error) {
	if _, err := s.profiles.GetProfile(ctx, strings.TrimSpace(input.CreatorID)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return project.Project{}, ErrCreatorNotFound
		}
		return project.Project{}, fmt.Errorf("load creator profile: %w", err)
	}

	created, err := project.CreateProject(input, s.clock, s.idGenerator)
	if err != nil {
		return project.Project{}, err
	}
	if err := s.projects.PutProject(ctx, created); err != nil {
		return project.Project{}, fmt.Errorf("persist project: %w", err)
	}
	return created, nil
}

// Get returns one project by ID.
func (s *Service) Get(ctx context.Context, projectID string) (project.Project, error) {
	return s.load(ctx, projectID)
}

// ListByCreator returns a creator's projects, newest first.
func (s *Service) ListByCreator(ctx context.Context, creatorID string) ([]project.Project, error) {
	projects, err := s.projects.ListProjectsByCreator(ctx, strings.TrimSpace(creatorID))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Update edits a project's attributes as its creator.
func (s *Service) Update(ctx context.Context, projectID string, actorID string, input project.UpdateInput) (project.Project, error) {
	p, err := s.loadOwned(ctx, projectID, actorID)
	if err != nil {
		return project.Project{}, err
	}
	updated, err := p.ApplyUpdate(input, s.clock)
	if err != nil {
		return project.Project{}, err
	}
	if err := s.projects.PutProject(ctx, updated); err != nil {
		return project.Project{}, fmt.Errorf("persist project: %w", err)
	}
	return updated, nil
}

// Transition moves a project to a terminal status as its creator.
func (s *Service) Transition(ctx context.Context, projectID string, actorID string, target project.Status) (project.Project, error) {
	p, err := s.loadOwned(ctx, projectID, actorID)
	if err != nil {
		return project.Project{}, err
	}
	moved, err := p.Transition(target, s.clock)
	if err != nil {
		return project.Project{}, err
	}
	if err := s.projects.PutProject(ctx, moved); err != nil {
		return project.Project{}, fmt.Errorf("persist project: %w", err)
	}
	return moved, nil
}

// GetTeam returns a project's team and membership, or ErrNotFound when no
// request has been approved yet.
func (s *Service) GetTeam(ctx context.Context, projectID string) (TeamView, error) {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return TeamView{}, err
	}

	formed, err := s.teams.GetTeamByProject(ctx, p.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return TeamView{}, ErrNotFound
		}
		return TeamView{}, fmt.Errorf("load team: %w", err)
	}
	members, err := s.teams.ListTeamMembers(ctx, formed.ID)
	if err != nil {
		return TeamView{}, fmt.Errorf("load team members: %w", err)
	}
	return TeamView{Team: formed, Members: members}, nil
}

func (s *Service) load(ctx context.Context, projectID string) (project.Project, error) {
	p, err := s.projects.GetProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return project.Project{}, ErrNotFound
		}
		return project.Project{}, fmt.Errorf("load project: %w", err)
	}
	return p, nil
}

func (s *Service) loadOwned(ctx context.Context, projectID string, actorID string) (project.Project, error) {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return project.Project{}, err
	}
	if !p.IsOwnedBy(strings.TrimSpace(actorID)) {
		return project.Project{}, ErrNotOwner
	}
	return p, nil
}
