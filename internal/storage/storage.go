// Package storage defines persistence contracts for collaboration state.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ojasvatstyagi/Collabro/internal/profile"
	"github.com/ojasvatstyagi/Collabro/internal/project"
	"github.com/ojasvatstyagi/Collabro/internal/request"
	"github.com/ojasvatstyagi/Collabro/internal/search"
	"github.com/ojasvatstyagi/Collabro/internal/team"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness constraint rejected a write.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidState indicates a conditional write found the record in a
// different state than required.
var ErrInvalidState = errors.New("record state does not permit this write")

// ProfilePage stores a page of profiles.
type ProfilePage struct {
	Profiles      []profile.Profile
	NextPageToken string
}

// ProjectPage stores a page of projects.
type ProjectPage struct {
	Projects      []project.Project
	NextPageToken string
}

// ProfileStore persists collaboration profiles.
type ProfileStore interface {
	PutProfile(ctx context.Context, p profile.Profile) error
	GetProfile(ctx context.Context, profileID string) (profile.Profile, error)
	GetProfileByAccount(ctx context.Context, accountID string) (profile.Profile, error)
	// ListProfilesBySharedSkills returns profiles other than excludeID that
	// share at least minShared skill names with the given set, matched
	// exactly.
	ListProfilesBySharedSkills(ctx context.Context, names []string, excludeID string, minShared int) ([]profile.Profile, error)
	// ListProfilesWithSkillNotIn returns profiles other than excludeID
	// holding at least one skill name absent from the given set.
	ListProfilesWithSkillNotIn(ctx context.Context, names []string, excludeID string) ([]profile.Profile, error)
	SearchProfiles(ctx context.Context, filter search.ProfileFilter, pageSize int, pageToken string) (ProfilePage, error)
}

// SkillStore persists profile skills. Skill names are unique per profile,
// compared case-insensitively.
type SkillStore interface {
	PutSkill(ctx context.Context, s profile.Skill) error
	DeleteSkill(ctx context.Context, profileID string, skillID string) error
	ListSkills(ctx context.Context, profileID string) ([]profile.Skill, error)
}

// SocialLinkStore persists profile social links.
type SocialLinkStore interface {
	PutSocialLink(ctx context.Context, link profile.SocialLink) error
	DeleteSocialLink(ctx context.Context, profileID string, linkID string) error
	ListSocialLinks(ctx context.Context, profileID string) ([]profile.SocialLink, error)
}

// ProjectStore persists collaboration projects.
type ProjectStore interface {
	PutProject(ctx context.Context, p project.Project) error
	GetProject(ctx context.Context, projectID string) (project.Project, error)
	ListProjectsByCreator(ctx context.Context, creatorID string) ([]project.Project, error)
	SearchProjects(ctx context.Context, filter search.ProjectFilter, pageSize int, pageToken string) (ProjectPage, error)
}

// TeamStore reads project teams and their membership. Team creation happens
// only inside RequestStore.ApproveRequest.
type TeamStore interface {
	GetTeamByProject(ctx context.Context, projectID string) (team.Team, error)
	ListTeamMembers(ctx context.Context, teamID string) ([]team.Member, error)
	IsTeamMember(ctx context.Context, projectID string, profileID string) (bool, error)
}

// RequestStore persists collaboration requests and drives their lifecycle.
type RequestStore interface {
	// CreateRequest inserts a pending request. A second pending request for
	// the same project and requester returns ErrAlreadyExists.
	CreateRequest(ctx context.Context, r request.Request) error
	GetRequest(ctx context.Context, requestID string) (request.Request, error)
	// FindPendingRequest returns the pending request for the pair, or
	// ErrNotFound.
	FindPendingRequest(ctx context.Context, projectID string, requesterID string) (request.Request, error)
	// ApproveRequest atomically approves a pending request, creates the
	// project's team from the candidate if none exists, attaches it to the
	// project, and adds the requester to the membership set. Returns
	// ErrInvalidState if the request is no longer pending.
	ApproveRequest(ctx context.Context, requestID string, candidate team.Team, now time.Time) (request.Request, error)
	// RejectRequest atomically rejects a pending request, recording the
	// reason. Returns ErrInvalidState if the request is no longer pending.
	RejectRequest(ctx context.Context, requestID string, reason string, now time.Time) (request.Request, error)
	// DeleteRequestIfPending removes a pending request outright. Returns
	// ErrInvalidState if the request exists but is no longer pending.
	DeleteRequestIfPending(ctx context.Context, requestID string) error
	// ListReceived returns requests targeting projects created by ownerID,
	// newest first. A zero status means all statuses.
	ListReceived(ctx context.Context, ownerID string, status request.Status) ([]request.Request, error)
	// ListSent returns requests created by requesterID, newest first. A zero
	// status means all statuses.
	ListSent(ctx context.Context, requesterID string, status request.Status) ([]request.Request, error)
	CountReceived(ctx context.Context, ownerID string, status request.Status) (int64, error)
	CountSent(ctx context.Context, requesterID string, status request.Status) (int64, error)
}
