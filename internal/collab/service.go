// Package collab manages the lifecycle of collaboration requests, from
// creation through the owner's decision to team membership.
package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
	"github.com/ojasvatstyagi/Collabro/internal/platform/id"
	"github.com/ojasvatstyagi/Collabro/internal/project"
	"github.com/ojasvatstyagi/Collabro/internal/request"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
	"github.com/ojasvatstyagi/Collabro/internal/team"
)

var (
	// ErrProjectNotFound indicates the target project does not exist.
	ErrProjectNotFound = apperrors.New(apperrors.CodeNotFound, "project not found")
	// ErrProfileNotFound indicates the requester profile does not exist.
	ErrProfileNotFound = apperrors.New(apperrors.CodeNotFound, "profile not found")
	// ErrRequestNotFound indicates the request does not exist.
	ErrRequestNotFound = apperrors.New(apperrors.CodeNotFound, "request not found")
	// ErrOwnProject indicates a creator asked to join their own project.
	ErrOwnProject = apperrors.New(apperrors.CodeRequestOwnProject, "cannot request to join own project")
	// ErrDuplicateRequest indicates a pending request already exists for the
	// pair.
	ErrDuplicateRequest = apperrors.New(apperrors.CodeRequestDuplicate, "a pending request already exists for this project")
	// ErrAlreadyMember indicates the requester already belongs to the
	// project's team.
	ErrAlreadyMember = apperrors.New(apperrors.CodeRequestAlreadyMember, "requester is already a team member")
	// ErrNotPending indicates the request has already been decided.
	ErrNotPending = apperrors.New(apperrors.CodeRequestNotPending, "request is not pending")
	// ErrAccessDenied indicates the actor has no standing on the request.
	ErrAccessDenied = apperrors.New(apperrors.CodeRequestAccessDenied, "actor may not act on this request")
)

// accessDenied tags the denial with the request it concerned so logs and
// telemetry can attribute it. errors.Is still matches ErrAccessDenied by code.
func accessDenied(requestID string) error {
	return apperrors.WithMetadata(apperrors.CodeRequestAccessDenied, "actor may not act on this request", map[string]string{
		"request_id": requestID,
	})
}

// Stores bundles the persistence dependencies of the collab service.
type Stores struct {
	Profiles storage.ProfileStore
	Projects storage.ProjectStore
	Teams    storage.TeamStore
	Requests storage.RequestStore
}

// Service drives the collaboration request lifecycle.
type Service struct {
	stores      Stores
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewService creates a collab service with default dependencies.
func NewService(stores Stores) *Service {
	return &Service{
		stores:      stores,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// CreateInput describes a new collaboration request.
type CreateInput struct {
	ProjectID   string
	RequesterID string
	Message     string
}

// Create validates preconditions and persists a pending request. The store's
// unique pending index backstops the duplicate check under concurrency.
func (s *Service) Create(ctx context.Context, input CreateInput) (request.Request, error) {
	input.ProjectID = strings.TrimSpace(input.ProjectID)
	input.RequesterID = strings.TrimSpace(input.RequesterID)

	target, err := s.stores.Projects.GetProject(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return request.Request{}, ErrProjectNotFound
		}
		return request.Request{}, fmt.Errorf("load project: %w", err)
	}
	if _, err := s.stores.Profiles.GetProfile(ctx, input.RequesterID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return request.Request{}, ErrProfileNotFound
		}
		return request.Request{}, fmt.Errorf("load requester profile: %w", err)
	}
	if target.IsOwnedBy(input.RequesterID) {
		return request.Request{}, ErrOwnProject
	}
	if _, err := s.stores.Requests.FindPendingRequest(ctx, input.ProjectID, input.RequesterID); err == nil {
		return request.Request{}, ErrDuplicateRequest
	} else if !errors.Is(err, storage.ErrNotFound) {
		return request.Request{}, fmt.Errorf("check pending request: %w", err)
	}
	isMember, err := s.stores.Teams.IsTeamMember(ctx, input.ProjectID, input.RequesterID)
	if err != nil {
		return request.Request{}, fmt.Errorf("check team membership: %w", err)
	}
	if isMember {
		return request.Request{}, ErrAlreadyMember
	}

	created, err := request.CreateRequest(request.CreateRequestInput{
		ProjectID:   input.ProjectID,
		RequesterID: input.RequesterID,
		Message:     input.Message,
	}, s.clock, s.idGenerator)
	if err != nil {
		return request.Request{}, err
	}
	if err := s.stores.Requests.CreateRequest(ctx, created); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return request.Request{}, ErrDuplicateRequest
		}
		return request.Request{}, fmt.Errorf("persist request: %w", err)
	}
	return created, nil
}

// loadForDecision returns the request and its project after verifying the
// actor owns the project.
func (s *Service) loadForDecision(ctx context.Context, requestID string, actorID string) (request.Request, project.Project, error) {
	r, err := s.stores.Requests.GetRequest(ctx, strings.TrimSpace(requestID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return request.Request{}, project.Project{}, ErrRequestNotFound
		}
		return request.Request{}, project.Project{}, fmt.Errorf("load request: %w", err)
	}
	target, err := s.stores.Projects.GetProject(ctx, r.ProjectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return request.Request{}, project.Project{}, ErrProjectNotFound
		}
		return request.Request{}, project.Project{}, fmt.Errorf("load project: %w", err)
	}
	if !target.IsOwnedBy(strings.TrimSpace(actorID)) {
		return request.Request{}, project.Project{}, accessDenied(r.ID)
	}
	return r, target, nil
}

// Approve accepts a pending request as the project owner. The first approval
// creates the project's team and every approval adds the requester to it.
func (s *Service) Approve(ctx context.Context, requestID string, actorID string) (request.Request, error) {
	r, target, err := s.loadForDecision(ctx, requestID, actorID)
	if err != nil {
		return request.Request{}, err
	}
	if !r.IsPending() {
		return request.Request{}, ErrNotPending
	}

	candidate, err := team.CreateTeam(team.CreateTeamInput{
		ProjectID:    target.ID,
		ProjectTitle: target.Title,
		CreatedBy:    target.CreatorID,
	}, s.clock, s.idGenerator)
	if err != nil {
		return request.Request{}, err
	}

	approved, err := s.stores.Requests.ApproveRequest(ctx, r.ID, candidate, s.clock().UTC())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return request.Request{}, ErrRequestNotFound
		case errors.Is(err, storage.ErrInvalidState):
			return request.Request{}, ErrNotPending
		}
		return request.Request{}, fmt.Errorf("approve request: %w", err)
	}
	return approved, nil
}

// Reject declines a pending request as the project owner, keeping the record
// with the recorded reason.
func (s *Service) Reject(ctx context.Context, requestID string, actorID string, reason string) (request.Request, error) {
	r, _, err := s.loadForDecision(ctx, requestID, actorID)
	if err != nil {
		return request.Request{}, err
	}
	if !r.IsPending() {
		return request.Request{}, ErrNotPending
	}

	rejected, err := s.stores.Requests.RejectRequest(ctx, r.ID, strings.TrimSpace(reason), s.clock().UTC())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return request.Request{}, ErrRequestNotFound
		case errors.Is(err, storage.ErrInvalidState):
			return request.Request{}, ErrNotPending
		}
		return request.Request{}, fmt.Errorf("reject request: %w", err)
	}
	return rejected, nil
}

// Cancel withdraws a pending request as its requester, deleting the record.
func (s *Service) Cancel(ctx context.Context, requestID string, actorID string) error {
	r, err := s.stores.Requests.GetRequest(ctx, strings.TrimSpace(requestID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("load request: %w", err)
	}
	if r.RequesterID != strings.TrimSpace(actorID) {
		return accessDenied(r.ID)
	}
	if !r.IsPending() {
		return ErrNotPending
	}

	if err := s.stores.Requests.DeleteRequestIfPending(ctx, r.ID); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return ErrRequestNotFound
		case errors.Is(err, storage.ErrInvalidState):
			return ErrNotPending
		}
		return fmt.Errorf("cancel request: %w", err)
	}
	return nil
}

// GetByID returns one request, visible only to its requester and the
// project's owner.
func (s *Service) GetByID(ctx context.Context, requestID string, actorID string) (request.Request, error) {
	r, err := s.stores.Requests.GetRequest(ctx, strings.TrimSpace(requestID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return request.Request{}, ErrRequestNotFound
		}
		return request.Request{}, fmt.Errorf("load request: %w", err)
	}

	actorID = strings.TrimSpace(actorID)
	if r.RequesterID == actorID {
		return r, nil
	}
	target, err := s.stores.Projects.GetProject(ctx, r.ProjectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return request.Request{}, ErrProjectNotFound
		}
		return request.Request{}, fmt.Errorf("load project: %w", err)
	}
	if !target.IsOwnedBy(actorID) {
		return request.Request{}, accessDenied(r.ID)
	}
	return r, nil
}

// ListReceived returns requests targeting the owner's projects, newest
// first. A zero status means all statuses.
func (s *Service) ListReceived(ctx context.Context, ownerID string, status request.Status) ([]request.Request, error) {
	requests, err := s.stores.Requests.ListReceived(ctx, strings.TrimSpace(ownerID), status)
	if err != nil {
		return nil, fmt.Errorf("list received requests: %w", err)
	}
	return requests, nil
}

// ListSent returns the requester's own requests, newest first. A zero status
// means all statuses.
func (s *Service) ListSent(ctx context.Context, requesterID string, status request.Status) ([]request.Request, error) {
	requests, err := s.stores.Requests.ListSent(ctx, strings.TrimSpace(requesterID), status)
	if err != nil {
		return nil, fmt.Errorf("list sent requests: %w", err)
	}
	return requests, nil
}

// Stats aggregates request counts for one profile across both directions.
func (s *Service) Stats(ctx context.Context, profileID string) (request.Stats, error) {
	profileID = strings.TrimSpace(profileID)

	var stats request.Stats
	counts := []struct {
		value  *int64
		count  func(context.Context, string, request.Status) (int64, error)
		status request.Status
	}{
		{&stats.PendingReceived, s.stores.Requests.CountReceived, request.StatusPending},
		{&stats.TotalReceived, s.stores.Requests.CountReceived, request.StatusUnspecified},
		{&stats.ApprovedReceived, s.stores.Requests.CountReceived, request.StatusApproved},
		{&stats.RejectedReceived, s.stores.Requests.CountReceived, request.StatusRejected},
		{&stats.PendingSent, s.stores.Requests.CountSent, request.StatusPending},
		{&stats.TotalSent, s.stores.Requests.CountSent, request.StatusUnspecified},
	}
	for _, c := range counts {
		value, err := c.count(ctx, profileID, c.status)
		if err != nil {
			return request.Stats{}, fmt.Errorf("count requests: %w", err)
		}
		*c.value = value
	}
	return stats, nil
}
