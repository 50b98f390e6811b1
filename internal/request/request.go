// Package request provides collaboration join-request management.
package request

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
	"github.com/ojasvatstyagi/Collabro/internal/platform/id"
)

var (
	// ErrEmptyProjectID indicates a missing project reference.
	ErrEmptyProjectID = apperrors.New(apperrors.CodeRequestEmptyProjectID, "project id is required")
	// ErrEmptyRequesterID indicates a missing requester reference.
	ErrEmptyRequesterID = apperrors.New(apperrors.CodeRequestEmptyRequesterID, "requester profile id is required")
)

// Status represents the lifecycle status of a collaboration request.
type Status int

const (
	// StatusUnspecified represents an invalid request status.
	StatusUnspecified Status = iota
	// StatusPending indicates a request awaiting the project owner's decision.
	StatusPending
	// StatusApproved indicates an accepted request; terminal.
	StatusApproved
	// StatusRejected indicates a declined request; terminal, kept for audit.
	StatusRejected
	// StatusOnHold is carried in the data shape but produced by no
	// lifecycle operation; treated as non-pending everywhere.
	StatusOnHold
)

// StatusLabel returns the string label for a request status.
func StatusLabel(status Status) string {
	switch status {
	case StatusPending:
		return "PENDING"
	case StatusApproved:
		return "APPROVED"
	case StatusRejected:
		return "REJECTED"
	case StatusOnHold:
		return "ON_HOLD"
	default:
		return "UNSPECIFIED"
	}
}

// StatusFromLabel converts a status label to a Status value.
func StatusFromLabel(label string) Status {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PENDING":
		return StatusPending
	case "APPROVED":
		return StatusApproved
	case "REJECTED":
		return StatusRejected
	case "ON_HOLD":
		return StatusOnHold
	default:
		return StatusUnspecified
	}
}

// Request represents a profile's ask to join a project's team. Approved and
// rejected requests persist as immutable audit records; cancelled requests
// are deleted outright.
type Request struct {
	ID              string
	ProjectID       string
	RequesterID     string
	Status          Status
	Message         string
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPending reports whether the request still awaits a decision.
func (r Request) IsPending() bool {
	return r.Status == StatusPending
}

// CreateRequestInput describes the metadata needed to create a request.
type CreateRequestInput struct {
	ProjectID   string
	RequesterID string
	Message     string
}

// CreateRequest creates a PENDING request with a generated ID and timestamps.
func CreateRequest(input CreateRequestInput, now func() time.Time, idGenerator func() (string, error)) (Request, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.ProjectID = strings.TrimSpace(input.ProjectID)
	if input.ProjectID == "" {
		return Request{}, ErrEmptyProjectID
	}
	input.RequesterID = strings.TrimSpace(input.RequesterID)
	if input.RequesterID == "" {
		return Request{}, ErrEmptyRequesterID
	}

	requestID, err := idGenerator()
	if err != nil {
		return Request{}, fmt.Errorf("generate request id: %w", err)
	}

	createdAt := now().UTC()
	return Request{
		ID:          requestID,
		ProjectID:   input.ProjectID,
		RequesterID: input.RequesterID,
		Status:      StatusPending,
		Message:     strings.TrimSpace(input.Message),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// Stats aggregates request counts for one profile across both directions.
type Stats struct {
	PendingReceived  int64
	TotalReceived    int64
	ApprovedReceived int64
	RejectedReceived int64
	PendingSent      int64
	TotalSent        int64
}
