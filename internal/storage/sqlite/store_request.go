package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ojasvatstyagi/Collabro/internal/request"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
	"github.com/ojasvatstyagi/Collabro/internal/team"
)

const requestColumns = `id, project_id, requester_id, status, message,
	rejection_reason, created_at, updated_at`

func scanRequest(row rowScanner) (request.Request, error) {
	var (
		r         request.Request
		status    string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&r.ID,
		&r.ProjectID,
		&r.RequesterID,
		&status,
		&r.Message,
		&r.RejectionReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return request.Request{}, err
	}
	r.Status = request.StatusFromLabel(status)
	r.CreatedAt = fromMillis(createdAt)
	r.UpdatedAt = fromMillis(updatedAt)
	return r, nil
}

// CreateRequest inserts one pending collaboration request. The partial
// unique index on pending pairs rejects concurrent duplicates.
func (s *Store) CreateRequest(ctx context.Context, r request.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("request id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO requests (id, project_id, requester_id, status, message,
		   rejection_reason, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.ProjectID,
		r.RequesterID,
		request.StatusLabel(r.Status),
		r.Message,
		r.RejectionReason,
		toMillis(r.CreatedAt),
		toMillis(r.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

// GetRequest returns one request by ID.
func (s *Store) GetRequest(ctx context.Context, requestID string) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, err
	}
	if err := s.ready(); err != nil {
		return request.Request{}, err
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return request.Request{}, fmt.Errorf("request id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = ?`,
		requestID,
	)
	r, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return request.Request{}, storage.ErrNotFound
		}
		return request.Request{}, fmt.Errorf("get request: %w", err)
	}
	return r, nil
}

// FindPendingRequest returns the pending request for a project and requester
// pair, or storage.ErrNotFound.
func (s *Store) FindPendingRequest(ctx context.Context, projectID string, requesterID string) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, err
	}
	if err := s.ready(); err != nil {
		return request.Request{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+requestColumns+` FROM requests
		 WHERE project_id = ? AND requester_id = ? AND status = ?`,
		strings.TrimSpace(projectID),
		strings.TrimSpace(requesterID),
		request.StatusLabel(request.StatusPending),
	)
	r, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return request.Request{}, storage.ErrNotFound
		}
		return request.Request{}, fmt.Errorf("find pending request: %w", err)
	}
	return r, nil
}

// ApproveRequest approves a pending request and forms team membership in one
// transaction. The first approval for a project creates its team from the
// candidate and attaches it to the project row.
func (s *Store) ApproveRequest(ctx context.Context, requestID string, candidate team.Team, now time.Time) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, err
	}
	if err := s.ready(); err != nil {
		return request.Request{}, err
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return request.Request{}, fmt.Errorf("request id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return request.Request{}, fmt.Errorf("approve request: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(
		ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = ?`,
		requestID,
	)
	r, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return request.Request{}, storage.ErrNotFound
		}
		return request.Request{}, fmt.Errorf("approve request: %w", err)
	}

	result, err := tx.ExecContext(
		ctx,
		`UPDATE requests SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		request.StatusLabel(request.StatusApproved),
		toMillis(now),
		requestID,
		request.StatusLabel(request.StatusPending),
	)
	if err != nil {
		return request.Request{}, fmt.Errorf("approve request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return request.Request{}, fmt.Errorf("approve request: %w", err)
	}
	if affected == 0 {
		return request.Request{}, storage.ErrInvalidState
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO teams (id, project_id, name, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(project_id) DO NOTHING`,
		candidate.ID,
		r.ProjectID,
		candidate.Name,
		candidate.CreatedBy,
		toMillis(candidate.CreatedAt),
	); err != nil {
		return request.Request{}, fmt.Errorf("approve request: create team: %w", err)
	}

	var teamID string
	if err := tx.QueryRowContext(
		ctx,
		`SELECT id FROM teams WHERE project_id = ?`,
		r.ProjectID,
	).Scan(&teamID); err != nil {
		return request.Request{}, fmt.Errorf("approve request: resolve team: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`UPDATE projects SET team_id = ?, updated_at = ?
		 WHERE id = ? AND (team_id IS NULL OR team_id = '')`,
		teamID,
		toMillis(now),
		r.ProjectID,
	); err != nil {
		return request.Request{}, fmt.Errorf("approve request: attach team: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO team_members (team_id, profile_id, added_at)
		 VALUES (?, ?, ?)`,
		teamID,
		r.RequesterID,
		toMillis(now),
	); err != nil {
		return request.Request{}, fmt.Errorf("approve request: add member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return request.Request{}, fmt.Errorf("approve request: %w", err)
	}

	r.Status = request.StatusApproved
	r.UpdatedAt = now.UTC()
	return r, nil
}

// RejectRequest rejects a pending request, recording the reason.
func (s *Store) RejectRequest(ctx context.Context, requestID string, reason string, now time.Time) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, err
	}
	if err := s.ready(); err != nil {
		return request.Request{}, err
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return request.Request{}, fmt.Errorf("request id is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE requests SET status = ?, rejection_reason = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		request.StatusLabel(request.StatusRejected),
		reason,
		toMillis(now),
		requestID,
		request.StatusLabel(request.StatusPending),
	)
	if err != nil {
		return request.Request{}, fmt.Errorf("reject request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return request.Request{}, fmt.Errorf("reject request: %w", err)
	}
	if affected == 0 {
		if _, err := s.GetRequest(ctx, requestID); err != nil {
			return request.Request{}, err
		}
		return request.Request{}, storage.ErrInvalidState
	}
	return s.GetRequest(ctx, requestID)
}

// DeleteRequestIfPending removes a pending request outright.
func (s *Store) DeleteRequestIfPending(ctx context.Context, requestID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return fmt.Errorf("request id is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM requests WHERE id = ? AND status = ?`,
		requestID,
		request.StatusLabel(request.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if affected == 0 {
		if _, err := s.GetRequest(ctx, requestID); err != nil {
			return err
		}
		return storage.ErrInvalidState
	}
	return nil
}

// ListReceived returns requests targeting projects created by ownerID,
// newest first.
func (s *Store) ListReceived(ctx context.Context, ownerID string, status request.Status) ([]request.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	query := `SELECT ` + requestQualifiedColumns + ` FROM requests
		 JOIN projects ON projects.id = requests.project_id
		 WHERE projects.creator_id = ?`
	args := []any{ownerID}
	if status != request.StatusUnspecified {
		query += ` AND requests.status = ?`
		args = append(args, request.StatusLabel(status))
	}
	query += ` ORDER BY requests.created_at DESC, requests.id DESC`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list received requests: %w", err)
	}
	defer rows.Close()

	requests, err := collectRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("list received requests: %w", err)
	}
	return requests, nil
}

// ListSent returns requests created by requesterID, newest first.
func (s *Store) ListSent(ctx context.Context, requesterID string, status request.Status) ([]request.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	requesterID = strings.TrimSpace(requesterID)
	if requesterID == "" {
		return nil, fmt.Errorf("requester id is required")
	}

	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id = ?`
	args := []any{requesterID}
	if status != request.StatusUnspecified {
		query += ` AND status = ?`
		args = append(args, request.StatusLabel(status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sent requests: %w", err)
	}
	defer rows.Close()

	requests, err := collectRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("list sent requests: %w", err)
	}
	return requests, nil
}

// CountReceived counts requests targeting projects created by ownerID.
func (s *Store) CountReceived(ctx context.Context, ownerID string, status request.Status) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return 0, fmt.Errorf("owner id is required")
	}

	query := `SELECT COUNT(*) FROM requests
		 JOIN projects ON projects.id = requests.project_id
		 WHERE projects.creator_id = ?`
	args := []any{ownerID}
	if status != request.StatusUnspecified {
		query += ` AND requests.status = ?`
		args = append(args, request.StatusLabel(status))
	}

	var count int64
	if err := s.sqlDB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count received requests: %w", err)
	}
	return count, nil
}

// CountSent counts requests created by requesterID.
func (s *Store) CountSent(ctx context.Context, requesterID string, status request.Status) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	requesterID = strings.TrimSpace(requesterID)
	if requesterID == "" {
		return 0, fmt.Errorf("requester id is required")
	}

	query := `SELECT COUNT(*) FROM requests WHERE requester_id = ?`
	args := []any{requesterID}
	if status != request.StatusUnspecified {
		query += ` AND status = ?`
		args = append(args, request.StatusLabel(status))
	}

	var count int64
	if err := s.sqlDB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sent requests: %w", err)
	}
	return count, nil
}

const requestQualifiedColumns = `requests.id, requests.project_id,
	requests.requester_id, requests.status, requests.message,
	requests.rejection_reason, requests.created_at, requests.updated_at`

func collectRequests(rows *sql.Rows) ([]request.Request, error) {
	var requests []request.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
