package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ojasvatstyagi/Collabro/internal/storage"
	"github.com/ojasvatstyagi/Collabro/internal/team"
)

// GetTeamByProject returns a project's team, or storage.ErrNotFound if none
// has formed yet.
func (s *Store) GetTeamByProject(ctx context.Context, projectID string) (team.Team, error) {
	if err := ctx.Err(); err != nil {
		return team.Team{}, err
	}
	if err := s.ready(); err != nil {
		return team.Team{}, err
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return team.Team{}, fmt.Errorf("project id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, project_id, name, created_by, created_at
		 FROM teams WHERE project_id = ?`,
		projectID,
	)
	var (
		t         team.Team
		createdAt int64
	)
	err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.CreatedBy, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return team.Team{}, storage.ErrNotFound
		}
		return team.Team{}, fmt.Errorf("get team by project: %w", err)
	}
	t.CreatedAt = fromMillis(createdAt)
	return t, nil
}

// ListTeamMembers returns a team's members in join order.
func (s *Store) ListTeamMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("team id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT team_id, profile_id, added_at
		 FROM team_members
		 WHERE team_id = ?
		 ORDER BY added_at ASC, profile_id ASC`,
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var members []team.Member
	for rows.Next() {
		var (
			member  team.Member
			addedAt int64
		)
		if err := rows.Scan(&member.TeamID, &member.ProfileID, &addedAt); err != nil {
			return nil, fmt.Errorf("list team members: %w", err)
		}
		member.AddedAt = fromMillis(addedAt)
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return members, nil
}

// IsTeamMember reports whether a profile belongs to the project's team.
func (s *Store) IsTeamMember(ctx context.Context, projectID string, profileID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := s.ready(); err != nil {
		return false, err
	}
	projectID = strings.TrimSpace(projectID)
	profileID = strings.TrimSpace(profileID)
	if projectID == "" {
		return false, fmt.Errorf("project id is required")
	}
	if profileID == "" {
		return false, fmt.Errorf("profile id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT 1 FROM team_members
		 JOIN teams ON teams.id = team_members.team_id
		 WHERE teams.project_id = ? AND team_members.profile_id = ?`,
		projectID,
		profileID,
	)
	var found int
	err := row.Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("is team member: %w", err)
	}
	return true, nil
}
