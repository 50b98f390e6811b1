package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ojasvatstyagi/Collabro/internal/profile"
	"github.com/ojasvatstyagi/Collabro/internal/search"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
)

const profileColumns = `id, account_id, first_name, last_name, bio, education,
	location, phone, picture_url, complete, completion_percentage,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (profile.Profile, error) {
	var (
		p         profile.Profile
		complete  int
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&p.ID,
		&p.AccountID,
		&p.FirstName,
		&p.LastName,
		&p.Bio,
		&p.Education,
		&p.Location,
		&p.Phone,
		&p.PictureURL,
		&complete,
		&p.CompletionPercentage,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return profile.Profile{}, err
	}
	p.Complete = complete != 0
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

// PutProfile upserts one collaboration profile.
func (s *Store) PutProfile(ctx context.Context, p profile.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("profile id is required")
	}
	if strings.TrimSpace(p.AccountID) == "" {
		return fmt.Errorf("account id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO profiles (id, account_id, first_name, last_name, bio, education,
		   location, phone, picture_url, complete, completion_percentage, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   first_name = excluded.first_name,
		   last_name = excluded.last_name,
		   bio = excluded.bio,
		   education = excluded.education,
		   location = excluded.location,
		   phone = excluded.phone,
		   picture_url = excluded.picture_url,
		   complete = excluded.complete,
		   completion_percentage = excluded.completion_percentage,
		   updated_at = excluded.updated_at`,
		p.ID,
		p.AccountID,
		p.FirstName,
		p.LastName,
		p.Bio,
		p.Education,
		p.Location,
		p.Phone,
		p.PictureURL,
		boolToInt(p.Complete),
		p.CompletionPercentage,
		toMillis(p.CreatedAt),
		toMillis(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// GetProfile returns one profile by ID.
func (s *Store) GetProfile(ctx context.Context, profileID string) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, err
	}
	if err := s.ready(); err != nil {
		return profile.Profile{}, err
	}
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return profile.Profile{}, fmt.Errorf("profile id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`,
		profileID,
	)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile.Profile{}, storage.ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// GetProfileByAccount returns the profile owned by an account.
func (s *Store) GetProfileByAccount(ctx context.Context, accountID string) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, err
	}
	if err := s.ready(); err != nil {
		return profile.Profile{}, err
	}
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return profile.Profile{}, fmt.Errorf("account id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE account_id = ?`,
		accountID,
	)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile.Profile{}, storage.ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("get profile by account: %w", err)
	}
	return p, nil
}

// ListProfilesBySharedSkills returns profiles sharing at least minShared of
// the given skill names, excluding excludeID.
func (s *Store) ListProfilesBySharedSkills(ctx context.Context, names []string, excludeID string, minShared int) ([]profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	if len(names) == 0 || minShared > len(names) {
		return nil, nil
	}
	if minShared < 1 {
		minShared = 1
	}

	query := `SELECT ` + profileColumns + ` FROM profiles
		 WHERE id != ?
		   AND id IN (
		     SELECT profile_id FROM skills
		     WHERE name IN (` + placeholders(len(names)) + `)
		     GROUP BY profile_id
		     HAVING COUNT(DISTINCT name) >= ?
		   )
		 ORDER BY id ASC`
	args := make([]any, 0, len(names)+2)
	args = append(args, excludeID)
	for _, name := range names {
		args = append(args, name)
	}
	args = append(args, minShared)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles by shared skills: %w", err)
	}
	defer rows.Close()

	profiles, err := collectProfiles(rows)
	if err != nil {
		return nil, fmt.Errorf("list profiles by shared skills: %w", err)
	}
	return profiles, nil
}

// ListProfilesWithSkillNotIn returns profiles holding at least one skill
// name absent from the given set, excluding excludeID.
func (s *Store) ListProfilesWithSkillNotIn(ctx context.Context, names []string, excludeID string) ([]profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := `SELECT ` + profileColumns + ` FROM profiles
		 WHERE id != ?
		   AND id IN (SELECT profile_id FROM skills`
	args := []any{excludeID}
	if len(names) > 0 {
		query += ` WHERE name NOT IN (` + placeholders(len(names)) + `)`
		for _, name := range names {
			args = append(args, name)
		}
	}
	query += `)
		 ORDER BY id ASC`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles with skill not in: %w", err)
	}
	defer rows.Close()

	profiles, err := collectProfiles(rows)
	if err != nil {
		return nil, fmt.Errorf("list profiles with skill not in: %w", err)
	}
	return profiles, nil
}

// SearchProfiles returns one page of profiles matching the compiled filter.
func (s *Store) SearchProfiles(ctx context.Context, filter search.ProfileFilter, pageSize int, pageToken string) (storage.ProfilePage, error) {
	if err := ctx.Err(); err != nil {
		return storage.ProfilePage{}, err
	}
	if err := s.ready(); err != nil {
		return storage.ProfilePage{}, err
	}
	if pageSize <= 0 {
		return storage.ProfilePage{}, fmt.Errorf("page size must be greater than zero")
	}

	conditions, args, err := profileFilterSQL(filter)
	if err != nil {
		return storage.ProfilePage{}, err
	}
	pageToken = strings.TrimSpace(pageToken)
	if pageToken != "" {
		conditions = append(conditions, "id > ?")
		args = append(args, pageToken)
	}

	query := `SELECT ` + profileColumns + ` FROM profiles`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id ASC LIMIT ?`
	args = append(args, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return storage.ProfilePage{}, fmt.Errorf("search profiles: %w", err)
	}
	defer rows.Close()

	profiles, err := collectProfiles(rows)
	if err != nil {
		return storage.ProfilePage{}, fmt.Errorf("search profiles: %w", err)
	}

	page := storage.ProfilePage{Profiles: profiles}
	if len(page.Profiles) > pageSize {
		page.NextPageToken = page.Profiles[pageSize-1].ID
		page.Profiles = page.Profiles[:pageSize]
	}
	return page, nil
}

func collectProfiles(rows *sql.Rows) ([]profile.Profile, error) {
	var profiles []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func profileFilterSQL(filter search.ProfileFilter) ([]string, []any, error) {
	var (
		conditions []string
		args       []any
	)
	for _, clause := range filter.Clauses {
		switch clause.Kind {
		case search.ProfileClauseSkillAnyOf:
			condition := `EXISTS (SELECT 1 FROM skills
				 WHERE skills.profile_id = profiles.id
				   AND lower(skills.name) IN (` + placeholders(len(clause.Values)) + `)`
			args = append(args, loweredArgs(clause.Values)...)
			if clause.MinProficiency != profile.ProficiencyUnspecified {
				condition += ` AND skills.proficiency >= ?`
				args = append(args, int(clause.MinProficiency))
			}
			condition += `)`
			conditions = append(conditions, condition)
		case search.ProfileClauseEducationContains:
			conditions = append(conditions, `instr(lower(education), ?) > 0`)
			args = append(args, strings.ToLower(clause.Value))
		case search.ProfileClauseLocationContains:
			conditions = append(conditions, `instr(lower(location), ?) > 0`)
			args = append(args, strings.ToLower(clause.Value))
		default:
			return nil, nil, fmt.Errorf("unsupported profile filter clause: %d", clause.Kind)
		}
	}
	return conditions, args, nil
}
