package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/ojasvatstyagi/Collabro/internal/profile"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
)

// PutSkill upserts one profile skill. Inserting a second skill with the same
// name for a profile returns storage.ErrAlreadyExists.
func (s *Store) PutSkill(ctx context.Context, skill profile.Skill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(skill.ID) == "" {
		return fmt.Errorf("skill id is required")
	}
	if strings.TrimSpace(skill.ProfileID) == "" {
		return fmt.Errorf("profile id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO skills (id, profile_id, name, proficiency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   proficiency = excluded.proficiency,
		   updated_at = excluded.updated_at`,
		skill.ID,
		skill.ProfileID,
		skill.Name,
		int(skill.Proficiency),
		toMillis(skill.CreatedAt),
		toMillis(skill.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put skill: %w", err)
	}
	return nil
}

// DeleteSkill removes one skill owned by a profile.
func (s *Store) DeleteSkill(ctx context.Context, profileID string, skillID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	profileID = strings.TrimSpace(profileID)
	skillID = strings.TrimSpace(skillID)
	if profileID == "" {
		return fmt.Errorf("profile id is required")
	}
	if skillID == "" {
		return fmt.Errorf("skill id is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM skills WHERE id = ? AND profile_id = ?`,
		skillID,
		profileID,
	)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListSkills returns a profile's skills in creation order.
func (s *Store) ListSkills(ctx context.Context, profileID string) ([]profile.Skill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, fmt.Errorf("profile id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, profile_id, name, proficiency, created_at, updated_at
		 FROM skills
		 WHERE profile_id = ?
		 ORDER BY created_at ASC, id ASC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var skills []profile.Skill
	for rows.Next() {
		var (
			skill       profile.Skill
			proficiency int
			createdAt   int64
			updatedAt   int64
		)
		if err := rows.Scan(
			&skill.ID,
			&skill.ProfileID,
			&skill.Name,
			&proficiency,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("list skills: %w", err)
		}
		skill.Proficiency = profile.Proficiency(proficiency)
		skill.CreatedAt = fromMillis(createdAt)
		skill.UpdatedAt = fromMillis(updatedAt)
		skills = append(skills, skill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// PutSocialLink upserts one profile social link.
func (s *Store) PutSocialLink(ctx context.Context, link profile.SocialLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(link.ID) == "" {
		return fmt.Errorf("social link id is required")
	}
	if strings.TrimSpace(link.ProfileID) == "" {
		return fmt.Errorf("profile id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO social_links (id, profile_id, platform, url, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   platform = excluded.platform,
		   url = excluded.url`,
		link.ID,
		link.ProfileID,
		link.Platform,
		link.URL,
		toMillis(link.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put social link: %w", err)
	}
	return nil
}

// DeleteSocialLink removes one social link owned by a profile.
func (s *Store) DeleteSocialLink(ctx context.Context, profileID string, linkID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	profileID = strings.TrimSpace(profileID)
	linkID = strings.TrimSpace(linkID)
	if profileID == "" {
		return fmt.Errorf("profile id is required")
	}
	if linkID == "" {
		return fmt.Errorf("social link id is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM social_links WHERE id = ? AND profile_id = ?`,
		linkID,
		profileID,
	)
	if err != nil {
		return fmt.Errorf("delete social link: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete social link: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListSocialLinks returns a profile's social links in creation order.
func (s *Store) ListSocialLinks(ctx context.Context, profileID string) ([]profile.SocialLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, fmt.Errorf("profile id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, profile_id, platform, url, created_at
		 FROM social_links
		 WHERE profile_id = ?
		 ORDER BY created_at ASC, id ASC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	defer rows.Close()

	var links []profile.SocialLink
	for rows.Next() {
		var (
			link      profile.SocialLink
			createdAt int64
		)
		if err := rows.Scan(&link.ID, &link.ProfileID, &link.Platform, &link.URL, &createdAt); err != nil {
			return nil, fmt.Errorf("list social links: %w", err)
		}
		link.CreatedAt = fromMillis(createdAt)
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	return links, nil
}
