// Package matching finds collaborators by skill overlap and search criteria.
package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/ojasvatstyagi/Collabro/internal/platform/pagination"
	"github.com/ojasvatstyagi/Collabro/internal/profile"
	"github.com/ojasvatstyagi/Collabro/internal/search"
	"github.com/ojasvatstyagi/Collabro/internal/storage"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
)

const (
	// similarSkillThreshold is the minimum number of shared skill names for
	// two profiles to count as similar.
	similarSkillThreshold = 3

	defaultSearchPageSize = 20
	maxSearchPageSize     = 100
)

// ErrProfileNotFound indicates the subject profile does not exist.
var ErrProfileNotFound = apperrors.New(apperrors.CodeNotFound, "profile not found")

// Service finds collaborators for a profile.
type Service struct {
	profiles storage.ProfileStore
	skills   storage.SkillStore
	projects storage.ProjectStore
}

// NewService creates a matching service over the given stores.
func NewService(profiles storage.ProfileStore, skills storage.SkillStore, projects storage.ProjectStore) *Service {
	return &Service{
		profiles: profiles,
		skills:   skills,
		projects: projects,
	}
}

func (s *Service) subjectSkillNames(ctx context.Context, profileID string) ([]string, error) {
	if _, err := s.profiles.GetProfile(ctx, profileID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	skills, err := s.skills.ListSkills(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	return profile.SkillNames(skills), nil
}

// FindSimilar returns profiles sharing at least three skill names with the
// subject. A subject with fewer than three skills matches nobody.
func (s *Service) FindSimilar(ctx context.Context, profileID string) ([]profile.Profile, error) {
	names, err := s.subjectSkillNames(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if len(names) < similarSkillThreshold {
		return nil, nil
	}

	matches, err := s.profiles.ListProfilesBySharedSkills(ctx, names, profileID, similarSkillThreshold)
	if err != nil {
		return nil, fmt.Errorf("find similar profiles: %w", err)
	}
	return matches, nil
}

// FindComplementary returns profiles holding at least one skill name the
// subject lacks. A subject with no skills is complemented by anyone with a
// skill.
func (s *Service) FindComplementary(ctx context.Context, profileID string) ([]profile.Profile, error) {
	names, err := s.subjectSkillNames(ctx, profileID)
	if err != nil {
		return nil, err
	}

	matches, err := s.profiles.ListProfilesWithSkillNotIn(ctx, names, profileID)
	if err != nil {
		return nil, fmt.Errorf("find complementary profiles: %w", err)
	}
	return matches, nil
}

// SearchProfiles returns one page of profiles matching the criteria. Blank
// criteria fields are ignored; fully blank criteria match everyone.
func (s *Service) SearchProfiles(ctx context.Context, criteria search.ProfileCriteria, pageSize int, pageToken string) (storage.ProfilePage, error) {
	pageSize = pagination.ClampPageSize(pageSize, pagination.PageSizeConfig{
		Default: defaultSearchPageSize,
		Max:     maxSearchPageSize,
	})

	filter := search.CompileProfileCriteria(criteria)
	page, err := s.profiles.SearchProfiles(ctx, filter, pageSize, pageToken)
	if err != nil {
		return storage.ProfilePage{}, fmt.Errorf("search profiles: %w", err)
	}
	return page, nil
}

// SearchProjects returns one page of projects matching the criteria.
func (s *Service) SearchProjects(ctx context.Context, criteria search.ProjectCriteria, pageSize int, pageToken string) (storage.ProjectPage, error) {
	pageSize = pagination.ClampPageSize(pageSize, pagination.PageSizeConfig{
		Default: defaultSearchPageSize,
		Max:     maxSearchPageSize,
	})

	filter := search.CompileProjectCriteria(criteria)
	page, err := s.projects.SearchProjects(ctx, filter, pageSize, pageToken)
	if err != nil {
		return storage.ProjectPage{}, fmt.Errorf("search projects: %w", err)
	}
	return page, nil
}
