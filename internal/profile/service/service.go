// Package service manages profiles, skills, and social links over a
// persistence backend.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
	"github.com/ojasvatstyagi/Collabro/internal/platform/id"
	"github.com/ojasvatstyagi/Collabro/internal/profile"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
)

var (
	// ErrNotFound indicates the profile does not exist.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "profile not found")
	// ErrAlreadyExists indicates the account already owns a profile.
	ErrAlreadyExists = apperrors.New(apperrors.CodeProfileAlreadyExists, "account already has a profile")
	// ErrDuplicateSkill indicates the profile already has a skill with that
	// name.
	ErrDuplicateSkill = apperrors.New(apperrors.CodeSkillDuplicateName, "profile already has this skill")
	// ErrSkillNotFound indicates the skill does not exist for the profile.
	ErrSkillNotFound = apperrors.New(apperrors.CodeNotFound, "skill not found")
	// ErrSocialLinkNotFound indicates the social link does not exist for the
	// profile.
	ErrSocialLinkNotFound = apperrors.New(apperrors.CodeNotFound, "social link not found")
)

// View bundles a profile with its skills and social links.
type View struct {
	Profile     profile.Profile
	Skills      []profile.Skill
	SocialLinks []profile.SocialLink
}

// Service manages profiles, skills, and social links. Every mutation that
// touches a scored field rescores completion before persisting.
type Service struct {
	profiles    storage.ProfileStore
	skills      storage.SkillStore
	socialLinks storage.SocialLinkStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewService creates a profile service with default dependencies.
func NewService(profiles storage.ProfileStore, skills storage.SkillStore, socialLinks storage.SocialLinkStore) *Service {
	return &Service{
		profiles:    profiles,
		skills:      skills,
		socialLinks: socialLinks,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// Create creates a profile for an account. One account owns at most one
// profile.
func (s *Service) Create(ctx context.Context, input profile.CreateProfileInput) (profile.Profile, error) {
	if _, err := s.profiles.GetProfileByAccount(ctx, strings.TrimSpace(input.AccountID)); err == nil {
		return profile.Profile{}, ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return profile.Profile{}, fmt.Errorf("check account profile: %w", err)
	}

	created, err := profile.CreateProfile(input, s.clock, s.idGenerator)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := s.profiles.PutProfile(ctx, created); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return profile.Profile{}, ErrAlreadyExists
		}
		return profile.Profile{}, fmt.Errorf("persist profile: %w", err)
	}
	return created, nil
}

// Get returns a profile with its skills and social links.
func (s *Service) Get(ctx context.Context, profileID string) (View, error) {
	p, err := s.load(ctx, profileID)
	if err != nil {
		return View{}, err
	}
	skills, err := s.skills.ListSkills(ctx, p.ID)
	if err != nil {
		return View{}, fmt.Errorf("load skills: %w", err)
	}
	links, err := s.socialLinks.ListSocialLinks(ctx, p.ID)
	if err != nil {
		return View{}, fmt.Errorf("load social links: %w", err)
	}
	return View{Profile: p, Skills: skills, SocialLinks: links}, nil
}

// GetByAccount returns the profile owned by an account.
func (s *Service) GetByAccount(ctx context.Context, accountID string) (profile.Profile, error) {
	p, err := s.profiles.GetProfileByAccount(ctx, strings.TrimSpace(accountID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return profile.Profile{}, ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("load profile by account: %w", err)
	}
	return p, nil
}

// Update edits a profile's attributes and rescores completion.
func (s *Service) Update(ctx context.Context, profileID string, input profile.UpdateInput) (profile.Profile, error) {
	p, err := s.load(ctx, profileID)
	if err != nil {
		return profile.Profile{}, err
	}
	updated, err := p.ApplyUpdate(input, s.clock)
	if err != nil {
		return profile.Profile{}, err
	}
	return s.rescoreAndPut(ctx, updated)
}

// SetPicture sets a profile's picture URL and rescores completion.
func (s *Service) SetPicture(ctx context.Context, profileID string, pictureURL string) (profile.Profile, error) {
	p, err := s.load(ctx, profileID)
	if err != nil {
		return profile.Profile{}, err
	}
	p.PictureURL = strings.TrimSpace(pictureURL)
	p.UpdatedAt = s.clock().UTC()
	return s.rescoreAndPut(ctx, p)
}

// AddSkill adds a skill to a profile and rescores completion. Skill names
// are unique per profile, compared case-insensitively.
func (s *Service) AddSkill(ctx context.Context, input profile.CreateSkillInput) (profile.Skill, error) {
	p, err := s.load(ctx, input.ProfileID)
	if err != nil {
		return profile.Skill{}, err
	}
	existing, err := s.skills.ListSkills(ctx, p.ID)
	if err != nil {
		return profile.Skill{}, fmt.Errorf("load skills: %w", err)
	}
	if profile.HasSkillNamed(existing, strings.TrimSpace(input.Name)) {
		return profile.Skill{}, ErrDuplicateSkill
	}

	created, err := profile.CreateSkill(input, s.clock, s.idGenerator)
	if err != nil {
		return profile.Skill{}, err
	}
	if err := s.skills.PutSkill(ctx, created); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return profile.Skill{}, ErrDuplicateSkill
		}
		return profile.Skill{}, fmt.Errorf("persist skill: %w", err)
	}

	if _, err := s.rescoreAndPut(ctx, p); err != nil {
		return profile.Skill{}, err
	}
	return created, nil
}

// UpdateSkill changes a skill's proficiency.
func (s *Service) UpdateSkill(ctx context.Context, profileID string, skillID string, proficiency profile.Proficiency) (profile.Skill, error) {
	if !proficiency.Known() {
		return profile.Skill{}, profile.ErrInvalidProficiency
	}
	p, err := s.load(ctx, profileID)
	if err != nil {
		return profile.Skill{}, err
	}
	existing, err := s.skills.ListSkills(ctx, p.ID)
	if err != nil {
		return profile.Skill{}, fmt.Errorf("load skills: %w", err)
	}
	for _, skill := range existing {
		if skill.ID != skillID {
			continue
		}
		skill.Proficiency = proficiency
		skill.UpdatedAt = s.clock().UTC()
		if err := s.skills.PutSkill(ctx, skill); err != nil {
			return profile.Skill{}, fmt.Errorf("persist skill: %w", err)
		}
		return skill, nil
	}
	return profile.Skill{}, ErrSkillNotFound
}

// RemoveSkill deletes a skill and rescores completion.
func (s *Service) RemoveSkill(ctx context.Context, profileID string, skillID string) error {
	p, err := s.load(ctx, profileID)
	if err != nil {
		return err
	}
	if err := s.skills.DeleteSkill(ctx, p.ID, skillID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrSkillNotFound
		}
		return fmt.Errorf("delete skill: %w", err)
	}
	_, err = s.rescoreAndPut(ctx, p)
	return err
}

// AddSocialLink attaches a social link to a profile.
func (s *Service) AddSocialLink(ctx context.Context, input profile.CreateSocialLinkInput) (profile.SocialLink, error) {
	p, err := s.load(ctx, input.ProfileID)
	if err != nil {
		return profile.SocialLink{}, err
	}
	created, err := profile.CreateSocialLink(input, s.clock, s.idGenerator)
	if err != nil {
		return profile.SocialLink{}, err
	}
	created.ProfileID = p.ID
	if err := s.socialLinks.PutSocialLink(ctx, created); err != nil {
		return profile.SocialLink{}, fmt.Errorf("persist social link: %w", err)
	}
	return created, nil
}

// RemoveSocialLink deletes a social link.
func (s *Service) RemoveSocialLink(ctx context.Context, profileID string, linkID string) error {
	p, err := s.load(ctx, profileID)
	if err != nil {
		return err
	}
	if err := s.socialLinks.DeleteSocialLink(ctx, p.ID, linkID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrSocialLinkNotFound
		}
		return fmt.Errorf("delete social link: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, profileID string) (profile.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, strings.TrimSpace(profileID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return profile.Profile{}, ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func (s *Service) rescoreAndPut(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	skills, err := s.skills.ListSkills(ctx, p.ID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("load skills: %w", err)
	}
	p = p.Rescore(skills)
	if err := s.profiles.PutProfile(ctx, p); err != nil {
		return profile.Profile{}, fmt.Errorf("persist profile: %w", err)
	}
	return p, nil
}
