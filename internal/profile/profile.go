// Package profile provides collaboration profile and skill management.
package profile

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
	"github.com/ojasvatstyagi/Collabro/internal/platform/id"
)

const (
	maxSkillNameLength = 50
	maxBioLength       = 1000
	maxFieldLength     = 255
)

var (
	// ErrEmptyProfileID indicates a missing profile ID.
	ErrEmptyProfileID = apperrors.New(apperrors.CodeProfileEmptyID, "profile id is required")
	// ErrEmptyAccountID indicates a missing owning account reference.
	ErrEmptyAccountID = apperrors.New(apperrors.CodeProfileEmptyAccountID, "account id is required")
	// ErrFieldTooLong indicates a profile attribute exceeds its length limit.
	ErrFieldTooLong = apperrors.New(apperrors.CodeProfileFieldTooLong, "profile field exceeds length limit")
	// ErrEmptySkillName indicates a missing skill name.
	ErrEmptySkillName = apperrors.New(apperrors.CodeSkillEmptyName, "skill name is required")
	// ErrInvalidProficiency indicates an unknown proficiency level.
	ErrInvalidProficiency = apperrors.New(apperrors.CodeSkillInvalidProficiency, "proficiency is invalid")
	// ErrEmptySocialURL indicates a missing social link URL.
	ErrEmptySocialURL = apperrors.New(apperrors.CodeSocialLinkEmptyURL, "social link url is required")
	// ErrInvalidSocialPlatform indicates an unknown social platform.
	ErrInvalidSocialPlatform = apperrors.New(apperrors.CodeSocialLinkInvalidPlatform, "social platform is invalid")
)

// Proficiency is the ordered skill-strength enumeration.
type Proficiency int

const (
	// ProficiencyUnspecified represents an invalid proficiency level.
	ProficiencyUnspecified Proficiency = iota
	// ProficiencyBeginner is the lowest proficiency level.
	ProficiencyBeginner
	// ProficiencyIntermediate sits between beginner and advanced.
	ProficiencyIntermediate
	// ProficiencyAdvanced sits between intermediate and expert.
	ProficiencyAdvanced
	// ProficiencyExpert is the highest proficiency level.
	ProficiencyExpert
)

// AtLeast reports whether p meets or exceeds the given minimum level.
func (p Proficiency) AtLeast(min Proficiency) bool {
	return p >= min
}

// Known reports whether p is a valid proficiency level.
func (p Proficiency) Known() bool {
	return p >= ProficiencyBeginner && p <= ProficiencyExpert
}

// ProficiencyLabel returns the string label for a proficiency level.
func ProficiencyLabel(p Proficiency) string {
	switch p {
	case ProficiencyBeginner:
		return "BEGINNER"
	case ProficiencyIntermediate:
		return "INTERMEDIATE"
	case ProficiencyAdvanced:
		return "ADVANCED"
	case ProficiencyExpert:
		return "EXPERT"
	default:
		return "UNSPECIFIED"
	}
}

// ProficiencyFromLabel converts a proficiency label to its level.
func ProficiencyFromLabel(label string) Proficiency {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "BEGINNER":
		return ProficiencyBeginner
	case "INTERMEDIATE":
		return ProficiencyIntermediate
	case "ADVANCED":
		return ProficiencyAdvanced
	case "EXPERT":
		return ProficiencyExpert
	default:
		return ProficiencyUnspecified
	}
}

// Profile represents a member's collaboration identity, distinct from the
// owning account.
type Profile struct {
	ID                   string
	AccountID            string
	FirstName            string
	LastName             string
	Bio                  string
	Education            string
	Location             string
	Phone                string
	PictureURL           string
	Complete             bool
	CompletionPercentage int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Skill is a named capability exclusively owned by one profile.
type Skill struct {
	ID          string
	ProfileID   string
	Name        string
	Proficiency Proficiency
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SocialLink points to a profile's presence on an external platform.
type SocialLink struct {
	ID        string
	ProfileID string
	Platform  string
	URL       string
	CreatedAt time.Time
}

// socialPlatforms is the set of supported social link platforms.
var socialPlatforms = map[string]struct{}{
	"LINKEDIN": {},
	"GITHUB":   {},
	"TWITTER":  {},
	"WEBSITE":  {},
	"OTHER":    {},
}

// CreateSocialLinkInput describes the metadata needed to create a social link.
type CreateSocialLinkInput struct {
	ProfileID string
	Platform  string
	URL       string
}

// CreateSocialLink creates a social link with a generated ID. The platform
// label is normalized to upper case.
func CreateSocialLink(input CreateSocialLinkInput, now func() time.Time, idGenerator func() (string, error)) (SocialLink, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.ProfileID = strings.TrimSpace(input.ProfileID)
	if input.ProfileID == "" {
		return SocialLink{}, ErrEmptyProfileID
	}
	input.URL = strings.TrimSpace(input.URL)
	if input.URL == "" {
		return SocialLink{}, ErrEmptySocialURL
	}
	platform := strings.ToUpper(strings.TrimSpace(input.Platform))
	if _, ok := socialPlatforms[platform]; !ok {
		return SocialLink{}, ErrInvalidSocialPlatform
	}

	linkID, err := idGenerator()
	if err != nil {
		return SocialLink{}, fmt.Errorf("generate social link id: %w", err)
	}

	return SocialLink{
		ID:        linkID,
		ProfileID: input.ProfileID,
		Platform:  platform,
		URL:       input.URL,
		CreatedAt: now().UTC(),
	}, nil
}

// CreateProfileInput describes the metadata needed to create a profile.
type CreateProfileInput struct {
	AccountID string
	FirstName string
	LastName  string
}

// CreateProfile creates a fresh profile for an account with zero skills.
// Placeholder names keep the record renderable before the first edit.
func CreateProfile(input CreateProfileInput, now func() time.Time, idGenerator func() (string, error)) (Profile, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.AccountID = strings.TrimSpace(input.AccountID)
	if input.AccountID == "" {
		return Profile{}, ErrEmptyAccountID
	}
	input.FirstName = strings.TrimSpace(input.FirstName)
	if input.FirstName == "" {
		input.FirstName = "New"
	}
	input.LastName = strings.TrimSpace(input.LastName)
	if input.LastName == "" {
		input.LastName = "User"
	}

	profileID, err := idGenerator()
	if err != nil {
		return Profile{}, fmt.Errorf("generate profile id: %w", err)
	}

	createdAt := now().UTC()
	created := Profile{
		ID:        profileID,
		AccountID: input.AccountID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	completion := ScoreCompletion(created, nil)
	created.CompletionPercentage = completion.Percentage
	created.Complete = completion.Complete
	return created, nil
}

// UpdateInput carries the editable profile attributes.
type UpdateInput struct {
	FirstName string
	LastName  string
	Bio       string
	Education string
	Location  string
	Phone     string
}

// ApplyUpdate validates and applies an edit to the profile's scored fields.
// The caller is responsible for rescoring completion afterwards.
func (p Profile) ApplyUpdate(input UpdateInput, now func() time.Time) (Profile, error) {
	if now == nil {
		now = time.Now
	}

	input.Bio = strings.TrimSpace(input.Bio)
	if len(input.Bio) > maxBioLength {
		return Profile{}, ErrFieldTooLong
	}
	for _, field := range []string{input.FirstName, input.LastName, input.Education, input.Location, input.Phone} {
		if len(strings.TrimSpace(field)) > maxFieldLength {
			return Profile{}, ErrFieldTooLong
		}
	}

	p.FirstName = strings.TrimSpace(input.FirstName)
	p.LastName = strings.TrimSpace(input.LastName)
	p.Bio = input.Bio
	p.Education = strings.TrimSpace(input.Education)
	p.Location = strings.TrimSpace(input.Location)
	p.Phone = strings.TrimSpace(input.Phone)
	p.UpdatedAt = now().UTC()
	return p, nil
}

// CreateSkillInput describes the metadata needed to create a skill.
type CreateSkillInput struct {
	ProfileID   string
	Name        string
	Proficiency Proficiency
}

// CreateSkill creates a skill with a generated ID and timestamps.
func CreateSkill(input CreateSkillInput, now func() time.Time, idGenerator func() (string, error)) (Skill, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.ProfileID = strings.TrimSpace(input.ProfileID)
	if input.ProfileID == "" {
		return Skill{}, ErrEmptyProfileID
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return Skill{}, ErrEmptySkillName
	}
	if len(input.Name) > maxSkillNameLength {
		return Skill{}, ErrFieldTooLong
	}
	if !input.Proficiency.Known() {
		return Skill{}, ErrInvalidProficiency
	}

	skillID, err := idGenerator()
	if err != nil {
		return Skill{}, fmt.Errorf("generate skill id: %w", err)
	}

	createdAt := now().UTC()
	return Skill{
		ID:          skillID,
		ProfileID:   input.ProfileID,
		Name:        input.Name,
		Proficiency: input.Proficiency,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// SkillNames returns the skill names in declaration order.
func SkillNames(skills []Skill) []string {
	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		names = append(names, skill.Name)
	}
	return names
}

// HasSkillNamed reports whether any skill carries the given name,
// compared case-insensitively. Skill names are unique per profile under
// this comparison.
func HasSkillNamed(skills []Skill, name string) bool {
	for _, skill := range skills {
		if strings.EqualFold(skill.Name, name) {
			return true
		}
	}
	return false
}
