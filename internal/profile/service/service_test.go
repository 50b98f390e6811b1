package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ojasvatstyagi/Collabro/internal/profile"
	"github.com/ojasvatstyagi/Collabro/internal/search"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
)

type fakeStore struct {
	profiles map[string]profile.Profile
	skills   map[string]profile.Skill
	links    map[string]profile.SocialLink
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[string]profile.Profile),
		skills:   make(map[string]profile.Skill),
		links:    make(map[string]profile.SocialLink),
	}
}

func (f *fakeStore) PutProfile(ctx context.Context, p profile.Profile) error {
	for _, existing := range f.profiles {
		if existing.AccountID == p.AccountID && existing.ID != p.ID {
			return storage.ErrAlreadyExists
		}
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeStore) GetProfile(ctx context.Context, profileID string) (profile.Profile, error) {
	p, ok := f.profiles[profileID]
	if !ok {
		return profile.Profile{}, storage.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) GetProfileByAccount(ctx context.Context, accountID string) (profile.Profile, error) {
	for _, p := range f.profiles {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return profile.Profile{}, storage.ErrNotFound
}

func (f *fakeStore) ListProfilesBySharedSkills(ctx context.Context, names []string, excludeID string, minShared int) ([]profile.Profile, error) {
	return nil, nil
}

func (f *fakeStore) ListProfilesWithSkillNotIn(ctx context.Context, names []string, excludeID string) ([]profile.Profile, error) {
	return nil, nil
}

func (f *fakeStore) SearchProfiles(ctx context.Context, filter search.ProfileFilter, pageSize int, pageToken string) (storage.ProfilePage, error) {
	return storage.ProfilePage{}, nil
}

func (f *fakeStore) PutSkill(ctx context.Context, s profile.Skill) error {
	f.skills[s.ID] = s
	return nil
}

func (f *fakeStore) DeleteSkill(ctx context.Context, profileID string, skillID string) error {
	s, ok := f.skills[skillID]
	if !ok || s.ProfileID != profileID {
		return storage.ErrNotFound
	}
	delete(f.skills, skillID)
	return nil
}

func (f *fakeStore) ListSkills(ctx context.Context, profileID string) ([]profile.Skill, error) {
	var skills []profile.Skill
	for _, s := range f.skills {
		if s.ProfileID == profileID {
			skills = append(skills, s)
		}
	}
	return skills, nil
}

func (f *fakeStore) PutSocialLink(ctx context.Context, link profile.SocialLink) error {
	f.links[link.ID] = link
	return nil
}

func (f *fakeStore) DeleteSocialLink(ctx context.Context, profileID string, linkID string) error {
	link, ok := f.links[linkID]
	if !ok || link.ProfileID != profileID {
		return storage.ErrNotFound
	}
	delete(f.links, linkID)
	return nil
}

func (f *fakeStore) ListSocialLinks(ctx context.Context, profileID string) ([]profile.SocialLink, error) {
	var links []profile.SocialLink
	for _, link := range f.links {
		if link.ProfileID == profileID {
			links = append(links, link)
		}
	}
	return links, nil
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	fake := newFakeStore()
	service := NewService(fake, fake, fake)
	service.clock = func() time.Time {
		return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	}
	counter := 0
	service.idGenerator = func() (string, error) {
		counter++
		return fmt.Sprintf("id-%02d", counter), nil
	}
	return service, fake
}

func TestCreateProfilePerAccount(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, profile.CreateProfileInput{AccountID: "account-1"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if created.FirstName != "New" || created.LastName != "User" {
		t.Fatalf("names = %q %q, want placeholders", created.FirstName, created.LastName)
	}
	if created.Complete {
		t.Fatal("fresh profile should not be complete")
	}

	if _, err := service.Create(ctx, profile.CreateProfileInput{AccountID: "account-1"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("second create err = %v, want ErrAlreadyExists", err)
	}
}

func TestUpdateRescoresCompletion(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, profile.CreateProfileInput{AccountID: "account-1"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	updated, err := service.Update(ctx, created.ID, profile.UpdateInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Bio:       "first programmer",
		Education: "home",
		Location:  "London",
		Phone:     "555-0100",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	// first 15 + last 15 + bio 10 + education 10 + location 10 + phone 10
	if updated.CompletionPercentage != 70 {
		t.Fatalf("completion = %d, want 70", updated.CompletionPercentage)
	}
	if updated.Complete {
		t.Fatal("profile at 70 should not be complete")
	}

	withPicture, err := service.SetPicture(ctx, created.ID, "https://cdn.example/a.png")
	if err != nil {
		t.Fatalf("set picture: %v", err)
	}
	if withPicture.CompletionPercentage != 85 || !withPicture.Complete {
		t.Fatalf("completion = %d complete = %v, want 85 and complete", withPicture.CompletionPercentage, withPicture.Complete)
	}
}

func TestAddSkillRescoresAndRejectsDuplicates(t *testing.T) {
	service, fake := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, profile.CreateProfileInput{AccountID: "account-1"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	if _, err := service.AddSkill(ctx, profile.CreateSkillInput{
		ProfileID:   created.ID,
		Name:        "Go",
		Proficiency: profile.ProficiencyExpert,
	}); err != nil {
		t.Fatalf("add skill: %v", err)
	}

	rescored := fake.profiles[created.ID]
	// placeholders 30 + skills 15
	if rescored.CompletionPercentage != 45 {
		t.Fatalf("completion = %d, want 45 after first skill", rescored.CompletionPercentage)
	}

	if _, err := service.AddSkill(ctx, profile.CreateSkillInput{
		ProfileID:   created.ID,
		Name:        "go",
		Proficiency: profile.ProficiencyBeginner,
	}); !errors.Is(err, ErrDuplicateSkill) {
		t.Fatalf("duplicate skill err = %v, want ErrDuplicateSkill", err)
	}
}

func TestRemoveSkillRescores(t *testing.T) {
	service, fake := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, profile.CreateProfileInput{AccountID: "account-1"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	added, err := service.AddSkill(ctx, profile.CreateSkillInput{
		ProfileID:   created.ID,
		Name:        "Go",
		Proficiency: profile.ProficiencyExpert,
	})
	if err != nil {
		t.Fatalf("add skill: %v", err)
	}

	if err := service.RemoveSkill(ctx, created.ID, added.ID); err != nil {
		t.Fatalf("remove skill: %v", err)
	}
	if got := fake.profiles[created.ID].CompletionPercentage; got != 30 {
		t.Fatalf("completion = %d, want 30 after removing the only skill", got)
	}
	if err := service.RemoveSkill(ctx, created.ID, added.ID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("second remove err = %v, want ErrSkillNotFound", err)
	}
}

func TestUpdateSkillProficiency(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, profile.CreateProfileInput{AccountID: "account-1"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	added, err := service.AddSkill(ctx, profile.CreateSkillInput{
		ProfileID:   created.ID,
		Name:        "Go",
		Proficiency: profile.ProficiencyBeginner,
	})
	if err != nil {
		t.Fatalf("add skill: %v", err)
	}

	updated, err := service.UpdateSkill(ctx, created.ID, added.ID, profile.ProficiencyExpert)
	if err != nil {
		t.Fatalf("update skill: %v", err)
	}
	if updated.Proficiency != profile.ProficiencyExpert {
		t.Fatalf("proficiency = %v, want expert", updated.Proficiency)
	}

	if _, err := service.UpdateSkill(ctx, created.ID, "missing", profile.ProficiencyExpert); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("missing skill err = %v, want ErrSkillNotFound", err)
	}
	if _, err := service.UpdateSkill(ctx, created.ID, added.ID, profile.Proficiency(99)); !errors.Is(err, profile.ErrInvalidProficiency) {
		t.Fatalf("invalid proficiency err = %v, want ErrInvalidProficiency", err)
	}
}

func TestSocialLinks(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, profile.CreateProfileInput{AccountID: "account-1"})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	link, err := service.AddSocialLink(ctx, profile.CreateSocialLinkInput{
		ProfileID: created.ID,
		Platform:  "github",
		URL:       "https://github.com/ada",
	})
	if err != nil {
		t.Fatalf("add social link: %v", err)
	}
	if link.Platform != "GITHUB" {
		t.Fatalf("platform = %q, want normalized GITHUB", link.Platform)
	}

	if _, err := service.AddSocialLink(ctx, profile.CreateSocialLinkInput{
		ProfileID: created.ID,
		Platform:  "myspace",
		URL:       "https://myspace.com/ada",
	}); !errors.Is(err, profile.ErrInvalidSocialPlatform) {
		t.Fatalf("invalid platform err = %v, want ErrInvalidSocialPlatform", err)
	}

	view, err := service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if len(view.SocialLinks) != 1 {
		t.Fatalf("social links = %d, want 1", len(view.SocialLinks))
	}

	if err := service.RemoveSocialLink(ctx, created.ID, link.ID); err != nil {
		t.Fatalf("remove social link: %v", err)
	}
	if err := service.RemoveSocialLink(ctx, created.ID, link.ID); !errors.Is(err, ErrSocialLinkNotFound) {
		t.Fatalf("second remove err = %v, want ErrSocialLinkNotFound", err)
	}
}
