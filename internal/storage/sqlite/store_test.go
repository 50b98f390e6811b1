package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ojasvatstyagi/Collabro/internal/profile"
	"github.com/ojasvatstyagi/Collabro/internal/project"
	"github.com/ojasvatstyagi/Collabro/internal/search"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "collabro.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func testTime() time.Time {
	return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
}

func seedProfile(t *testing.T, store *Store, profileID string) profile.Profile {
	t.Helper()
	p := profile.Profile{
		ID:        profileID,
		AccountID: "account-" + profileID,
		FirstName: "Test",
		LastName:  "User",
		CreatedAt: testTime(),
		UpdatedAt: testTime(),
	}
	if err := store.PutProfile(context.Background(), p); err != nil {
		t.Fatalf("seed profile %s: %v", profileID, err)
	}
	return p
}

func seedSkill(t *testing.T, store *Store, skillID, profileID, name string, proficiency profile.Proficiency) {
	t.Helper()
	err := store.PutSkill(context.Background(), profile.Skill{
		ID:          skillID,
		ProfileID:   profileID,
		Name:        name,
		Proficiency: proficiency,
		CreatedAt:   testTime(),
		UpdatedAt:   testTime(),
	})
	if err != nil {
		t.Fatalf("seed skill %s: %v", skillID, err)
	}
}

func seedProject(t *testing.T, store *Store, projectID, creatorID string) project.Project {
	t.Helper()
	p := project.Project{
		ID:        projectID,
		CreatorID: creatorID,
		Title:     "Project " + projectID,
		Status:    project.StatusActive,
		CreatedAt: testTime(),
		UpdatedAt: testTime(),
	}
	if err := store.PutProject(context.Background(), p); err != nil {
		t.Fatalf("seed project %s: %v", projectID, err)
	}
	return p
}

func TestOpenConfiguresConnection(t *testing.T) {
	store := newTestStore(t)

	var journalMode string
	if err := store.sqlDB.QueryRow(`PRAGMA journal_mode`).Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", journalMode)
	}

	var foreignKeys int
	if err := store.sqlDB.QueryRow(`PRAGMA foreign_keys`).Scan(&foreignKeys); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if foreignKeys != 1 {
		t.Fatalf("foreign_keys = %d, want 1", foreignKeys)
	}

	var busyTimeout int
	if err := store.sqlDB.QueryRow(`PRAGMA busy_timeout`).Scan(&busyTimeout); err != nil {
		t.Fatalf("query busy_timeout: %v", err)
	}
	if busyTimeout != 5000 {
		t.Fatalf("busy_timeout = %d, want 5000", busyTimeout)
	}
}

func TestPutGetProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := profile.Profile{
		ID:                   "profile-1",
		AccountID:            "account-1",
		FirstName:            "Ada",
		LastName:             "Lovelace",
		Bio:                  "first programmer",
		Education:            "MIT",
		Location:             "Boston",
		Phone:                "555-0100",
		PictureURL:           "https://cdn.example/p.png",
		Complete:             true,
		CompletionPercentage: 100,
		CreatedAt:            testTime(),
		UpdatedAt:            testTime(),
	}
	if err := store.PutProfile(ctx, want); err != nil {
		t.Fatalf("put profile: %v", err)
	}

	got, err := store.GetProfile(ctx, "profile-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got != want {
		t.Fatalf("profile = %+v, want %+v", got, want)
	}

	byAccount, err := store.GetProfileByAccount(ctx, "account-1")
	if err != nil {
		t.Fatalf("get profile by account: %v", err)
	}
	if byAccount.ID != "profile-1" {
		t.Fatalf("profile by account id = %q, want profile-1", byAccount.ID)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetProfile(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := store.GetProfileByAccount(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPutProfileDuplicateAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedProfile(t, store, "profile-1")

	err := store.PutProfile(ctx, profile.Profile{
		ID:        "profile-2",
		AccountID: "account-profile-1",
		CreatedAt: testTime(),
		UpdatedAt: testTime(),
	})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestPutSkillRejectsDuplicateNamePerProfile(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, "profile-1")
	seedSkill(t, store, "skill-1", "profile-1", "Go", profile.ProficiencyExpert)

	err := store.PutSkill(context.Background(), profile.Skill{
		ID:          "skill-2",
		ProfileID:   "profile-1",
		Name:        "go",
		Proficiency: profile.ProficiencyBeginner,
		CreatedAt:   testTime(),
		UpdatedAt:   testTime(),
	})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists for case-insensitive duplicate", err)
	}
}

func TestDeleteSkillScopedToProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedProfile(t, store, "profile-1")
	seedProfile(t, store, "profile-2")
	seedSkill(t, store, "skill-1", "profile-1", "Go", profile.ProficiencyExpert)

	if err := store.DeleteSkill(ctx, "profile-2", "skill-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("cross-profile delete err = %v, want ErrNotFound", err)
	}
	if err := store.DeleteSkill(ctx, "profile-1", "skill-1"); err != nil {
		t.Fatalf("delete skill: %v", err)
	}
	skills, err := store.ListSkills(ctx, "profile-1")
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}
	if len(skills) != 0 {
		t.Fatalf("skills = %d, want none after delete", len(skills))
	}
}

func TestListProfilesBySharedSkills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedProfile(t, store, "subject")
	seedProfile(t, store, "match")
	seedProfile(t, store, "partial")
	names := []string{"Go", "SQL", "Docker"}
	for i, name := range names {
		seedSkill(t, store, "subject-"+name, "subject", name, profile.ProficiencyExpert)
		seedSkill(t, store, "match-"+name, "match", name, profile.ProficiencyBeginner)
		if i < 2 {
			seedSkill(t, store, "partial-"+name, "partial", name, profile.ProficiencyBeginner)
		}
	}

	got, err := store.ListProfilesBySharedSkills(ctx, names, "subject", 3)
	if err != nil {
		t.Fatalf("list profiles by shared skills: %v", err)
	}
	if len(got) != 1 || got[0].ID != "match" {
		t.Fatalf("profiles = %+v, want only match", got)
	}

	atTwo, err := store.ListProfilesBySharedSkills(ctx, names, "subject", 2)
	if err != nil {
		t.Fatalf("list profiles by shared skills: %v", err)
	}
	if len(atTwo) != 2 {
		t.Fatalf("profiles = %d, want match and partial at threshold 2", len(atTwo))
	}
}

func TestListProfilesWithSkillNotIn(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedProfile(t, store, "subject")
	seedProfile(t, store, "overlap")
	seedProfile(t, store, "fresh")
	seedSkill(t, store, "s1", "subject", "Go", profile.ProficiencyExpert)
	seedSkill(t, store, "s2", "overlap", "Go", profile.ProficiencyBeginner)
	seedSkill(t, store, "s3", "fresh", "Rust", profile.ProficiencyAdvanced)

	got, err := store.ListProfilesWithSkillNotIn(ctx, []string{"Go"}, "subject")
	if err != nil {
		t.Fatalf("list profiles with skill not in: %v", err)
	}
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("profiles = %+v, want only fresh", got)
	}
}

func TestSearchProfilesFiltersAndPaginates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		p := seedProfile(t, store, id)
		p.Education = "MIT Computer Science"
		if err := store.PutProfile(ctx, p); err != nil {
			t.Fatalf("update profile %s: %v", id, err)
		}
		seedSkill(t, store, "skill-"+id, id, "Go", profile.ProficiencyAdvanced)
	}
	outsider := seedProfile(t, store, "z")
	outsider.Education = "Stanford"
	if err := store.PutProfile(ctx, outsider); err != nil {
		t.Fatalf("update outsider: %v", err)
	}

	filter := search.CompileProfileCriteria(search.ProfileCriteria{
		Skills:    []string{"go"},
		Education: "mit",
	})

	first, err := store.SearchProfiles(ctx, filter, 2, "")
	if err != nil {
		t.Fatalf("search profiles: %v", err)
	}
	if len(first.Profiles) != 2 || first.NextPageToken == "" {
		t.Fatalf("first page = %d profiles token %q, want 2 with token", len(first.Profiles), first.NextPageToken)
	}

	second, err := store.SearchProfiles(ctx, filter, 2, first.NextPageToken)
	if err != nil {
		t.Fatalf("search profiles page two: %v", err)
	}
	if len(second.Profiles) != 1 || second.NextPageToken != "" {
		t.Fatalf("second page = %d profiles token %q, want final single profile", len(second.Profiles), second.NextPageToken)
	}
}

func TestPutGetProjectRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedProfile(t, store, "creator")

	want := project.Project{
		ID:           "project-1",
		CreatorID:    "creator",
		Title:        "Realtime Whiteboard",
		Description:  "shared canvas",
		Category:     "web",
		Level:        project.LevelIntermediate,
		Technologies: []string{"Go", "React"},
		Status:       project.StatusActive,
		CreatedAt:    testTime(),
		UpdatedAt:    testTime(),
	}
	if err := store.PutProject(ctx, want); err != nil {
		t.Fatalf("put project: %v", err)
	}

	got, err := store.GetProject(ctx, "project-1")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got.Title != want.Title || got.Level != want.Level || got.Status != want.Status {
		t.Fatalf("project = %+v, want %+v", got, want)
	}
	if len(got.Technologies) != 2 || got.Technologies[0] != "Go" {
		t.Fatalf("technologies = %v, want ordered round trip", got.Technologies)
	}
	if got.TeamID != "" {
		t.Fatalf("team id = %q, want empty before approval", got.TeamID)
	}
}

func TestSearchProjectsFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedProfile(t, store, "creator")

	match := project.Project{
		ID:           "project-1",
		CreatorID:    "creator",
		Title:        "Realtime Whiteboard",
		Category:     "web",
		Level:        project.LevelIntermediate,
		Technologies: []string{"Go"},
		Status:       project.StatusActive,
		CreatedAt:    testTime(),
		UpdatedAt:    testTime(),
	}
	other := match
	other.ID = "project-2"
	other.Title = "Chess Engine"
	other.Category = "games"
	for _, p := range []project.Project{match, other} {
		if err := store.PutProject(ctx, p); err != nil {
			t.Fatalf("put project %s: %v", p.ID, err)
		}
	}

	filter := search.CompileProjectCriteria(search.ProjectCriteria{
		Text:         "whiteboard",
		Category:     "Web",
		Technologies: []string{"go"},
	})
	page, err := store.SearchProjects(ctx, filter, 10, "")
	if err != nil {
		t.Fatalf("search projects: %v", err)
	}
	if len(page.Projects) != 1 || page.Projects[0].ID != "project-1" {
		t.Fatalf("projects = %+v, want only project-1", page.Projects)
	}
}

func TestListProjectsByCreator(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedProfile(t, store, "creator")
	seedProfile(t, store, "other")
	seedProject(t, store, "project-1", "creator")
	seedProject(t, store, "project-2", "creator")
	seedProject(t, store, "project-3", "other")

	got, err := store.ListProjectsByCreator(ctx, "creator")
	if err != nil {
		t.Fatalf("list projects by creator: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("projects = %d, want 2", len(got))
	}
}
