package collab

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	apperrors "github.com/ojasvatstyagi/Collabro/internal/platform/errors"
	"github.com/ojasvatstyagi/Collabro/internal/profile"
	"github.com/ojasvatstyagi/Collabro/internal/project"
	"github.com/ojasvatstyagi/Collabro/internal/request"
	"github.com/ojasvatstyagi/Collabro/internal/search"
	"github.com/ojasvatstyagi/Collabro/internal/storage"
	"github.com/ojasvatstyagi/Collabro/internal/team"
)

type fakeStores struct {
	profiles map[string]profile.Profile
	projects map[string]project.Project
	teams    map[string]team.Team
	members  map[string]map[string]bool
	requests map[string]request.Request
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		profiles: make(map[string]profile.Profile),
		projects: make(map[string]project.Project),
		teams:    make(map[string]team.Team),
		members:  make(map[string]map[string]bool),
		requests: make(map[string]request.Request),
	}
}

func (f *fakeStores) PutProfile(ctx context.Context, p profile.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeStores) GetProfile(ctx context.Context, profileID string) (profile.Profile, error) {
	p, ok := f.profiles[profileID]
	if !ok {
		return profile.Profile{}, storage.ErrNotFound
	}
	return p, nil
}

func (f *fakeStores) GetProfileByAccount(ctx context.Context, accountID string) (profile.Profile, error) {
	return profile.Profile{}, storage.ErrNotFound
}

func (f *fakeStores) ListProfilesBySharedSkills(ctx context.Context, names []string, excludeID string, minShared int) ([]profile.Profile, error) {
	return nil, nil
}

func (f *fakeStores) ListProfilesWithSkillNotIn(ctx context.Context, names []string, excludeID string) ([]profile.Profile, error) {
	return nil, nil
}

func (f *fakeStores) SearchProfiles(ctx context.Context, filter search.ProfileFilter, pageSize int, pageToken string) (storage.ProfilePage, error) {
	return storage.ProfilePage{}, nil
}

func (f *fakeStores) PutProject(ctx context.Context, p project.Project) error {
	f.projects[p.ID] = p
	return nil
}

func (f *fakeStores) GetProject(ctx context.Context, projectID string) (project.Project, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return project.Project{}, storage.ErrNotFound
	}
	return p, nil
}

func (f *fakeStores) ListProjectsByCreator(ctx context.Context, creatorID string) ([]project.Project, error) {
	return nil, nil
}

func (f *fakeStores) SearchProjects(ctx context.Context, filter search.ProjectFilter, pageSize int, pageToken string) (storage.ProjectPage, error) {
	return storage.ProjectPage{}, nil
}

func (f *fakeStores) GetTeamByProject(ctx context.Context, projectID string) (team.Team, error) {
	t, ok := f.teams[projectID]
	if !ok {
		return team.Team{}, storage.ErrNotFound
	}
	return t, nil
}

func (f *fakeStores) ListTeamMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	var members []team.Member
	ids := make([]string, 0, len(f.members[teamID]))
	for id := range f.members[teamID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		members = append(members, team.Member{TeamID: teamID, ProfileID: id})
	}
	return members, nil
}

func (f *fakeStores) IsTeamMember(ctx context.Context, projectID string, profileID string) (bool, error) {
	t, ok := f.teams[projectID]
	if !ok {
		return false, nil
	}
	return f.members[t.ID][profileID], nil
}

func (f *fakeStores) CreateRequest(ctx context.Context, r request.Request) error {
	for _, existing := range f.requests {
		if existing.ProjectID == r.ProjectID && existing.RequesterID == r.RequesterID && existing.IsPending() {
			return storage.ErrAlreadyExists
		}
	}
	f.requests[r.ID] = r
	return nil
}

func (f *fakeStores) GetRequest(ctx context.Context, requestID string) (request.Request, error) {
	r, ok := f.requests[requestID]
	if !ok {
		return request.Request{}, storage.ErrNotFound
	}
	return r, nil
}

func (f *fakeStores) FindPendingRequest(ctx context.Context, projectID string, requesterID string) (request.Request, error) {
	for _, r := range f.requests {
		if r.ProjectID == projectID && r.RequesterID == requesterID && r.IsPending() {
			return r, nil
		}
	}
	return request.Request{}, storage.ErrNotFound
}

func (f *fakeStores) ApproveRequest(ctx context.Context, requestID string, candidate team.Team, now time.Time) (request.Request, error) {
	r, ok := f.requests[requestID]
	if !ok {
		return request.Request{}, storage.ErrNotFound
	}
	if !r.IsPending() {
		return request.Request{}, storage.ErrInvalidState
	}
	r.Status = request.StatusApproved
	r.UpdatedAt = now
	f.requests[requestID] = r

	formed, ok := f.teams[r.ProjectID]
	if !ok {
		formed = candidate
		f.teams[r.ProjectID] = formed
		f.members[formed.ID] = make(map[string]bool)
	}
	f.members[formed.ID][r.RequesterID] = true

	p := f.projects[r.ProjectID]
	if p.TeamID == "" {
		p.TeamID = formed.ID
		f.projects[r.ProjectID] = p
	}
	return r, nil
}

func (f *fakeStores) RejectRequest(ctx context.Context, requestID string, reason string, now time.Time) (request.Request, error) {
	r, ok := f.requests[requestID]
	if !ok {
		return request.Request{}, storage.ErrNotFound
	}
	if !r.IsPending() {
		return request.Request{}, storage.ErrInvalidState
	}
	r.Status = request.StatusRejected
	r.RejectionReason = reason
	r.UpdatedAt = now
	f.requests[requestID] = r
	return r, nil
}

func (f *fakeStores) DeleteRequestIfPending(ctx context.Context, requestID string) error {
	r, ok := f.requests[requestID]
	if !ok {
		return storage.ErrNotFound
	}
	if !r.IsPending() {
		return storage.ErrInvalidState
	}
	delete(f.requests, requestID)
	return nil
}

func (f *fakeStores) listRequests(match func(request.Request) bool, status request.Status) []request.Request {
	var requests []request.Request
	for _, r := range f.requests {
		if !match(r) {
			continue
		}
		if status != request.StatusUnspecified && r.Status != status {
			continue
		}
		requests = append(requests, r)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests
}

func (f *fakeStores) ListReceived(ctx context.Context, ownerID string, status request.Status) ([]request.Request, error) {
	return f.listRequests(func(r request.Request) bool {
		return f.projects[r.ProjectID].CreatorID == ownerID
	}, status), nil
}

func (f *fakeStores) ListSent(ctx context.Context, requesterID string, status request.Status) ([]request.Request, error) {
	return f.listRequests(func(r request.Request) bool {
		return r.RequesterID == requesterID
	}, status), nil
}

func (f *fakeStores) CountReceived(ctx context.Context, ownerID string, status request.Status) (int64, error) {
	received, _ := f.ListReceived(ctx, ownerID, status)
	return int64(len(received)), nil
}

func (f *fakeStores) CountSent(ctx context.Context, requesterID string, status request.Status) (int64, error) {
	sent, _ := f.ListSent(ctx, requesterID, status)
	return int64(len(sent)), nil
}

func newTestService(t *testing.T) (*Service, *fakeStores) {
	t.Helper()
	fake := newFakeStores()
	service := NewService(Stores{
		Profiles: fake,
		Projects: fake,
		Teams:    fake,
		Requests: fake,
	})
	service.clock = func() time.Time {
		return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	}
	counter := 0
	service.idGenerator = func() (string, error) {
		counter++
		return string(rune('a'+counter-1)) + "-id", nil
	}
	return service, fake
}

func seedOwnerAndProject(fake *fakeStores) {
	fake.profiles["owner"] = profile.Profile{ID: "owner", AccountID: "account-owner"}
	fake.profiles["requester"] = profile.Profile{ID: "requester", AccountID: "account-requester"}
	fake.projects["project-1"] = project.Project{
		ID:        "project-1",
		CreatorID: "owner",
		Title:     "Realtime Whiteboard",
		Status:    project.StatusActive,
	}
}

func TestCreateRequest(t *testing.T) {
	service, fake := newTestService(t)
	seedOwnerAndProject(fake)

	created, err := service.Create(context.Background(), CreateInput{
		ProjectID:   "project-1",
		RequesterID: "requester",
		Message:     "let me help",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if !created.IsPending() {
		t.Fatalf("status = %v, want pending", created.Status)
	}
	if _, ok := fake.requests[created.ID]; !ok {
		t.Fatal("expected request to persist")
	}
}

func TestCreateRequestPreconditions(t *testing.T) {
	service, fake := newTestService(t)
	seedOwnerAndProject(fake)
	ctx := context.Background()

	if _, err := service.Create(ctx, CreateInput{ProjectID: "missing", RequesterID: "requester"}); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("unknown project err = %v, want ErrProjectNotFound", err)
	}
	if _, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "ghost"}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("unknown requester err = %v, want ErrProfileNotFound", err)
	}
	if _, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "owner"}); !errors.Is(err, ErrOwnProject) {
		t.Fatalf("own project err = %v, want ErrOwnProject", err)
	}

	if _, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"}); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("duplicate err = %v, want ErrDuplicateRequest", err)
	}
}

func TestCreateRequestRejectsExistingMember(t *testing.T) {
	service, fake := newTestService(t)
	seedOwnerAndProject(fake)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if _, err := service.Approve(ctx, created.ID, "owner"); err != nil {
		t.Fatalf("approve request: %v", err)
	}

	if _, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"}); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("member err = %v, want ErrAlreadyMember", err)
	}
}

func TestApproveFormsTeamAndMembership(t *testing.T) {
	service, fake := newTestService(t)
	seedOwnerAndProject(fake)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	approved, err := service.Approve(ctx, created.ID, "owner")
	if err != nil {
		t.Fatalf("approve request: %v", err)
	}
	if approved.Status != request.StatusApproved {
		t.Fatalf("status = %v, want approved", approved.Status)
	}

	formed, ok := fake.teams["project-1"]
	if !ok {
		t.Fatal("expected a team for the project")
	}
	if formed.Name != "Realtime Whiteboard Team" {
		t.Fatalf("team name = %q, want derived from project title", formed.Name)
	}
	if !fake.members[formed.ID]["requester"] {
		t.Fatal("expected requester to join the team")
	}
	if fake.projects["project-1"].TeamID != formed.ID {
		t.Fatal("expected project to reference the formed team")
	}
}

func TestApproveAuthorization(t *testing.T) {
	service, fake := newTestService(t)
	seedOwnerAndProject(fake)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	_, err = service.Approve(ctx, created.ID, "requester")
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("non-owner approve err = %v, want ErrAccessDenied", err)
	}
	var denied *apperrors.Error
	if !errors.As(err, &denied) || denied.Metadata["request_id"] != created.ID {
		t.Fatalf("denial metadata = %+v, want the request id", denied)
	}
	if _, err := service.Approve(ctx, "missing", "owner"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("missing approve err = %v, want ErrRequestNotFound", err)
	}

	if _, err := service.Approve(ctx, created.ID, "owner"); err != nil {
		t.Fatalf("approve request: %v", err)
	}
	if _, err := service.Approve(ctx, created.ID, "owner"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("second approve err = %v, want ErrNotPending", err)
	}
}

func TestRejectKeepsRecordWithReason(t *testing.T) {
	service, fake := newTestService(t)
	seedOwnerAndProject(fake)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	rejected, err := service.Reject(ctx, created.ID, "owner", " team is full ")
	if err != nil {
		t.Fatalf("reject request: %v", err)
	}
	if rejected.Status != request.StatusRejected {
		t.Fatalf("status = %v, want rejected", rejected.Status)
	}
	if rejected.RejectionReason != "team is full" {
		t.Fatalf("reason = %q, want trimmed reason", rejected.RejectionReason)
	}
	if _, ok := fake.teams["project-1"]; ok {
		t.Fatal("expected no team after a rejection")
	}
}

func TestCancelDeletesPendingRequest(t *testing.T) {
	service, fake := newTestService(t)
	seedOwnerAndProject(fake)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	if err := service.Cancel(ctx, created.ID, "owner"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("owner cancel err = %v, want ErrAccessDenied", err)
	}
	if err := service.Cancel(ctx, created.ID, "requester"); err != nil {
		t.Fatalf("cancel request: %v", err)
	}
	if _, ok := fake.requests[created.ID]; ok {
		t.Fatal("expected cancelled request to be deleted")
	}

	decided, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"})
	if err != nil {
		t.Fatalf("recreate request: %v", err)
	}
	if _, err := service.Reject(ctx, decided.ID, "owner", ""); err != nil {
		t.Fatalf("reject request: %v", err)
	}
	if err := service.Cancel(ctx, decided.ID, "requester"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("decided cancel err = %v, want ErrNotPending", err)
	}
}

func TestGetByIDVisibility(t *testing.T) {
	service, fake := newTestService(t)
	seedOwnerAndProject(fake)
	fake.profiles["stranger"] = profile.Profile{ID: "stranger"}
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	if _, err := service.GetByID(ctx, created.ID, "requester"); err != nil {
		t.Fatalf("requester get: %v", err)
	}
	if _, err := service.GetByID(ctx, created.ID, "owner"); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := service.GetByID(ctx, created.ID, "stranger"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("stranger get err = %v, want ErrAccessDenied", err)
	}
	if _, err := service.GetByID(ctx, "missing", "owner"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("missing get err = %v, want ErrRequestNotFound", err)
	}
}

func TestStats(t *testing.T) {
	service, fake := newTestService(t)
	seedOwnerAndProject(fake)
	fake.profiles["other"] = profile.Profile{ID: "other"}
	ctx := context.Background()

	first, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "requester"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := service.Create(ctx, CreateInput{ProjectID: "project-1", RequesterID: "other"}); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := service.Reject(ctx, first.ID, "owner", "no"); err != nil {
		t.Fatalf("reject first: %v", err)
	}

	stats, err := service.Stats(ctx, "owner")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalReceived != 2 || stats.PendingReceived != 1 || stats.RejectedReceived != 1 || stats.ApprovedReceived != 0 {
		t.Fatalf("received stats = %+v, want 2 total, 1 pending, 1 rejected", stats)
	}
	if stats.TotalSent != 0 || stats.PendingSent != 0 {
		t.Fatalf("sent stats = %+v, want none for owner", stats)
	}

	requesterStats, err := service.Stats(ctx, "requester")
	if err != nil {
		t.Fatalf("requester stats: %v", err)
	}
	if requesterStats.TotalSent != 1 || requesterStats.PendingSent != 0 {
		t.Fatalf("requester stats = %+v, want 1 sent, none pending", requesterStats)
	}
}
