package team

import (
	"errors"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
}

func TestCreateTeamDerivesName(t *testing.T) {
	created, err := CreateTeam(CreateTeamInput{
		ProjectID:    "project-1",
		ProjectTitle: " Realtime Whiteboard ",
		CreatedBy:    "profile-1",
	}, fixedClock, func() (string, error) { return "team-1", nil })
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.Name != "Realtime Whiteboard Team" {
		t.Fatalf("name = %q, want deterministic project-title name", created.Name)
	}
	if created.ID != "team-1" || created.ProjectID != "project-1" {
		t.Fatalf("unexpected identifiers: %+v", created)
	}
	if !created.CreatedAt.Equal(fixedClock()) {
		t.Fatal("expected clock-driven timestamp")
	}
}

func TestCreateTeamRequiresProject(t *testing.T) {
	_, err := CreateTeam(CreateTeamInput{ProjectTitle: "X"}, fixedClock, nil)
	if !errors.Is(err, ErrEmptyProjectID) {
		t.Fatalf("err = %v, want ErrEmptyProjectID", err)
	}
}
