package search

import (
	"testing"

	"github.com/ojasvatstyagi/Collabro/internal/project"
)

func TestCompileProjectCriteriaSkipsBlankFields(t *testing.T) {
	filter := CompileProjectCriteria(ProjectCriteria{
		Text:         "  ",
		Category:     "",
		Level:        project.LevelUnspecified,
		Technologies: []string{"", "  "},
	})
	if len(filter.Clauses) != 0 {
		t.Fatalf("clauses = %d, want none for blank criteria", len(filter.Clauses))
	}
	if !filter.Matches(project.Project{}) {
		t.Fatal("empty filter should match everything")
	}
}

func TestProjectFilterTextSearchesTitleAndDescription(t *testing.T) {
	filter := CompileProjectCriteria(ProjectCriteria{Text: "whiteboard"})

	if !filter.Matches(project.Project{Title: "Realtime Whiteboard"}) {
		t.Fatal("expected title match")
	}
	if !filter.Matches(project.Project{Title: "Canvas", Description: "a shared whiteboard app"}) {
		t.Fatal("expected description match")
	}
	if filter.Matches(project.Project{Title: "Chess engine"}) {
		t.Fatal("expected non-matching text to fail")
	}
}

func TestProjectFilterIsConjunctive(t *testing.T) {
	filter := CompileProjectCriteria(ProjectCriteria{
		Category:     "web",
		Level:        project.LevelIntermediate,
		Technologies: []string{"go", "rust"},
	})

	match := project.Project{
		Category:     "Web",
		Level:        project.LevelIntermediate,
		Technologies: []string{"Go", "React"},
	}
	if !filter.Matches(match) {
		t.Fatal("expected all clauses to match")
	}

	wrongLevel := match
	wrongLevel.Level = project.LevelBeginner
	if filter.Matches(wrongLevel) {
		t.Fatal("one failing clause should fail the filter")
	}

	noTech := match
	noTech.Technologies = []string{"Python"}
	if filter.Matches(noTech) {
		t.Fatal("expected technology any-of clause to fail")
	}
}
