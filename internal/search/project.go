package search

import (
	"strings"

	"github.com/ojasvatstyagi/Collabro/internal/project"
)

// ProjectCriteria is the raw search form for projects. Any subset of fields
// may be set.
type ProjectCriteria struct {
	Text         string
	Category     string
	Level        project.Level
	Technologies []string
}

// ProjectClauseKind discriminates project filter clauses.
type ProjectClauseKind int

const (
	// ProjectClauseTextContains matches on a title or description substring.
	ProjectClauseTextContains ProjectClauseKind = iota + 1
	// ProjectClauseCategoryIs matches the category exactly, ignoring case.
	ProjectClauseCategoryIs
	// ProjectClauseLevelIs matches the target experience level.
	ProjectClauseLevelIs
	// ProjectClauseTechnologyAnyOf matches projects using at least one of
	// the named technologies.
	ProjectClauseTechnologyAnyOf
)

// ProjectClause is one conjunct of a compiled project filter.
type ProjectClause struct {
	Kind   ProjectClauseKind
	Values []string
	Value  string
	Level  project.Level
}

// ProjectFilter is the conjunction of its clauses.
type ProjectFilter struct {
	Clauses []ProjectClause
}

// CompileProjectCriteria builds a filter from criteria, skipping blank
// fields.
func CompileProjectCriteria(criteria ProjectCriteria) ProjectFilter {
	var filter ProjectFilter

	if text := strings.TrimSpace(criteria.Text); text != "" {
		filter.Clauses = append(filter.Clauses, ProjectClause{
			Kind:  ProjectClauseTextContains,
			Value: text,
		})
	}
	if category := strings.TrimSpace(criteria.Category); category != "" {
		filter.Clauses = append(filter.Clauses, ProjectClause{
			Kind:  ProjectClauseCategoryIs,
			Value: category,
		})
	}
	if criteria.Level != project.LevelUnspecified {
		filter.Clauses = append(filter.Clauses, ProjectClause{
			Kind:  ProjectClauseLevelIs,
			Level: criteria.Level,
		})
	}
	technologies := trimNonEmpty(criteria.Technologies)
	if len(technologies) > 0 {
		filter.Clauses = append(filter.Clauses, ProjectClause{
			Kind:   ProjectClauseTechnologyAnyOf,
			Values: technologies,
		})
	}
	return filter
}

// Matches evaluates the filter against one project.
func (f ProjectFilter) Matches(p project.Project) bool {
	for _, clause := range f.Clauses {
		switch clause.Kind {
		case ProjectClauseTextContains:
			if !containsFold(p.Title, clause.Value) && !containsFold(p.Description, clause.Value) {
				return false
			}
		case ProjectClauseCategoryIs:
			if !strings.EqualFold(p.Category, clause.Value) {
				return false
			}
		case ProjectClauseLevelIs:
			if p.Level != clause.Level {
				return false
			}
		case ProjectClauseTechnologyAnyOf:
			if !anyTechnologyMatches(p.Technologies, clause.Values) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func anyTechnologyMatches(technologies, names []string) bool {
	for _, tech := range technologies {
		for _, name := range names {
			if strings.EqualFold(tech, name) {
				return true
			}
		}
	}
	return false
}
