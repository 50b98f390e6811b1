// Package search compiles user-supplied criteria into conjunctive filters
// that storage backends translate into queries. Blank criteria contribute no
// clause; a filter with zero clauses matches everything.
package search

import (
	"strings"

	"github.com/ojasvatstyagi/Collabro/internal/profile"
)

// ProfileCriteria is the raw search form for profiles. Any subset of fields
// may be set.
type ProfileCriteria struct {
	Skills         []string
	Education      string
	Location       string
	MinProficiency profile.Proficiency

	// MinSharedSkills is accepted for wire compatibility but compiles to no
	// clause; the similarity threshold lives in the matching service.
	MinSharedSkills int
}

// ProfileClauseKind discriminates profile filter clauses.
type ProfileClauseKind int

const (
	// ProfileClauseSkillAnyOf matches profiles holding at least one of the
	// named skills, optionally at or above a minimum proficiency.
	ProfileClauseSkillAnyOf ProfileClauseKind = iota + 1
	// ProfileClauseEducationContains matches on an education substring.
	ProfileClauseEducationContains
	// ProfileClauseLocationContains matches on a location substring.
	ProfileClauseLocationContains
)

// ProfileClause is one conjunct of a compiled profile filter.
type ProfileClause struct {
	Kind           ProfileClauseKind
	Values         []string
	Value          string
	MinProficiency profile.Proficiency
}

// ProfileFilter is the conjunction of its clauses.
type ProfileFilter struct {
	Clauses []ProfileClause
}

// CompileProfileCriteria builds a filter from criteria, skipping blank
// fields. Skill names are trimmed and blank entries dropped.
func CompileProfileCriteria(criteria ProfileCriteria) ProfileFilter {
	var filter ProfileFilter

	skills := trimNonEmpty(criteria.Skills)
	if len(skills) > 0 {
		filter.Clauses = append(filter.Clauses, ProfileClause{
			Kind:           ProfileClauseSkillAnyOf,
			Values:         skills,
			MinProficiency: criteria.MinProficiency,
		})
	}
	if education := strings.TrimSpace(criteria.Education); education != "" {
		filter.Clauses = append(filter.Clauses, ProfileClause{
			Kind:  ProfileClauseEducationContains,
			Value: education,
		})
	}
	if location := strings.TrimSpace(criteria.Location); location != "" {
		filter.Clauses = append(filter.Clauses, ProfileClause{
			Kind:  ProfileClauseLocationContains,
			Value: location,
		})
	}
	return filter
}

// Matches evaluates the filter against one profile and its skills.
func (f ProfileFilter) Matches(p profile.Profile, skills []profile.Skill) bool {
	for _, clause := range f.Clauses {
		switch clause.Kind {
		case ProfileClauseSkillAnyOf:
			if !anySkillMatches(skills, clause.Values, clause.MinProficiency) {
				return false
			}
		case ProfileClauseEducationContains:
			if !containsFold(p.Education, clause.Value) {
				return false
			}
		case ProfileClauseLocationContains:
			if !containsFold(p.Location, clause.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func anySkillMatches(skills []profile.Skill, names []string, min profile.Proficiency) bool {
	for _, skill := range skills {
		if min != profile.ProficiencyUnspecified && !skill.Proficiency.AtLeast(min) {
			continue
		}
		for _, name := range names {
			if strings.EqualFold(skill.Name, name) {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}
