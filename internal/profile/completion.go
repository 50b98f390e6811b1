package profile

import "strings"

// Attribute weights for completion scoring. The weights sum to 100 so the
// percentage needs no normalization.
const (
	weightFirstName = 15
	weightLastName  = 15
	weightBio       = 10
	weightEducation = 10
	weightSkills    = 15
	weightPicture   = 15
	weightLocation  = 10
	weightPhone     = 10

	completeThreshold = 80
)

// Completion is the result of scoring a profile's filled attributes.
type Completion struct {
	Percentage int
	Complete   bool
}

// ScoreCompletion computes the completeness percentage of a profile from a
// fixed attribute-weight table. An attribute contributes its weight iff it
// is present: a non-blank string, or at least one skill. The function is
// pure; callers persist the result after mutating any scored attribute.
func ScoreCompletion(p Profile, skills []Skill) Completion {
	total := 0
	if strings.TrimSpace(p.FirstName) != "" {
		total += weightFirstName
	}
	if strings.TrimSpace(p.LastName) != "" {
		total += weightLastName
	}
	if strings.TrimSpace(p.Bio) != "" {
		total += weightBio
	}
	if strings.TrimSpace(p.Education) != "" {
		total += weightEducation
	}
	if len(skills) > 0 {
		total += weightSkills
	}
	if strings.TrimSpace(p.PictureURL) != "" {
		total += weightPicture
	}
	if strings.TrimSpace(p.Location) != "" {
		total += weightLocation
	}
	if strings.TrimSpace(p.Phone) != "" {
		total += weightPhone
	}
	return Completion{
		Percentage: total,
		Complete:   total >= completeThreshold,
	}
}

// Rescore applies a fresh completion score to the profile.
func (p Profile) Rescore(skills []Skill) Profile {
	completion := ScoreCompletion(p, skills)
	p.CompletionPercentage = completion.Percentage
	p.Complete = completion.Complete
	return p
}
