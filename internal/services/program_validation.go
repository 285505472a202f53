package services

import "strings"

const (
	MsgDuplicateName        = "Program with this name already exists."
	MsgNameRequired         = "Name is required and should be a string."
	MsgInvalidFocusBodyPart = "Focus body part must be 'upper' or 'lower' or 'back'."
	MsgInvalidIntensity     = "Intensity must be 'mild', 'average', or 'high'."
	MsgInvalidDifficulty    = "Difficulty must be 'beginner', 'intermediate', or 'advanced'."
	MsgInvalidAudience      = "Target audience must be 'teenagers', 'adults', or 'elders'."
	MsgInvalidReps          = "Reps must be a positive number."

	MsgBeginnerHighIntensity   = "Beginner programs cannot have 'high' intensity."
	MsgBeginnerTooManyReps     = "Beginner programs should have fewer than 10 reps."
	MsgIntermediateTooManyReps = "Intermediate programs should not exceed 20 reps with high intensity."
	MsgAdvancedNeedsHigh       = "Advanced programs must have 'high' intensity."
	MsgAdvancedTooFewReps      = "Advanced programs should have at least 15 reps for effective workout."
)

var allowedFocusBodyParts = map[string]struct{}{
	"upper": {},
	"lower": {},
	"back":  {},
}

var allowedIntensities = map[string]struct{}{
	"mild":    {},
	"average": {},
	"high":    {},
}

var allowedAudiences = map[string]struct{}{
	"teenagers": {},
	"adults":    {},
	"elders":    {},
}

// ProgramFields is a candidate program as submitted by a client. Reps is nil
// when the client sent no reps or a value that is not a whole number.
type ProgramFields struct {
	Name           string
	FocusBodyPart  string
	Intensity      string
	Difficulty     string
	TargetAudience string
	Reps           *int
	IsActive       *bool
}

// NormalizeProgramFields lowercases the classification fields and defaults
// IsActive to true.
func NormalizeProgramFields(fields ProgramFields) ProgramFields {
	fields.Name = strings.ToLower(fields.Name)
	fields.FocusBodyPart = strings.ToLower(fields.FocusBodyPart)
	fields.Intensity = strings.ToLower(fields.Intensity)
	fields.Difficulty = strings.ToLower(fields.Difficulty)
	fields.TargetAudience = strings.ToLower(fields.TargetAudience)
	if fields.IsActive == nil {
		active := true
		fields.IsActive = &active
	}
	return fields
}

// difficultyRules is the cross-field rule set for one difficulty level.
type difficultyRules interface {
	check(intensity string, reps *int) []string
}

type beginnerRules struct{}

func (beginnerRules) check(intensity string, reps *int) []string {
	var errs []string
	if intensity == "high" {
		errs = append(errs, MsgBeginnerHighIntensity)
	}
	if reps != nil && *reps > 10 {
		errs = append(errs, MsgBeginnerTooManyReps)
	}
	return errs
}

type intermediateRules struct{}

func (intermediateRules) check(intensity string, reps *int) []string {
	if intensity == "high" && reps != nil && *reps > 20 {
		return []string{MsgIntermediateTooManyReps}
	}
	return nil
}

type advancedRules struct{}

func (advancedRules) check(intensity string, reps *int) []string {
	var errs []string
	if intensity != "high" {
		errs = append(errs, MsgAdvancedNeedsHigh)
	}
	if reps != nil && *reps < 15 {
		errs = append(errs, MsgAdvancedTooFewReps)
	}
	return errs
}

var rulesByDifficulty = map[string]difficultyRules{
	"beginner":     beginnerRules{},
	"intermediate": intermediateRules{},
	"advanced":     advancedRules{},
}

// ValidateProgram checks an already normalized candidate and returns every
// violated rule in a fixed order. nameTaken reports whether another program
// already uses the name. An empty result means the candidate is acceptable.
func ValidateProgram(candidate ProgramFields, nameTaken func(name string) bool) []string {
	var errs []string

	if nameTaken != nil && nameTaken(candidate.Name) {
		errs = append(errs, MsgDuplicateName)
	}
	if candidate.Name == "" {
		errs = append(errs, MsgNameRequired)
	}
	if _, ok := allowedFocusBodyParts[candidate.FocusBodyPart]; !ok {
		errs = append(errs, MsgInvalidFocusBodyPart)
	}
	if _, ok := allowedIntensities[candidate.Intensity]; !ok {
		errs = append(errs, MsgInvalidIntensity)
	}
	rules, knownDifficulty := rulesByDifficulty[candidate.Difficulty]
	if !knownDifficulty {
		errs = append(errs, MsgInvalidDifficulty)
	}
	if _, ok := allowedAudiences[candidate.TargetAudience]; !ok {
		errs = append(errs, MsgInvalidAudience)
	}
	if candidate.Reps == nil || *candidate.Reps <= 0 {
		errs = append(errs, MsgInvalidReps)
	}

	if knownDifficulty {
		errs = append(errs, rules.check(candidate.Intensity, candidate.Reps)...)
	}

	return errs
}
