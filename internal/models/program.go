package models

type GymProgram struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	FocusBodyPart  string `json:"focusBodyPart" yaml:"focusBodyPart"`
	Intensity      string `json:"intensity" yaml:"intensity"`
	Difficulty     string `json:"difficulty" yaml:"difficulty"`
	TargetAudience string `json:"targetAudience" yaml:"targetAudience"`
	Reps           int    `json:"reps" yaml:"reps"`
	IsActive       bool   `json:"isActive" yaml:"isActive"`
}
