package models

type Member struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	AdminNumber string `json:"admin_number" yaml:"admin_number"`
	// GymPrograms holds ids of programs the member is enrolled in.
	GymPrograms []string `json:"gym_programs" yaml:"gym_programs"`
}
