package dto

import (
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UserSkillResponse struct {
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	ProficiencyLevel string    `json:"proficiency_level"`
	YearsExperience  int       `json:"years_experience"`
}

type JobSkillResponse struct {
	SkillID         uuid.UUID `json:"skill_id"`
	SkillName       string    `json:"skill_name"`
	ImportanceLevel string    `json:"importance_level"`
	IsMandatory     bool      `json:"is_mandatory"`
}

func NewSkillResponse(s repository.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name}
}

func NewUserSkillResponse(us repository.UserSkill) UserSkillResponse {
	return UserSkillResponse{
		SkillID:          us.SkillID,
		SkillName:        us.SkillName,
		ProficiencyLevel: us.ProficiencyLevel,
		YearsExperience:  us.YearsExperience,
	}
}

func NewJobSkillResponse(js repository.JobSkill) JobSkillResponse {
	return JobSkillResponse{
		SkillID:         js.SkillID,
		SkillName:       js.SkillName,
		ImportanceLevel: js.ImportanceLevel,
		IsMandatory:     js.IsMandatory,
	}
}
