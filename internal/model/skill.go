package model

import "time"

// Skill kinds. The kind is fixed by which checklist the name came from on
// the student's profile page.
const (
	SkillKindLanguage = "language"
	SkillKindTool     = "tool"
)

// SkillFlag is one named skill toggle on a student's profile.
//
// Rows are upserted per (student, skill name); a profile save mentions only
// the skills it wants to change, so unmentioned rows keep their previous
// state (sparse merge, not a full replace).
//
// Proficiency is part of the schema and surfaced on reads, but no mutation
// path writes a non-default value. It stays a stored-but-unpopulated field.
type SkillFlag struct {
	StudentID   string    `json:"studentId"`
	Name        string    `json:"skillName"`
	Kind        string    `json:"skillType"` // SkillKindLanguage or SkillKindTool
	Active      bool      `json:"isActive"`
	Proficiency float64   `json:"proficiency"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StudentProfile holds the non-skill part of the profile form.
type StudentProfile struct {
	UserID        string    `json:"userId"`
	GitHubProfile string    `json:"githubProfile"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
