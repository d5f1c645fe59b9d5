// Package profile mirrors parsed resume sections into per-user profile rows.
package profile

import "time"

type EducationRow struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ResumeID    string    `json:"resumeId"`
	Degree      string    `json:"degree" binding:"required_without=Institution,max=200"`
	Institution string    `json:"institution" binding:"max=200"`
	Year        string    `json:"year"`
	GPA         string    `json:"gpa"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ExperienceRow struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	ResumeID         string    `json:"resumeId"`
	Title            string    `json:"title" binding:"required_without=Company,max=200"`
	Company          string    `json:"company" binding:"max=200"`
	Duration         string    `json:"duration"`
	Description      string    `json:"description"`
	Responsibilities []string  `json:"responsibilities"`
	CreatedAt        time.Time `json:"createdAt"`
}

type SkillRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ResumeID  string    `json:"resumeId"`
	Name      string    `json:"name" binding:"required,max=100"`
	Category  string    `json:"category" binding:"omitempty,oneof=technical soft language framework tool"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is everything mirrored for one user.
type Profile struct {
	Education  []EducationRow  `json:"education"`
	Experience []ExperienceRow `json:"experience"`
	Skills     []SkillRow      `json:"skills"`
}

// ResumeSummary lists one stored resume next to the profile rows.
type ResumeSummary struct {
	ID               string    `json:"id"`
	FileName         string    `json:"fileName"`
	ProcessingMethod string    `json:"processingMethod"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// View is the GET /resume/profile body.
type View struct {
	Profile
	Resumes []ResumeSummary `json:"resumes"`
}

// Patch is a client edit. Rows with an id update the caller's existing row;
// rows without one are created.
type Patch struct {
	Education  []EducationRow  `json:"educations" binding:"dive"`
	Experience []ExperienceRow `json:"experiences" binding:"dive"`
	Skills     []SkillRow      `json:"skills" binding:"dive"`
}

// Changes is a Patch resolved into inserts and updates, applied atomically.
type Changes struct {
	NewEducation   []EducationRow
	EditEducation  []EducationRow
	NewExperience  []ExperienceRow
	EditExperience []ExperienceRow
	NewSkills      []SkillRow
	EditSkills     []SkillRow
}

// PatchResult counts what an update did.
type PatchResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Outcome reports how a mirror attempt went. Errs is not serialized.
type Outcome struct {
	Attempted int     `json:"attempted"`
	Written   int     `json:"written"`
	Failed    int     `json:"failed"`
	Errs      []error `json:"-"`
}

// OK reports whether every attempted row was written.
func (o Outcome) OK() bool { return o.Failed == 0 }
