package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"careergenie-backend/internal/resume"
	"careergenie-backend/internal/shared/telemetry"
)

// Mirror copies education, experience and skills into the profile store.
// Row failures are collected in the Outcome and never returned as an error.
type Mirror struct {
	Store Store
	Now   func() time.Time
}

// NewMirror constructs a Mirror.
func NewMirror(store Store) *Mirror {
	return &Mirror{Store: store, Now: time.Now}
}

func (m *Mirror) Mirror(ctx context.Context, userID, resumeID string, data resume.Structured) Outcome {
	var out Outcome
	if m == nil || m.Store == nil {
		return out
	}
	now := m.Now().UTC()

	record := func(kind string, err error) {
		out.Attempted++
		if err != nil {
			out.Failed++
			out.Errs = append(out.Errs, fmt.Errorf("%s: %w", kind, err))
			return
		}
		out.Written++
	}

	for _, edu := range data.Education {
		record("education", m.Store.InsertEducation(ctx, EducationRow{
			ID:          uuid.NewString(),
			UserID:      userID,
			ResumeID:    resumeID,
			Degree:      edu.Degree,
			Institution: edu.Institution,
			Year:        edu.Year,
			GPA:         edu.GPA,
			Details:     edu.Details,
			CreatedAt:   now,
		}))
	}
	for _, exp := range data.Experience {
		record("experience", m.Store.InsertExperience(ctx, ExperienceRow{
			ID:               uuid.NewString(),
			UserID:           userID,
			ResumeID:         resumeID,
			Title:            exp.Title,
			Company:          exp.Company,
			Duration:         exp.Duration,
			Description:      exp.Description,
			Responsibilities: exp.Responsibilities,
			CreatedAt:        now,
		}))
	}
	for _, skill := range categorized(data.Skills) {
		record("skill", m.Store.InsertSkill(ctx, SkillRow{
			ID:        uuid.NewString(),
			UserID:    userID,
			ResumeID:  resumeID,
			Name:      skill.name,
			Category:  skill.category,
			CreatedAt: now,
		}))
	}

	if out.Failed > 0 {
		telemetry.Warn("profile.mirror_partial", map[string]any{
			"resume_id": resumeID,
			"attempted": out.Attempted,
			"failed":    out.Failed,
			"error":     out.Errs[0],
		})
	}
	return out
}

type namedSkill struct {
	name     string
	category string
}

func categorized(s resume.Skills) []namedSkill {
	var out []namedSkill
	add := func(category string, list []string) {
		for _, name := range list {
			out = append(out, namedSkill{name: name, category: category})
		}
	}
	add("technical", s.Technical)
	add("soft", s.Soft)
	add("language", s.Languages)
	add("framework", s.Frameworks)
	add("tool", s.Tools)
	return out
}
