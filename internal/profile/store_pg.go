package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"careergenie-backend/internal/shared/storage/db"
)

// PGStore implements Store using Postgres.
type PGStore struct {
	DB *sql.DB
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const (
	insertEducationSQL = `
INSERT INTO profile_education (id, user_id, resume_id, degree, institution, year, gpa, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	updateEducationSQL = `
UPDATE profile_education SET degree = $3, institution = $4, year = $5, gpa = $6, details = $7
WHERE id = $1 AND user_id = $2`
	insertExperienceSQL = `
INSERT INTO profile_experience (id, user_id, resume_id, title, company, duration, description, responsibilities, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	updateExperienceSQL = `
UPDATE profile_experience SET title = $3, company = $4, duration = $5, description = $6, responsibilities = $7
WHERE id = $1 AND user_id = $2`
	insertSkillSQL = `
INSERT INTO profile_skills (id, user_id, resume_id, name, category, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	updateSkillSQL = `
UPDATE profile_skills SET name = $3, category = $4
WHERE id = $1 AND user_id = $2`
)

func (s *PGStore) InsertEducation(ctx context.Context, row EducationRow) error {
	return insertEducation(ctx, s.DB, row)
}

func (s *PGStore) InsertExperience(ctx context.Context, row ExperienceRow) error {
	return insertExperience(ctx, s.DB, row)
}

func (s *PGStore) InsertSkill(ctx context.Context, row SkillRow) error {
	return insertSkill(ctx, s.DB, row)
}

// Apply runs every insert and update in one transaction.
func (s *PGStore) Apply(ctx context.Context, userID string, ch Changes) error {
	return db.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, row := range ch.NewEducation {
			if err := insertEducation(ctx, tx, row); err != nil {
				return fmt.Errorf("insert education: %w", err)
			}
		}
		for _, row := range ch.EditEducation {
			if err := expectOne(tx.ExecContext(ctx, updateEducationSQL,
				row.ID, userID, row.Degree, row.Institution, row.Year, row.GPA, row.Details)); err != nil {
				return fmt.Errorf("update education %s: %w", row.ID, err)
			}
		}
		for _, row := range ch.NewExperience {
			if err := insertExperience(ctx, tx, row); err != nil {
				return fmt.Errorf("insert experience: %w", err)
			}
		}
		for _, row := range ch.EditExperience {
			raw, err := encodeResponsibilities(row.Responsibilities)
			if err != nil {
				return err
			}
			if err := expectOne(tx.ExecContext(ctx, updateExperienceSQL,
				row.ID, userID, row.Title, row.Company, row.Duration, row.Description, raw)); err != nil {
				return fmt.Errorf("update experience %s: %w", row.ID, err)
			}
		}
		for _, row := range ch.NewSkills {
			if err := insertSkill(ctx, tx, row); err != nil {
				return fmt.Errorf("insert skill: %w", err)
			}
		}
		for _, row := range ch.EditSkills {
			if err := expectOne(tx.ExecContext(ctx, updateSkillSQL, row.ID, userID, row.Name, row.Category)); err != nil {
				return fmt.Errorf("update skill %s: %w", row.ID, err)
			}
		}
		return nil
	})
}

// Load reads the three row sets concurrently, each oldest first.
func (s *PGStore) Load(ctx context.Context, userID string) (Profile, error) {
	var out Profile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.loadEducation(gctx, userID)
		out.Education = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.loadExperience(gctx, userID)
		out.Experience = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.loadSkills(gctx, userID)
		out.Skills = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return Profile{}, err
	}
	return out, nil
}

func (s *PGStore) loadEducation(ctx context.Context, userID string) ([]EducationRow, error) {
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, user_id, resume_id, degree, institution, year, gpa, details, created_at
FROM profile_education WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query education: %w", err)
	}
	defer rows.Close()

	out := []EducationRow{}
	for rows.Next() {
		var r EducationRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.ResumeID, &r.Degree, &r.Institution, &r.Year, &r.GPA, &r.Details, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PGStore) loadExperience(ctx context.Context, userID string) ([]ExperienceRow, error) {
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, user_id, resume_id, title, company, duration, description, responsibilities, created_at
FROM profile_experience WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query experience: %w", err)
	}
	defer rows.Close()

	out := []ExperienceRow{}
	for rows.Next() {
		var (
			r   ExperienceRow
			raw []byte
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.ResumeID, &r.Title, &r.Company, &r.Duration, &r.Description, &raw, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Responsibilities = []string{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &r.Responsibilities); err != nil {
				return nil, fmt.Errorf("decode responsibilities: %w", err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PGStore) loadSkills(ctx context.Context, userID string) ([]SkillRow, error) {
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, user_id, resume_id, name, category, created_at
FROM profile_skills WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	defer rows.Close()

	out := []SkillRow{}
	for rows.Next() {
		var r SkillRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.ResumeID, &r.Name, &r.Category, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func insertEducation(ctx context.Context, ex execer, row EducationRow) error {
	_, err := ex.ExecContext(ctx, insertEducationSQL,
		row.ID, row.UserID, row.ResumeID, row.Degree, row.Institution, row.Year, row.GPA, row.Details, row.CreatedAt)
	return err
}

func insertExperience(ctx context.Context, ex execer, row ExperienceRow) error {
	raw, err := encodeResponsibilities(row.Responsibilities)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, insertExperienceSQL,
		row.ID, row.UserID, row.ResumeID, row.Title, row.Company, row.Duration, row.Description, raw, row.CreatedAt)
	return err
}

func insertSkill(ctx context.Context, ex execer, row SkillRow) error {
	_, err := ex.ExecContext(ctx, insertSkillSQL, row.ID, row.UserID, row.ResumeID, row.Name, row.Category, row.CreatedAt)
	return err
}

func encodeResponsibilities(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshal responsibilities: %w", err)
	}
	return raw, nil
}

func expectOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
