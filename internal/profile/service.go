package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ResumeLister supplies the resumes shown next to the profile.
type ResumeLister interface {
	ListResumes(ctx context.Context, userID string) ([]ResumeSummary, error)
}

// Service reads and edits a user's profile rows.
type Service struct {
	Store   Store
	Resumes ResumeLister
	Now     func() time.Time
	NewID   func() string
}

// NewService constructs a Service.
func NewService(store Store, resumes ResumeLister) *Service {
	return &Service{Store: store, Resumes: resumes, Now: time.Now, NewID: uuid.NewString}
}

// Get loads the rows and the resume list concurrently.
func (s *Service) Get(ctx context.Context, userID string) (View, error) {
	var view View
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Store.Load(gctx, userID)
		view.Profile = p
		return err
	})
	g.Go(func() error {
		if s.Resumes == nil {
			return nil
		}
		list, err := s.Resumes.ListResumes(gctx, userID)
		view.Resumes = list
		return err
	})
	if err := g.Wait(); err != nil {
		return View{}, err
	}
	if view.Resumes == nil {
		view.Resumes = []ResumeSummary{}
	}
	return view, nil
}

// Update applies a patch atomically. New rows are not tied to a resume.
func (s *Service) Update(ctx context.Context, userID string, p Patch) (PatchResult, error) {
	if len(p.Education)+len(p.Experience)+len(p.Skills) == 0 {
		return PatchResult{}, ErrInvalidInput
	}
	now := s.now().UTC()
	var ch Changes

	for _, r := range p.Education {
		r.UserID = userID
		if strings.TrimSpace(r.ID) == "" {
			r.ID, r.ResumeID, r.CreatedAt = s.newID(), "", now
			ch.NewEducation = append(ch.NewEducation, r)
			continue
		}
		ch.EditEducation = append(ch.EditEducation, r)
	}
	for _, r := range p.Experience {
		r.UserID = userID
		if r.Responsibilities == nil {
			r.Responsibilities = []string{}
		}
		if strings.TrimSpace(r.ID) == "" {
			r.ID, r.ResumeID, r.CreatedAt = s.newID(), "", now
			ch.NewExperience = append(ch.NewExperience, r)
			continue
		}
		ch.EditExperience = append(ch.EditExperience, r)
	}
	for _, r := range p.Skills {
		r.UserID = userID
		r.Name = strings.ToLower(strings.TrimSpace(r.Name))
		if r.Category == "" {
			r.Category = "technical"
		}
		if strings.TrimSpace(r.ID) == "" {
			r.ID, r.ResumeID, r.CreatedAt = s.newID(), "", now
			ch.NewSkills = append(ch.NewSkills, r)
			continue
		}
		ch.EditSkills = append(ch.EditSkills, r)
	}

	if err := s.Store.Apply(ctx, userID, ch); err != nil {
		return PatchResult{}, err
	}
	return PatchResult{
		Created: len(ch.NewEducation) + len(ch.NewExperience) + len(ch.NewSkills),
		Updated: len(ch.EditEducation) + len(ch.EditExperience) + len(ch.EditSkills),
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
