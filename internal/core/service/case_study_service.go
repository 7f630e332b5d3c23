package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

type CaseStudyService struct {
	repo ports.CaseStudyRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewCaseStudyService(repo ports.CaseStudyRepository, log zerolog.Logger) *CaseStudyService {
	return &CaseStudyService{repo: repo, log: log, now: time.Now}
}

func (s *CaseStudyService) List(ctx context.Context) ([]*domain.CaseStudy, error) {
	return s.repo.List(ctx, ports.ListFilter{})
}

func (s *CaseStudyService) Featured(ctx context.Context) ([]*domain.CaseStudy, error) {
	return s.repo.List(ctx, ports.ListFilter{FeaturedOnly: true})
}

func (s *CaseStudyService) Get(ctx context.Context, id int64) (*domain.CaseStudy, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CaseStudyService) Create(ctx context.Context, in ports.CaseStudyInput) (*domain.CaseStudy, error) {
	// Content is checked after sanitising; markup that is stripped entirely
	// does not count.
	content := htmlSanitizer.Sanitize(in.Content)

	ve := &domain.ValidationError{}
	if blank(in.Title) {
		ve.Add("title", "title is required")
	}
	if blank(in.Excerpt) {
		ve.Add("excerpt", "excerpt is required")
	}
	if blank(content) {
		ve.Add("content", "content is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	now := nowMillis(s.now)
	cs := &domain.CaseStudy{
		Title:           in.Title,
		Excerpt:         in.Excerpt,
		Content:         content,
		ImageURL:        in.ImageURL,
		Tags:            normalizeList(in.Tags),
		ClientName:      in.ClientName,
		ProjectDuration: in.ProjectDuration,
		Outcome:         in.Outcome,
		Featured:        in.Featured,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, cs); err != nil {
		s.log.Error().Err(err).Msg("failed to create case study")
		return nil, err
	}

	s.log.Info().Int64("case_study_id", cs.ID).Msg("case study created")
	return cs, nil
}

func (s *CaseStudyService) Update(ctx context.Context, id int64, patch ports.CaseStudyPatch) (*domain.CaseStudy, error) {
	patch.Content = sanitizeHTML(patch.Content)

	ve := &domain.ValidationError{}
	if patch.Title != nil && blank(*patch.Title) {
		ve.Add("title", "title cannot be empty")
	}
	if patch.Excerpt != nil && blank(*patch.Excerpt) {
		ve.Add("excerpt", "excerpt cannot be empty")
	}
	if patch.Content != nil && blank(*patch.Content) {
		ve.Add("content", "content cannot be empty")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	if patch.Tags != nil {
		tags := normalizeList(*patch.Tags)
		patch.Tags = &tags
	}

	cs, err := s.repo.Update(ctx, id, patch, nowMillis(s.now))
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("case_study_id", id).Msg("case study updated")
	return cs, nil
}

func (s *CaseStudyService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("case_study_id", id).Msg("case study deleted")
	return nil
}
