package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

type PortfolioService struct {
	repo ports.PortfolioRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewPortfolioService(repo ports.PortfolioRepository, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, log: log, now: time.Now}
}

func (s *PortfolioService) List(ctx context.Context) ([]*domain.PortfolioItem, error) {
	return s.repo.List(ctx, ports.ListFilter{})
}

func (s *PortfolioService) Featured(ctx context.Context) ([]*domain.PortfolioItem, error) {
	return s.repo.List(ctx, ports.ListFilter{FeaturedOnly: true})
}

func (s *PortfolioService) Get(ctx context.Context, id int64) (*domain.PortfolioItem, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates and stores a new item. The ID is assigned by the store;
// featured defaults to false unless requested.
func (s *PortfolioService) Create(ctx context.Context, in ports.PortfolioInput) (*domain.PortfolioItem, error) {
	ve := &domain.ValidationError{}
	if blank(in.Title) {
		ve.Add("title", "title is required")
	}
	if blank(in.Description) {
		ve.Add("description", "description is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	now := nowMillis(s.now)
	item := &domain.PortfolioItem{
		Title:            in.Title,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		ImageURL:         in.ImageURL,
		Technologies:     normalizeList(in.Technologies),
		ProjectURL:       in.ProjectURL,
		GithubURL:        in.GithubURL,
		Content:          sanitizeHTML(in.Content),
		Featured:         in.Featured,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.log.Error().Err(err).Msg("failed to create portfolio item")
		return nil, err
	}

	s.log.Info().Int64("portfolio_id", item.ID).Msg("portfolio item created")
	return item, nil
}

// Update merges the provided fields into the stored item and refreshes
// updatedAt.
func (s *PortfolioService) Update(ctx context.Context, id int64, patch ports.PortfolioPatch) (*domain.PortfolioItem, error) {
	ve := &domain.ValidationError{}
	if patch.Title != nil && blank(*patch.Title) {
		ve.Add("title", "title cannot be empty")
	}
	if patch.Description != nil && blank(*patch.Description) {
		ve.Add("description", "description cannot be empty")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	patch.Content = sanitizeHTML(patch.Content)
	if patch.Technologies != nil {
		techs := normalizeList(*patch.Technologies)
		patch.Technologies = &techs
	}

	item, err := s.repo.Update(ctx, id, patch, nowMillis(s.now))
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("portfolio_id", id).Msg("portfolio item updated")
	return item, nil
}

func (s *PortfolioService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("portfolio_id", id).Msg("portfolio item deleted")
	return nil
}
