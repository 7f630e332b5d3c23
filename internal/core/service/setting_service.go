package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

const maxSettingKeyLen = 100

type SettingService struct {
	repo ports.SettingRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewSettingService(repo ports.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{repo: repo, log: log, now: time.Now}
}

func (s *SettingService) List(ctx context.Context) ([]*domain.AdminSetting, error) {
	return s.repo.List(ctx)
}

// Upsert inserts or replaces the setting stored under key. A nil value is
// stored as null.
func (s *SettingService) Upsert(ctx context.Context, key string, value *string) (*domain.AdminSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.NewValidationError("key", "key is required")
	}
	if len(key) > maxSettingKeyLen {
		return nil, domain.NewValidationError("key", "key must be at most 100 characters")
	}

	setting, err := s.repo.Upsert(ctx, &domain.AdminSetting{
		Key:       key,
		Value:     value,
		UpdatedAt: nowMillis(s.now),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("key", key).Msg("setting updated")
	return setting, nil
}
