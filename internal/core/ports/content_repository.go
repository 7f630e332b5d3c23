package ports

import (
	"context"
	"time"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
)

// ListFilter narrows list queries. Results are always ordered by creation
// time, newest first.
type ListFilter struct {
	FeaturedOnly bool
}

// PortfolioRepository defines persistence operations for portfolio items.
type PortfolioRepository interface {
	// Create assigns the serial ID on item.
	Create(ctx context.Context, item *domain.PortfolioItem) error
	FindByID(ctx context.Context, id int64) (*domain.PortfolioItem, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.PortfolioItem, error)
	// Update sets only the non-nil fields of patch plus updated_at.
	Update(ctx context.Context, id int64, patch PortfolioPatch, updatedAt time.Time) (*domain.PortfolioItem, error)
	Delete(ctx context.Context, id int64) error
}

// CaseStudyRepository defines persistence operations for case studies.
type CaseStudyRepository interface {
	Create(ctx context.Context, cs *domain.CaseStudy) error
	FindByID(ctx context.Context, id int64) (*domain.CaseStudy, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.CaseStudy, error)
	Update(ctx context.Context, id int64, patch CaseStudyPatch, updatedAt time.Time) (*domain.CaseStudy, error)
	Delete(ctx context.Context, id int64) error
}

// MessageRepository defines persistence operations for contact messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	FindByID(ctx context.Context, id int64) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	MarkAsRead(ctx context.Context, id int64) (*domain.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
}

// SettingRepository defines persistence operations for admin settings.
type SettingRepository interface {
	// List returns every setting ordered by key.
	List(ctx context.Context) ([]*domain.AdminSetting, error)
	Get(ctx context.Context, key string) (*domain.AdminSetting, error)
	Upsert(ctx context.Context, setting *domain.AdminSetting) (*domain.AdminSetting, error)
}
