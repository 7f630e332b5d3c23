package ports

import (
	"context"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
)

// PortfolioInput carries the fields of a new portfolio item.
type PortfolioInput struct {
	Title            string
	Description      string
	ShortDescription *string
	ImageURL         *string
	Technologies     []string
	ProjectURL       *string
	GithubURL        *string
	Content          *string
	Featured         bool
}

// PortfolioPatch carries a partial update. Nil fields are left untouched.
type PortfolioPatch struct {
	Title            *string
	Description      *string
	ShortDescription *string
	ImageURL         *string
	Technologies     *[]string
	ProjectURL       *string
	GithubURL        *string
	Content          *string
	Featured         *bool
}

// CaseStudyInput carries the fields of a new case study.
type CaseStudyInput struct {
	Title           string
	Excerpt         string
	Content         string
	ImageURL        *string
	Tags            []string
	ClientName      *string
	ProjectDuration *string
	Outcome         *string
	Featured        bool
}

// CaseStudyPatch carries a partial update. Nil fields are left untouched.
type CaseStudyPatch struct {
	Title           *string
	Excerpt         *string
	Content         *string
	ImageURL        *string
	Tags            *[]string
	ClientName      *string
	ProjectDuration *string
	Outcome         *string
	Featured        *bool
}

// ContactInput is a contact form submission after the attachment, if any,
// has been stored.
type ContactInput struct {
	Name           string
	Email          string
	Message        string
	AttachmentURL  *string
	AttachmentName *string
}

type PortfolioService interface {
	List(ctx context.Context) ([]*domain.PortfolioItem, error)
	Featured(ctx context.Context) ([]*domain.PortfolioItem, error)
	Get(ctx context.Context, id int64) (*domain.PortfolioItem, error)
	Create(ctx context.Context, in PortfolioInput) (*domain.PortfolioItem, error)
	Update(ctx context.Context, id int64, patch PortfolioPatch) (*domain.PortfolioItem, error)
	Delete(ctx context.Context, id int64) error
}

type CaseStudyService interface {
	List(ctx context.Context) ([]*domain.CaseStudy, error)
	Featured(ctx context.Context) ([]*domain.CaseStudy, error)
	Get(ctx context.Context, id int64) (*domain.CaseStudy, error)
	Create(ctx context.Context, in CaseStudyInput) (*domain.CaseStudy, error)
	Update(ctx context.Context, id int64, patch CaseStudyPatch) (*domain.CaseStudy, error)
	Delete(ctx context.Context, id int64) error
}

type MessageService interface {
	Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	MarkAsRead(ctx context.Context, id int64) (*domain.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
}

type SettingService interface {
	List(ctx context.Context) ([]*domain.AdminSetting, error)
	Upsert(ctx context.Context, key string, value *string) (*domain.AdminSetting, error)
}
