package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

// PortfolioRepository implements ports.PortfolioRepository using MongoDB.
type PortfolioRepository struct {
	coll *mongo.Collection
	seq  *sequence
}

func NewPortfolioRepository(db *mongo.Database) *PortfolioRepository {
	return &PortfolioRepository{
		coll: db.Collection(collectionPortfolio),
		seq:  newSequence(db, collectionPortfolio),
	}
}

func (r *PortfolioRepository) Create(ctx context.Context, item *domain.PortfolioItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	item.ID = id
	if item.Technologies == nil {
		item.Technologies = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		item.ID = 0
		return fmt.Errorf("insert portfolio item: %w", err)
	}
	return nil
}

func (r *PortfolioRepository) FindByID(ctx context.Context, id int64) (*domain.PortfolioItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item domain.PortfolioItem
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find portfolio item: %w", err)
	}
	return &item, nil
}

func (r *PortfolioRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.PortfolioItem, error) {
	q := bson.M{}
	if filter.FeaturedOnly {
		q["featured"] = true
	}
	items, err := findAll[domain.PortfolioItem](ctx, r.coll, q, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}
	return items, nil
}

func (r *PortfolioRepository) Update(ctx context.Context, id int64, patch ports.PortfolioPatch, updatedAt time.Time) (*domain.PortfolioItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": updatedAt}
	setIf(set, "title", patch.Title)
	setIf(set, "description", patch.Description)
	setIf(set, "short_description", patch.ShortDescription)
	setIf(set, "image_url", patch.ImageURL)
	setIf(set, "technologies", patch.Technologies)
	setIf(set, "project_url", patch.ProjectURL)
	setIf(set, "github_url", patch.GithubURL)
	setIf(set, "content", patch.Content)
	setIf(set, "featured", patch.Featured)

	var item domain.PortfolioItem
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter()).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}
	return &item, nil
}

func (r *PortfolioRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.coll, id, domain.ErrNotFound); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	return nil
}
