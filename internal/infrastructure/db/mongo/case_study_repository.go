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

// CaseStudyRepository implements ports.CaseStudyRepository using MongoDB.
type CaseStudyRepository struct {
	coll *mongo.Collection
	seq  *sequence
}

func NewCaseStudyRepository(db *mongo.Database) *CaseStudyRepository {
	return &CaseStudyRepository{
		coll: db.Collection(collectionCaseStudy),
		seq:  newSequence(db, collectionCaseStudy),
	}
}

func (r *CaseStudyRepository) Create(ctx context.Context, cs *domain.CaseStudy) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	cs.ID = id
	if cs.Tags == nil {
		cs.Tags = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, cs); err != nil {
		cs.ID = 0
		return fmt.Errorf("insert case study: %w", err)
	}
	return nil
}

func (r *CaseStudyRepository) FindByID(ctx context.Context, id int64) (*domain.CaseStudy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cs domain.CaseStudy
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&cs); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find case study: %w", err)
	}
	return &cs, nil
}

func (r *CaseStudyRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.CaseStudy, error) {
	q := bson.M{}
	if filter.FeaturedOnly {
		q["featured"] = true
	}
	studies, err := findAll[domain.CaseStudy](ctx, r.coll, q, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("list case studies: %w", err)
	}
	return studies, nil
}

func (r *CaseStudyRepository) Update(ctx context.Context, id int64, patch ports.CaseStudyPatch, updatedAt time.Time) (*domain.CaseStudy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": updatedAt}
	setIf(set, "title", patch.Title)
	setIf(set, "excerpt", patch.Excerpt)
	setIf(set, "content", patch.Content)
	setIf(set, "image_url", patch.ImageURL)
	setIf(set, "tags", patch.Tags)
	setIf(set, "client_name", patch.ClientName)
	setIf(set, "project_duration", patch.ProjectDuration)
	setIf(set, "outcome", patch.Outcome)
	setIf(set, "featured", patch.Featured)

	var cs domain.CaseStudy
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter()).Decode(&cs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update case study: %w", err)
	}
	return &cs, nil
}

func (r *CaseStudyRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.coll, id, domain.ErrNotFound); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete case study: %w", err)
	}
	return nil
}
