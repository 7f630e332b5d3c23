package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
)

// SettingRepository stores admin settings keyed by _id = key, which gives
// the uniqueness of keys for free.
type SettingRepository struct {
	coll *mongo.Collection
}

func NewSettingRepository(db *mongo.Database) *SettingRepository {
	return &SettingRepository{coll: db.Collection(collectionSettings)}
}

func (r *SettingRepository) List(ctx context.Context) ([]*domain.AdminSetting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	settings, err := findAll[domain.AdminSetting](ctx, r.coll, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*domain.AdminSetting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.AdminSetting
	if err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find setting: %w", err)
	}
	return &s, nil
}

// Upsert inserts or replaces the value stored under setting.Key.
func (r *SettingRepository) Upsert(ctx context.Context, setting *domain.AdminSetting) (*domain.AdminSetting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := returnAfter().SetUpsert(true)
	update := bson.M{"$set": bson.M{
		"value":      setting.Value,
		"updated_at": setting.UpdatedAt,
	}}

	var out domain.AdminSetting
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": setting.Key}, update, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("upsert setting %q: %w", setting.Key, err)
	}
	return &out, nil
}
