package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/util"
	"eduplatform_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const assessmentCacheTTL = 10 * time.Minute

// AssessmentRepository reads assessment definitions. Assessments are immutable
// after creation, so the redis read-through cache never needs invalidation.
type AssessmentRepository struct {
	Col   *mongo.Collection
	Redis *redis.Client
}

func NewAssessmentRepository(db *mongo.Database, rdb *redis.Client) *AssessmentRepository {
	return &AssessmentRepository{Col: db.Collection("assessments"), Redis: rdb}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	_, err := r.Col.InsertOne(ctx, a)
	return err
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*model.Assessment, error) {
	if r.Redis != nil {
		if cached, err := r.Redis.Get(ctx, cacheKey(id)).Bytes(); err == nil {
			var a model.Assessment
			if err := json.Unmarshal(cached, &a); err == nil {
				return &a, nil
			}
		}
	}

	var a model.Assessment
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}

	if r.Redis != nil {
		if data, err := json.Marshal(&a); err == nil {
			if err := r.Redis.Set(ctx, cacheKey(id), data, assessmentCacheTTL).Err(); err != nil {
				logger.Log.Warn("assessment cache write failed", zap.String("id", id), zap.Error(err))
			}
		}
	}

	return &a, nil
}

func cacheKey(id string) string {
	return "assessment:" + id
}
