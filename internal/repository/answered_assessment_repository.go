package repository

import (
	"context"
	"errors"
	"time"

	"eduplatform_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultMetadata is copied onto the aggregate document when it is first
// created for an assessment.
type ResultMetadata struct {
	Title        string
	CourseID     string
	InstructorID string
	CreatedAt    time.Time
}

// AnsweredAssessmentRepository maintains one aggregate document per
// assessment. Writes go through per-student atomic updates rather than a
// whole-document read-modify-write, so concurrent submissions by different
// students cannot drop each other's results.
type AnsweredAssessmentRepository struct {
	Col *mongo.Collection
}

func NewAnsweredAssessmentRepository(db *mongo.Database) *AnsweredAssessmentRepository {
	return &AnsweredAssessmentRepository{Col: db.Collection("answeredassessments")}
}

// UpsertStudentResult records a score for a student. An existing entry is
// updated in place (score and answered_at only); otherwise the student is
// added to the membership set and the result sequence, creating the aggregate
// document on first submission. Returns whether an existing entry was
// replaced.
func (r *AnsweredAssessmentRepository) UpsertStudentResult(ctx context.Context, assessmentID, studentID string, score int, meta ResultMetadata) (bool, error) {
	now := time.Now().UTC()
	set := bson.M{
		"students.$.score":       score,
		"students.$.answered_at": now,
	}

	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": assessmentID, "students.student_id": studentID},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	entry := model.StudentResult{StudentID: studentID, Score: score, AnsweredAt: now}
	_, err = r.Col.UpdateOne(ctx,
		// The $ne guard keeps a racing first submission by the same student
		// from appending a second entry.
		bson.M{"_id": assessmentID, "students.student_id": bson.M{"$ne": studentID}},
		bson.M{
			"$addToSet": bson.M{"student_ids": studentID},
			"$push":     bson.M{"students": entry},
			"$setOnInsert": bson.M{
				"title":         meta.Title,
				"course_id":     meta.CourseID,
				"instructor_id": meta.InstructorID,
				"created_at":    meta.CreatedAt,
			},
		},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the race against a concurrent first submission by the same
		// student. The entry exists now, so update it in place.
		_, err = r.Col.UpdateOne(ctx,
			bson.M{"_id": assessmentID, "students.student_id": studentID},
			bson.M{"$set": set},
		)
		return true, err
	}
	return false, err
}

// FindByID returns the aggregate record, or nil when no submission has been
// recorded for the assessment yet.
func (r *AnsweredAssessmentRepository) FindByID(ctx context.Context, assessmentID string) (*model.AnsweredAssessment, error) {
	var a model.AnsweredAssessment
	err := r.Col.FindOne(ctx, bson.M{"_id": assessmentID}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
