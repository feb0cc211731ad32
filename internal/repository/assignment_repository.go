package repository

import (
	"context"
	"errors"

	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssignmentRepository struct {
	Col       *mongo.Collection
	Submitted *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{
		Col:       db.Collection("assignments"),
		Submitted: db.Collection("submittedassignments"),
	}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	_, err := r.Col.InsertOne(ctx, a)
	return err
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertStudentSubmission follows the same per-student atomic merge as
// AnsweredAssessmentRepository.UpsertStudentResult.
func (r *AssignmentRepository) UpsertStudentSubmission(ctx context.Context, assignmentID string, sub model.AssignmentSubmission, meta ResultMetadata) error {
	set := bson.M{
		"students.$.url":          sub.URL,
		"students.$.storage_id":   sub.StorageID,
		"students.$.submitted_at": sub.SubmittedAt,
	}

	res, err := r.Submitted.UpdateOne(ctx,
		bson.M{"_id": assignmentID, "students.student_id": sub.StudentID},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	_, err = r.Submitted.UpdateOne(ctx,
		bson.M{"_id": assignmentID, "students.student_id": bson.M{"$ne": sub.StudentID}},
		bson.M{
			"$addToSet": bson.M{"student_ids": sub.StudentID},
			"$push":     bson.M{"students": sub},
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
		_, err = r.Submitted.UpdateOne(ctx,
			bson.M{"_id": assignmentID, "students.student_id": sub.StudentID},
			bson.M{"$set": set},
		)
	}
	return err
}

// FindSubmitted returns the aggregate submission record, or nil when nothing
// has been submitted for the assignment yet.
func (r *AssignmentRepository) FindSubmitted(ctx context.Context, assignmentID string) (*model.SubmittedAssignment, error) {
	var s model.SubmittedAssignment
	err := r.Submitted.FindOne(ctx, bson.M{"_id": assignmentID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
