package service

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/repository"
	"eduplatform_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssignmentService struct {
	Assignments *repository.AssignmentRepository
	Storage     *StorageService
	Publisher   EventPublisher
}

func NewAssignmentService(assignments *repository.AssignmentRepository, storage *StorageService) *AssignmentService {
	return &AssignmentService{Assignments: assignments, Storage: storage}
}

type CreateAssignmentRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	CourseID    string `json:"courseId" binding:"required"`
}

func (s *AssignmentService) CreateAssignment(ctx context.Context, instructorID string, req CreateAssignmentRequest) (*model.Assignment, error) {
	a := &model.Assignment{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		CourseID:     req.CourseID,
		InstructorID: instructorID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SubmitAssignment uploads a student's file and merges the submission into
// the per-assignment aggregate record; a resubmission replaces the stored
// entry in place.
func (s *AssignmentService) SubmitAssignment(ctx context.Context, assignmentID, studentID, filename string, reader io.Reader, size int64, contentType string) (*model.AssignmentSubmission, error) {
	assignment, err := s.Assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	storageID := uuid.NewString() + filepath.Ext(filename)
	objectName := "assignments/" + assignmentID + "/" + storageID

	url, err := s.Storage.Provider.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	sub := model.AssignmentSubmission{
		StudentID:   studentID,
		URL:         url,
		StorageID:   storageID,
		SubmittedAt: time.Now().UTC(),
	}
	meta := repository.ResultMetadata{
		Title:        assignment.Title,
		CourseID:     assignment.CourseID,
		InstructorID: assignment.InstructorID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Assignments.UpsertStudentSubmission(ctx, assignmentID, sub, meta); err != nil {
		return nil, err
	}

	if s.Publisher != nil {
		if err := s.Publisher.Publish("assignment.submitted", map[string]interface{}{
			"assignmentId": assignmentID,
			"studentId":    studentID,
		}); err != nil {
			logger.Log.Warn("failed to publish assignment event", zap.Error(err))
		}
	}

	return &sub, nil
}

// GetSubmissions returns the aggregate record for an instructor view; the
// record may be nil when no student has submitted yet.
func (s *AssignmentService) GetSubmissions(ctx context.Context, assignmentID string) (*model.SubmittedAssignment, error) {
	if _, err := s.Assignments.FindByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.Assignments.FindSubmitted(ctx, assignmentID)
}
