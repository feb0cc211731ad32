package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/repository"
	"eduplatform_backend/pkg/logger"
	"eduplatform_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssessmentStore is the read side of the assessment collection.
type AssessmentStore interface {
	FindByID(ctx context.Context, id string) (*model.Assessment, error)
	Create(ctx context.Context, a *model.Assessment) error
}

// ResultStore merges per-student results into the aggregate record.
type ResultStore interface {
	UpsertStudentResult(ctx context.Context, assessmentID, studentID string, score int, meta repository.ResultMetadata) (bool, error)
	FindByID(ctx context.Context, assessmentID string) (*model.AnsweredAssessment, error)
}

type EventPublisher interface {
	Publish(eventType string, payload interface{}) error
}

type AssessmentService struct {
	Assessments AssessmentStore
	Results     ResultStore
	Publisher   EventPublisher
}

func NewAssessmentService(assessments AssessmentStore, results ResultStore) *AssessmentService {
	return &AssessmentService{Assessments: assessments, Results: results}
}

// SubmittedAnswer references a question by id and an option by its position,
// string-encoded.
type SubmittedAnswer struct {
	QuestionID string `json:"id" binding:"required"`
	Answer     string `json:"answer"`
}

type SubmitAssessmentRequest struct {
	AssessmentID string            `json:"assessmentId" binding:"required"`
	StudentID    string            `json:"studentId" binding:"required"`
	InstructorID string            `json:"instructorId" binding:"required"`
	Title        string            `json:"title" binding:"required"`
	CourseID     string            `json:"courseId" binding:"required"`
	Questions    []SubmittedAnswer `json:"questions" binding:"required"`
}

type SubmitResult struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
}

// ScoreAnswers grades a submitted answer set against an assessment. Answers
// for unknown question ids are ignored, a question with no option marked
// correct can never match, and each question counts at most once, so the
// result is always within [0, len(a.Questions)].
func ScoreAnswers(a *model.Assessment, answers []SubmittedAnswer) int {
	correct := make(map[string]string, len(a.Questions))
	for _, q := range a.Questions {
		for i, o := range q.Options {
			if o.IsCorrect {
				correct[q.ID] = strconv.Itoa(i)
				break
			}
		}
	}

	matched := make(map[string]bool)
	for _, ans := range answers {
		if want, ok := correct[ans.QuestionID]; ok && ans.Answer == want {
			matched[ans.QuestionID] = true
		}
	}
	return len(matched)
}

func (s *AssessmentService) SubmitAssessment(ctx context.Context, req SubmitAssessmentRequest) (*SubmitResult, error) {
	assessment, err := s.Assessments.FindByID(ctx, req.AssessmentID)
	if err != nil {
		return nil, err
	}

	score := ScoreAnswers(assessment, req.Questions)

	meta := repository.ResultMetadata{
		Title:        req.Title,
		CourseID:     req.CourseID,
		InstructorID: req.InstructorID,
		CreatedAt:    time.Now().UTC(),
	}
	resubmitted, err := s.Results.UpsertStudentResult(ctx, req.AssessmentID, req.StudentID, score, meta)
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(strconv.FormatBool(resubmitted)).Inc()

	if s.Publisher != nil {
		if err := s.Publisher.Publish("assessment.submitted", map[string]interface{}{
			"assessmentId": req.AssessmentID,
			"studentId":    req.StudentID,
			"score":        score,
			"resubmitted":  resubmitted,
		}); err != nil {
			logger.Log.Warn("failed to publish submission event", zap.Error(err))
		}
	}

	return &SubmitResult{Score: score, TotalQuestions: len(assessment.Questions)}, nil
}

type AssessmentResult struct {
	Total      string            `json:"total"`
	HasDone    bool              `json:"hasDone"`
	Score      *int              `json:"score"`
	Assessment *model.Assessment `json:"assessment"`
}

// GetResult reports a student's stored score for an assessment. Score is nil
// when the student has not attempted it; callers must not conflate that with
// a score of zero. The returned assessment has correctness flags stripped.
func (s *AssessmentService) GetResult(ctx context.Context, assessmentID, studentID string) (*AssessmentResult, error) {
	assessment, err := s.Assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	record, err := s.Results.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	res := &AssessmentResult{Assessment: assessment.Sanitized()}
	if record != nil && record.HasStudent(studentID) {
		if entry := record.ResultFor(studentID); entry != nil {
			score := entry.Score
			res.Score = &score
			res.HasDone = true
		}
	}

	display := 0
	if res.Score != nil {
		display = *res.Score
	}
	res.Total = fmt.Sprintf("Total Score: %d / %d", display, len(assessment.Questions))

	return res, nil
}

type CreateAssessmentRequest struct {
	Title     string           `json:"title" binding:"required"`
	CourseID  string           `json:"courseId" binding:"required"`
	Questions []model.Question `json:"questions" binding:"required,min=1"`
}

func (s *AssessmentService) CreateAssessment(ctx context.Context, instructorID string, req CreateAssessmentRequest) (*model.Assessment, error) {
	now := time.Now().UTC()
	a := &model.Assessment{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Questions:    req.Questions,
		CourseID:     req.CourseID,
		InstructorID: instructorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i := range a.Questions {
		if a.Questions[i].ID == "" {
			a.Questions[i].ID = uuid.NewString()
		}
	}

	if err := s.Assessments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
