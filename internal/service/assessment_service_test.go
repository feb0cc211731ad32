package service

import (
	"context"
	"testing"
	"time"

	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/repository"
	"eduplatform_backend/internal/util"
)

func sampleAssessment() *model.Assessment {
	return &model.Assessment{
		ID:           "a1",
		Title:        "Algebra Basics",
		CourseID:     "c1",
		InstructorID: "i1",
		Questions: []model.Question{
			{ID: "q1", Text: "2+2?", Options: []model.Option{{Text: "3"}, {Text: "4", IsCorrect: true}}},
			{ID: "q2", Text: "1+1?", Options: []model.Option{{Text: "2", IsCorrect: true}, {Text: "5"}}},
		},
	}
}

func TestScoreAnswers(t *testing.T) {
	assessment := sampleAssessment()

	testCases := []struct {
		name    string
		answers []SubmittedAnswer
		want    int
	}{
		{"no answers", nil, 0},
		{"one correct one wrong", []SubmittedAnswer{{QuestionID: "q1", Answer: "1"}, {QuestionID: "q2", Answer: "2"}}, 1},
		{"all correct", []SubmittedAnswer{{QuestionID: "q1", Answer: "1"}, {QuestionID: "q2", Answer: "0"}}, 2},
		{"unknown question id ignored", []SubmittedAnswer{{QuestionID: "nope", Answer: "0"}, {QuestionID: "q2", Answer: "0"}}, 1},
		{"non-numeric answer", []SubmittedAnswer{{QuestionID: "q1", Answer: "first"}}, 0},
		{"duplicate answers count once", []SubmittedAnswer{{QuestionID: "q1", Answer: "1"}, {QuestionID: "q1", Answer: "1"}, {QuestionID: "q1", Answer: "1"}}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreAnswers(assessment, tc.answers)
			if got != tc.want {
				t.Errorf("ScoreAnswers() = %d, want %d", got, tc.want)
			}
			if got < 0 || got > len(assessment.Questions) {
				t.Errorf("score %d out of range [0, %d]", got, len(assessment.Questions))
			}
		})
	}
}

func TestScoreAnswersNoCorrectOption(t *testing.T) {
	assessment := &model.Assessment{
		ID: "a2",
		Questions: []model.Question{
			{ID: "q1", Text: "unanswerable", Options: []model.Option{{Text: "a"}, {Text: "b"}}},
		},
	}

	for _, answer := range []string{"0", "1", "-1", ""} {
		if got := ScoreAnswers(assessment, []SubmittedAnswer{{QuestionID: "q1", Answer: answer}}); got != 0 {
			t.Errorf("answer %q scored %d against question with no correct option, want 0", answer, got)
		}
	}
}

func TestScoreAnswersDeterministic(t *testing.T) {
	assessment := sampleAssessment()
	answers := []SubmittedAnswer{{QuestionID: "q2", Answer: "0"}, {QuestionID: "q1", Answer: "0"}}

	first := ScoreAnswers(assessment, answers)
	for i := 0; i < 10; i++ {
		if got := ScoreAnswers(assessment, answers); got != first {
			t.Fatalf("ScoreAnswers not deterministic: got %d then %d", first, got)
		}
	}
}

type fakeAssessmentStore struct {
	assessments map[string]*model.Assessment
}

func (f *fakeAssessmentStore) FindByID(ctx context.Context, id string) (*model.Assessment, error) {
	a, ok := f.assessments[id]
	if !ok {
		return nil, util.ErrAssessmentNotFound
	}
	return a, nil
}

func (f *fakeAssessmentStore) Create(ctx context.Context, a *model.Assessment) error {
	f.assessments[a.ID] = a
	return nil
}

// fakeResultStore implements the merge contract in memory: one entry per
// member of the student set, resubmissions replaced in place.
type fakeResultStore struct {
	records map[string]*model.AnsweredAssessment
}

func (f *fakeResultStore) UpsertStudentResult(ctx context.Context, assessmentID, studentID string, score int, meta repository.ResultMetadata) (bool, error) {
	rec, ok := f.records[assessmentID]
	if !ok {
		f.records[assessmentID] = &model.AnsweredAssessment{
			AssessmentID: assessmentID,
			Title:        meta.Title,
			CourseID:     meta.CourseID,
			InstructorID: meta.InstructorID,
			StudentIDs:   []string{studentID},
			Students:     []model.StudentResult{{StudentID: studentID, Score: score, AnsweredAt: time.Now().UTC()}},
			CreatedAt:    meta.CreatedAt,
		}
		return false, nil
	}

	for i := range rec.Students {
		if rec.Students[i].StudentID == studentID {
			rec.Students[i].Score = score
			rec.Students[i].AnsweredAt = time.Now().UTC()
			return true, nil
		}
	}
	rec.StudentIDs = append(rec.StudentIDs, studentID)
	rec.Students = append(rec.Students, model.StudentResult{StudentID: studentID, Score: score, AnsweredAt: time.Now().UTC()})
	return false, nil
}

func (f *fakeResultStore) FindByID(ctx context.Context, assessmentID string) (*model.AnsweredAssessment, error) {
	return f.records[assessmentID], nil
}

func newTestService() (*AssessmentService, *fakeResultStore) {
	results := &fakeResultStore{records: make(map[string]*model.AnsweredAssessment)}
	assessments := &fakeAssessmentStore{assessments: map[string]*model.Assessment{"a1": sampleAssessment()}}
	return NewAssessmentService(assessments, results), results
}

func submitRequest(answers []SubmittedAnswer) SubmitAssessmentRequest {
	return SubmitAssessmentRequest{
		AssessmentID: "a1",
		StudentID:    "s1",
		InstructorID: "i1",
		Title:        "Algebra Basics",
		CourseID:     "c1",
		Questions:    answers,
	}
}

func TestSubmitAssessmentFirstSubmission(t *testing.T) {
	svc, results := newTestService()

	res, err := svc.SubmitAssessment(context.Background(), submitRequest([]SubmittedAnswer{
		{QuestionID: "q1", Answer: "1"},
		{QuestionID: "q2", Answer: "2"},
	}))
	if err != nil {
		t.Fatalf("SubmitAssessment() error: %v", err)
	}
	if res.Score != 1 || res.TotalQuestions != 2 {
		t.Errorf("got score %d/%d, want 1/2", res.Score, res.TotalQuestions)
	}

	rec := results.records["a1"]
	if rec == nil {
		t.Fatal("no aggregate record created")
	}
	if len(rec.StudentIDs) != 1 || len(rec.Students) != 1 {
		t.Errorf("expected singleton set and sequence, got %d/%d", len(rec.StudentIDs), len(rec.Students))
	}
	if rec.Title != "Algebra Basics" || rec.CourseID != "c1" || rec.InstructorID != "i1" {
		t.Errorf("metadata not copied onto new record: %+v", rec)
	}
}

func TestSubmitAssessmentResubmission(t *testing.T) {
	svc, results := newTestService()
	ctx := context.Background()

	if _, err := svc.SubmitAssessment(ctx, submitRequest([]SubmittedAnswer{
		{QuestionID: "q1", Answer: "1"},
		{QuestionID: "q2", Answer: "2"},
	})); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	res, err := svc.SubmitAssessment(ctx, submitRequest([]SubmittedAnswer{
		{QuestionID: "q1", Answer: "1"},
		{QuestionID: "q2", Answer: "0"},
	}))
	if err != nil {
		t.Fatalf("resubmission: %v", err)
	}
	if res.Score != 2 {
		t.Errorf("resubmission score = %d, want 2", res.Score)
	}

	rec := results.records["a1"]
	if len(rec.StudentIDs) != 1 {
		t.Errorf("studentIds grew to %d on resubmission", len(rec.StudentIDs))
	}
	if len(rec.Students) != 1 {
		t.Errorf("result sequence grew to %d on resubmission", len(rec.Students))
	}
	if rec.Students[0].Score != 2 {
		t.Errorf("stored score = %d, want 2", rec.Students[0].Score)
	}
}

func TestSubmitAssessmentUnknownAssessment(t *testing.T) {
	svc, _ := newTestService()

	req := submitRequest(nil)
	req.AssessmentID = "missing"
	if _, err := svc.SubmitAssessment(context.Background(), req); err != util.ErrAssessmentNotFound {
		t.Errorf("expected ErrAssessmentNotFound, got %v", err)
	}
}

func TestGetResultNotAttempted(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.GetResult(context.Background(), "a1", "s1")
	if err != nil {
		t.Fatalf("GetResult() error: %v", err)
	}
	if res.HasDone {
		t.Error("hasDone = true for a student who never submitted")
	}
	if res.Score != nil {
		t.Errorf("score = %d, want nil for no attempt", *res.Score)
	}
	if res.Total != "Total Score: 0 / 2" {
		t.Errorf("total = %q", res.Total)
	}
	for _, q := range res.Assessment.Questions {
		for _, o := range q.Options {
			if o.IsCorrect {
				t.Fatal("correctness flag leaked through GetResult")
			}
		}
	}
}

func TestGetResultScoredZeroIsStillAttempted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.SubmitAssessment(ctx, submitRequest([]SubmittedAnswer{
		{QuestionID: "q1", Answer: "0"},
		{QuestionID: "q2", Answer: "1"},
	})); err != nil {
		t.Fatalf("submission: %v", err)
	}

	res, err := svc.GetResult(ctx, "a1", "s1")
	if err != nil {
		t.Fatalf("GetResult() error: %v", err)
	}
	if !res.HasDone {
		t.Error("hasDone = false for a student who scored zero")
	}
	if res.Score == nil || *res.Score != 0 {
		t.Errorf("score = %v, want 0", res.Score)
	}
}

func TestGetResultAttempted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.SubmitAssessment(ctx, submitRequest([]SubmittedAnswer{
		{QuestionID: "q1", Answer: "1"},
		{QuestionID: "q2", Answer: "0"},
	})); err != nil {
		t.Fatalf("submission: %v", err)
	}

	res, err := svc.GetResult(ctx, "a1", "s1")
	if err != nil {
		t.Fatalf("GetResult() error: %v", err)
	}
	if !res.HasDone {
		t.Error("hasDone = false after submission")
	}
	if res.Score == nil || *res.Score != 2 {
		t.Errorf("score = %v, want 2", res.Score)
	}
	if res.Total != "Total Score: 2 / 2" {
		t.Errorf("total = %q", res.Total)
	}
}

func TestGetResultUnknownAssessment(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.GetResult(context.Background(), "missing", "s1"); err != util.ErrAssessmentNotFound {
		t.Errorf("expected ErrAssessmentNotFound, got %v", err)
	}
}
