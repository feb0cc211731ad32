package model

import "time"

type StudentResult struct {
	StudentID  string    `bson:"student_id" json:"studentId"`
	Score      int       `bson:"score" json:"score"`
	AnsweredAt time.Time `bson:"answered_at" json:"answeredAt"`
}

// AnsweredAssessment aggregates every student's result for one assessment in
// a single document keyed by the assessment id. Invariant: each member of
// StudentIDs has exactly one entry in Students; a resubmission updates that
// entry in place.
type AnsweredAssessment struct {
	AssessmentID string          `bson:"_id" json:"assessmentId"`
	Title        string          `bson:"title" json:"title"`
	CourseID     string          `bson:"course_id" json:"courseId"`
	InstructorID string          `bson:"instructor_id" json:"instructorId"`
	StudentIDs   []string        `bson:"student_ids" json:"studentIds"`
	Students     []StudentResult `bson:"students" json:"students"`
	CreatedAt    time.Time       `bson:"created_at" json:"createdAt"`
}

// HasStudent reports membership in the de-duplicated student set.
func (a *AnsweredAssessment) HasStudent(studentID string) bool {
	for _, id := range a.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// ResultFor returns the stored result entry for a student, or nil when the
// student has not attempted the assessment.
func (a *AnsweredAssessment) ResultFor(studentID string) *StudentResult {
	for i := range a.Students {
		if a.Students[i].StudentID == studentID {
			return &a.Students[i]
		}
	}
	return nil
}
