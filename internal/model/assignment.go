package model

import "time"

type Assignment struct {
	ID           string    `bson:"_id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	CourseID     string    `bson:"course_id" json:"courseId"`
	InstructorID string    `bson:"instructor_id" json:"instructorId"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

type AssignmentSubmission struct {
	StudentID   string    `bson:"student_id" json:"studentId"`
	URL         string    `bson:"url" json:"url"`
	StorageID   string    `bson:"storage_id" json:"storageId"`
	SubmittedAt time.Time `bson:"submitted_at" json:"submittedAt"`
}

// SubmittedAssignment mirrors AnsweredAssessment: one document per assignment
// holding the de-duplicated student set and one submission entry per member.
type SubmittedAssignment struct {
	AssignmentID string                 `bson:"_id" json:"assignmentId"`
	Title        string                 `bson:"title" json:"title"`
	CourseID     string                 `bson:"course_id" json:"courseId"`
	InstructorID string                 `bson:"instructor_id" json:"instructorId"`
	StudentIDs   []string               `bson:"student_ids" json:"studentIds"`
	Students     []AssignmentSubmission `bson:"students" json:"students"`
	CreatedAt    time.Time              `bson:"created_at" json:"createdAt"`
}
