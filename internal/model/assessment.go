package model

import "time"

// Option's position in the question's slice is its implicit index; submitted
// answers reference that index as a string. Reordering options after authoring
// silently invalidates earlier submissions, so questions are immutable once
// created.
type Option struct {
	Text      string `bson:"option" json:"option"`
	IsCorrect bool   `bson:"is_correct,omitempty" json:"isCorrect,omitempty"`
}

type Question struct {
	ID      string   `bson:"id" json:"id"`
	Text    string   `bson:"question" json:"question"`
	Options []Option `bson:"options" json:"options"`
}

type Assessment struct {
	ID           string     `bson:"_id" json:"id"`
	Title        string     `bson:"title" json:"title"`
	Questions    []Question `bson:"questions" json:"questions"`
	CourseID     string     `bson:"course_id" json:"courseId"`
	InstructorID string     `bson:"instructor_id" json:"instructorId"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Sanitized returns a copy safe to hand to students: correctness flags are
// stripped from every option.
func (a *Assessment) Sanitized() *Assessment {
	out := *a
	out.Questions = make([]Question, len(a.Questions))
	for i, q := range a.Questions {
		sq := q
		sq.Options = make([]Option, len(q.Options))
		for j, o := range q.Options {
			sq.Options[j] = Option{Text: o.Text}
		}
		out.Questions[i] = sq
	}
	return &out
}
