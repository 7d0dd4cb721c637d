// Package assessment implements the mental health assessment: a fixed bank of
// multiple-choice questions, a session that collects one answer per question,
// and the pure scoring and recommendation functions applied on completion.
//
// Options are ordered from least to most severe. Scoring is reversed: an
// answer at index i on a question with n options contributes (n-1)-i, so the
// first option contributes the most and the last contributes nothing.
package assessment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Category groups questions into one of the three sub-scores.
type Category string

const (
	CategoryStress    Category = "stress"
	CategoryMood      Category = "mood"
	CategoryWellbeing Category = "wellbeing"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryStress, CategoryMood, CategoryWellbeing}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStress, CategoryMood, CategoryWellbeing:
		return true
	default:
		return false
	}
}

// Question is a single multiple-choice prompt.
type Question struct {
	ID      int      `json:"id" validate:"gt=0"`
	Text    string   `json:"text" validate:"required"`
	Options []string `json:"options" validate:"min=2,dive,required"`
}

// MaxIndex returns the highest valid option index.
func (q Question) MaxIndex() int {
	return len(q.Options) - 1
}

// ValidIndex reports whether idx addresses one of the question's options.
func (q Question) ValidIndex(idx int) bool {
	return idx >= 0 && idx < len(q.Options)
}

// OptionIndex resolves an option label to its index (case-insensitive).
func (q Question) OptionIndex(label string) (int, bool) {
	label = strings.TrimSpace(label)
	for i, opt := range q.Options {
		if strings.EqualFold(opt, label) {
			return i, true
		}
	}
	return -1, false
}

// Bank is an immutable, validated question bank together with its
// question-to-category assignment.
type Bank struct {
	questions  []Question
	categories map[int]Category
	positions  map[int]int
}

var validate = validator.New()

// NewBank validates questions and categories and returns an immutable Bank.
// Question ids must run 1..N in order, and every id must be assigned to
// exactly one category.
func NewBank(questions []Question, categories map[int]Category) (*Bank, error) {
	if len(questions) == 0 {
		return nil, &BankError{Message: "no questions"}
	}

	b := &Bank{
		questions:  make([]Question, len(questions)),
		categories: make(map[int]Category, len(categories)),
		positions:  make(map[int]int, len(questions)),
	}

	for i, q := range questions {
		if err := validate.Struct(q); err != nil {
			return nil, &BankError{QuestionID: q.ID, Message: describeValidation(err)}
		}
		if q.ID != i+1 {
			return nil, &BankError{QuestionID: q.ID, Message: fmt.Sprintf("expected id %d at position %d", i+1, i)}
		}
		opts := make([]string, len(q.Options))
		copy(opts, q.Options)
		b.questions[i] = Question{ID: q.ID, Text: q.Text, Options: opts}
		b.positions[q.ID] = i
	}

	for id, c := range categories {
		if _, ok := b.positions[id]; !ok {
			return nil, &BankError{QuestionID: id, Message: "category assigned to unknown question"}
		}
		if !c.Valid() {
			return nil, &BankError{QuestionID: id, Message: fmt.Sprintf("unknown category %q", c)}
		}
		b.categories[id] = c
	}

	for _, q := range b.questions {
		if _, ok := b.categories[q.ID]; !ok {
			return nil, &BankError{QuestionID: q.ID, Message: "question has no category"}
		}
	}

	return b, nil
}

// describeValidation flattens validator errors into one readable message.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// At returns the question at position pos (0-based).
func (b *Bank) At(pos int) (Question, bool) {
	if pos < 0 || pos >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[pos], true
}

// Question looks a question up by id.
func (b *Bank) Question(id int) (Question, bool) {
	pos, ok := b.positions[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[pos], true
}

// Questions returns the questions in bank order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// CategoryOf returns the category a question id is assigned to.
func (b *Bank) CategoryOf(id int) (Category, bool) {
	c, ok := b.categories[id]
	return c, ok
}

// QuestionsIn returns the ids assigned to c, in bank order.
func (b *Bank) QuestionsIn(c Category) []int {
	var ids []int
	for _, q := range b.questions {
		if b.categories[q.ID] == c {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// CategoryMax returns the highest sub-score reachable in c.
func (b *Bank) CategoryMax(c Category) int {
	max := 0
	for _, q := range b.questions {
		if b.categories[q.ID] == c {
			max += q.MaxIndex()
		}
	}
	return max
}
