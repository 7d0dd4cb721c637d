package assessment

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateInProgress means questions remain to be answered.
	StateInProgress State = iota
	// StateComplete means the last question was answered and scored.
	StateComplete
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome is what a completed session produces.
type Outcome struct {
	Responses       ResponseSet       `json:"responses"`
	Scores          ScoreResult       `json:"scores"`
	Recommendations RecommendationSet `json:"recommendations"`
	CompletedAt     time.Time         `json:"completed_at"`
}

// CompletionHook receives the outcome when a session completes, typically to
// persist it.
type CompletionHook func(Outcome) error

// Session walks a Bank one question at a time. The cursor only moves forward
// and only past answered questions; a restart is a new Session.
type Session struct {
	bank        *Bank
	scorer      *Scorer
	recommender *Recommender
	hook        CompletionHook
	now         func() time.Time

	cursor    int
	responses ResponseSet
	state     State
	outcome   *Outcome
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithCompletionHook registers a hook run once on completion and again on
// each Persist call.
func WithCompletionHook(h CompletionHook) SessionOption {
	return func(s *Session) {
		s.hook = h
	}
}

// WithRecommender overrides the default Recommender for the bank.
func WithRecommender(r *Recommender) SessionOption {
	return func(s *Session) {
		s.recommender = r
	}
}

// WithClock overrides the time source used for Outcome.CompletedAt.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession starts a session at the first question with no answers.
func NewSession(bank *Bank, opts ...SessionOption) *Session {
	s := &Session{
		bank:      bank,
		scorer:    NewScorer(bank),
		now:       time.Now,
		responses: make(ResponseSet, bank.Len()),
		state:     StateInProgress,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recommender == nil {
		s.recommender = NewRecommender(bank)
	}
	return s
}

// Bank returns the bank the session walks.
func (s *Session) Bank() *Bank {
	return s.bank
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// IsComplete reports whether the last question has been answered and scored.
func (s *Session) IsComplete() bool {
	return s.state == StateComplete
}

// Cursor returns the 0-based position of the current question.
func (s *Session) Cursor() int {
	return s.cursor
}

// Progress returns (cursor+1)/N as a percentage, or 100 once complete.
func (s *Session) Progress() float64 {
	if s.state == StateComplete {
		return 100
	}
	return float64(s.cursor+1) / float64(s.bank.Len()) * 100
}

// Responses returns a copy of the answers recorded so far.
func (s *Session) Responses() ResponseSet {
	return s.responses.Clone()
}

// CurrentQuestion returns the question under the cursor.
func (s *Session) CurrentQuestion() (Question, error) {
	if s.state == StateComplete {
		return Question{}, &InputError{Err: ErrSessionComplete}
	}
	q, _ := s.bank.At(s.cursor)
	return q, nil
}

// Answer returns the recorded option index for the current question.
func (s *Session) Answer() (int, bool) {
	q, err := s.CurrentQuestion()
	if err != nil {
		return 0, false
	}
	idx, ok := s.responses[q.ID]
	return idx, ok
}

// RecordAnswer records optionIndex for the current question, replacing any
// earlier answer. Out-of-range indices are rejected, never clamped.
func (s *Session) RecordAnswer(optionIndex int) error {
	q, err := s.CurrentQuestion()
	if err != nil {
		return err
	}
	if !q.ValidIndex(optionIndex) {
		return &InputError{
			QuestionID: q.ID,
			Err:        ErrOptionOutOfRange,
			Detail:     fmt.Sprintf("got %d, want 0..%d", optionIndex, q.MaxIndex()),
		}
	}
	s.responses[q.ID] = optionIndex
	return nil
}

// RecordAnswerText records the option whose label matches text.
func (s *Session) RecordAnswerText(text string) error {
	q, err := s.CurrentQuestion()
	if err != nil {
		return err
	}
	idx, ok := q.OptionIndex(text)
	if !ok {
		return &InputError{QuestionID: q.ID, Err: ErrUnknownOption, Detail: text}
	}
	return s.RecordAnswer(idx)
}

// Advance moves to the next question and reports whether one remains.
// It fails without moving when the current question is unanswered. Advancing
// from the last question completes the session, computes the Outcome and runs
// the completion hook; a hook failure is returned as a StorageError but the
// session stays complete and Persist can retry it.
func (s *Session) Advance() (bool, error) {
	q, err := s.CurrentQuestion()
	if err != nil {
		return false, err
	}
	if _, ok := s.responses[q.ID]; !ok {
		return true, &InputError{QuestionID: q.ID, Err: ErrUnanswered}
	}

	if s.cursor < s.bank.Len()-1 {
		s.cursor++
		return true, nil
	}

	s.complete()
	return false, s.Persist()
}

func (s *Session) complete() {
	responses := s.responses.Clone()
	scores := s.scorer.Score(responses)
	s.outcome = &Outcome{
		Responses:       responses,
		Scores:          scores,
		Recommendations: s.recommender.Recommend(scores),
		CompletedAt:     s.now(),
	}
	s.state = StateComplete
}

// Outcome returns the result of a completed session.
func (s *Session) Outcome() (Outcome, error) {
	if s.outcome == nil {
		return Outcome{}, &InputError{Err: ErrNotComplete}
	}
	out := *s.outcome
	out.Responses = out.Responses.Clone()
	return out, nil
}

// Persist runs the completion hook with the outcome. It is a no-op when no
// hook is registered.
func (s *Session) Persist() error {
	out, err := s.Outcome()
	if err != nil {
		return err
	}
	if s.hook == nil {
		return nil
	}
	if err := s.hook(out); err != nil {
		if IsStorageError(err) {
			return err
		}
		return &StorageError{Op: "persist", Err: err}
	}
	return nil
}
