package assessment

// ResponseSet maps question id to the selected option index.
type ResponseSet map[int]int

// Clone returns an independent copy of the response set.
func (r ResponseSet) Clone() ResponseSet {
	out := make(ResponseSet, len(r))
	for id, idx := range r {
		out[id] = idx
	}
	return out
}

// ScoreResult holds the three sub-scores. It is the record persisted under
// the results key, so the JSON field names are part of the storage format.
type ScoreResult struct {
	Stress    int `json:"stress"`
	Mood      int `json:"mood"`
	Wellbeing int `json:"wellbeing"`
}

// Get returns the sub-score for c.
func (r ScoreResult) Get(c Category) int {
	switch c {
	case CategoryStress:
		return r.Stress
	case CategoryMood:
		return r.Mood
	case CategoryWellbeing:
		return r.Wellbeing
	default:
		return 0
	}
}

func (r *ScoreResult) add(c Category, n int) {
	switch c {
	case CategoryStress:
		r.Stress += n
	case CategoryMood:
		r.Mood += n
	case CategoryWellbeing:
		r.Wellbeing += n
	}
}

// Average returns the mean of the three raw sub-scores.
func (r ScoreResult) Average() float64 {
	return float64(r.Stress+r.Mood+r.Wellbeing) / 3
}

// Scorer turns a response set into sub-scores for a fixed bank.
type Scorer struct {
	bank *Bank
}

// NewScorer creates a Scorer bound to bank.
func NewScorer(bank *Bank) *Scorer {
	return &Scorer{bank: bank}
}

// Contribution returns what answering index on question id adds to its
// category. The scale is reversed: index 0 yields the question's MaxIndex,
// the last option yields 0. Unknown ids and out-of-range indices yield 0.
func (s *Scorer) Contribution(id, index int) int {
	q, ok := s.bank.Question(id)
	if !ok || !q.ValidIndex(index) {
		return 0
	}
	return q.MaxIndex() - index
}

// Score sums contributions per category. Unanswered questions contribute 0.
func (s *Scorer) Score(responses ResponseSet) ScoreResult {
	var result ScoreResult
	for id, index := range responses {
		c, ok := s.bank.CategoryOf(id)
		if !ok {
			continue
		}
		result.add(c, s.Contribution(id, index))
	}
	return result
}
