package assessment

// Suggestions is the fixed text the Recommender picks from.
type Suggestions struct {
	Stress    []string
	Mood      []string
	Wellbeing []string
	Gentle    []string // activities when the average sub-score is low
	Intense   []string // activities otherwise
}

// DefaultSuggestions returns the reference suggestion text.
func DefaultSuggestions() Suggestions {
	return Suggestions{
		Stress: []string{
			"Practice deep breathing exercises for 5 minutes, three times a day",
			"Take regular breaks during work hours",
			"Try mindfulness meditation using our guided sessions",
			"Create a calming bedtime routine",
		},
		Mood: []string{
			"Spend at least 30 minutes outside in natural daylight",
			"Connect with a friend or family member daily",
			"Start a gratitude journal",
			"Listen to uplifting music or podcasts",
		},
		Wellbeing: []string{
			"Establish a consistent sleep schedule",
			"Take a 15-minute walk after meals",
			"Join a local community group or class",
			"Practice a hobby you enjoy for at least 30 minutes daily",
		},
		Gentle: []string{
			"Start with gentle stretching exercises",
			"Try a beginner yoga session",
			"Take short walks during breaks",
			"Do light bodyweight exercises at home",
		},
		Intense: []string{
			"Join a fitness class or group activity",
			"Try high-intensity interval training (HIIT)",
			"Go for a 30-minute jog or bike ride",
			"Practice strength training exercises",
		},
	}
}

// Thresholds are the cut-offs applied to sub-score percentages.
//
// Stress uses "above" while mood and wellbeing use "below", and the activity
// rule compares the raw average of sub-scores with different maxima against a
// flat value. Both quirks are kept so stored results render the same way.
type Thresholds struct {
	StressAbove          float64
	MoodBelow            float64
	WellbeingBelow       float64
	ActivityAverageBelow float64
}

// DefaultThresholds returns the reference thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StressAbove:          50,
		MoodBelow:            70,
		WellbeingBelow:       70,
		ActivityAverageBelow: 15,
	}
}

// RecommendationSet holds the suggestion lists for one score. Lists are never
// nil; stress, mood and wellbeing may be empty, activities never is.
type RecommendationSet struct {
	Stress     []string `json:"stress"`
	Mood       []string `json:"mood"`
	Wellbeing  []string `json:"wellbeing"`
	Activities []string `json:"activities"`
}

// Section is a titled, non-empty recommendation list.
type Section struct {
	Key   string
	Title string
	Items []string
}

// Sections returns the non-empty lists in the order stress, mood, wellbeing,
// activities.
func (r RecommendationSet) Sections() []Section {
	all := []Section{
		{Key: "stress", Title: "Stress Management", Items: r.Stress},
		{Key: "mood", Title: "Mood Improvement", Items: r.Mood},
		{Key: "wellbeing", Title: "Overall Wellbeing", Items: r.Wellbeing},
		{Key: "activities", Title: "Recommended Physical Activities", Items: r.Activities},
	}
	sections := make([]Section, 0, len(all))
	for _, s := range all {
		if len(s.Items) > 0 {
			sections = append(sections, s)
		}
	}
	return sections
}

// Percentages are sub-scores expressed against their category maximum.
type Percentages struct {
	Stress    float64 `json:"stress"`
	Mood      float64 `json:"mood"`
	Wellbeing float64 `json:"wellbeing"`
}

// Get returns the percentage for c.
func (p Percentages) Get(c Category) float64 {
	switch c {
	case CategoryStress:
		return p.Stress
	case CategoryMood:
		return p.Mood
	case CategoryWellbeing:
		return p.Wellbeing
	default:
		return 0
	}
}

// Recommender maps a ScoreResult to suggestion lists.
type Recommender struct {
	max         map[Category]int
	suggestions Suggestions
	thresholds  Thresholds
}

// RecommenderOption customises a Recommender.
type RecommenderOption func(*Recommender)

// WithSuggestions replaces the suggestion text.
func WithSuggestions(s Suggestions) RecommenderOption {
	return func(r *Recommender) {
		r.suggestions = s
	}
}

// WithThresholds replaces the thresholds.
func WithThresholds(t Thresholds) RecommenderOption {
	return func(r *Recommender) {
		r.thresholds = t
	}
}

// Triggers reports whether pct for c is on the side of its threshold that
// produces suggestions.
func (t Thresholds) Triggers(c Category, pct float64) bool {
	switch c {
	case CategoryStress:
		return pct > t.StressAbove
	case CategoryMood:
		return pct < t.MoodBelow
	case CategoryWellbeing:
		return pct < t.WellbeingBelow
	}
	return false
}

// NewRecommender creates a Recommender using bank's category maxima.
func NewRecommender(bank *Bank, opts ...RecommenderOption) *Recommender {
	r := &Recommender{
		max:         make(map[Category]int, len(Categories)),
		suggestions: DefaultSuggestions(),
		thresholds:  DefaultThresholds(),
	}
	for _, c := range Categories {
		r.max[c] = bank.CategoryMax(c)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Thresholds returns the thresholds r applies.
func (r *Recommender) Thresholds() Thresholds {
	return r.thresholds
}

// Percentages returns 100 * subscore / categoryMax for each category.
// A category with no reachable points reports 0.
func (r *Recommender) Percentages(score ScoreResult) Percentages {
	return Percentages{
		Stress:    percentOf(score.Stress, r.max[CategoryStress]),
		Mood:      percentOf(score.Mood, r.max[CategoryMood]),
		Wellbeing: percentOf(score.Wellbeing, r.max[CategoryWellbeing]),
	}
}

func percentOf(value, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(value) / float64(max) * 100
}

// Recommend applies each category rule independently.
func (r *Recommender) Recommend(score ScoreResult) RecommendationSet {
	pct := r.Percentages(score)
	set := RecommendationSet{
		Stress:    []string{},
		Mood:      []string{},
		Wellbeing: []string{},
	}

	if r.thresholds.Triggers(CategoryStress, pct.Stress) {
		set.Stress = clone(r.suggestions.Stress)
	}
	if r.thresholds.Triggers(CategoryMood, pct.Mood) {
		set.Mood = clone(r.suggestions.Mood)
	}
	if r.thresholds.Triggers(CategoryWellbeing, pct.Wellbeing) {
		set.Wellbeing = clone(r.suggestions.Wellbeing)
	}

	if score.Average() < r.thresholds.ActivityAverageBelow {
		set.Activities = clone(r.suggestions.Gentle)
	} else {
		set.Activities = clone(r.suggestions.Intense)
	}

	return set
}

func clone(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
