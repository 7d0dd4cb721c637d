package assessment

// DefaultQuestions returns the reference eight-question bank. Options are
// ordered best first; do not reorder them, scoring depends on position.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:      1,
			Text:    "Over the past 2 weeks, how often have you felt down, depressed, or hopeless?",
			Options: []string{"Not at all", "Several days", "More than half the days", "Nearly every day"},
		},
		{
			ID:      2,
			Text:    "How often do you feel stressed or overwhelmed?",
			Options: []string{"Rarely", "Sometimes", "Often", "Almost always"},
		},
		{
			ID:      3,
			Text:    "How would you rate your sleep quality over the past week?",
			Options: []string{"Very good", "Good", "Poor", "Very poor"},
		},
		{
			ID:      4,
			Text:    "How often do you engage in physical activity or exercise?",
			Options: []string{"Daily", "Few times a week", "Once a week", "Rarely"},
		},
		{
			ID:      5,
			Text:    "How would you describe your energy levels throughout the day?",
			Options: []string{"Consistently high", "Mostly stable", "Fluctuating", "Usually low"},
		},
		{
			ID:      6,
			Text:    "How often do you feel anxious or worried?",
			Options: []string{"Rarely", "Sometimes", "Often", "Almost always"},
		},
		{
			ID:      7,
			Text:    "How satisfied are you with your social connections and relationships?",
			Options: []string{"Very satisfied", "Satisfied", "Somewhat satisfied", "Not satisfied"},
		},
		{
			ID:      8,
			Text:    "How well can you concentrate on tasks?",
			Options: []string{"Very well", "Well", "With difficulty", "With great difficulty"},
		},
	}
}

// DefaultCategories returns the reference question-to-category assignment.
func DefaultCategories() map[int]Category {
	return map[int]Category{
		1: CategoryMood,
		2: CategoryStress,
		3: CategoryWellbeing,
		4: CategoryWellbeing,
		5: CategoryMood,
		6: CategoryStress,
		7: CategoryWellbeing,
		8: CategoryMood,
	}
}

// DefaultBank returns the validated reference bank.
func DefaultBank() *Bank {
	b, err := NewBank(DefaultQuestions(), DefaultCategories())
	if err != nil {
		// The reference data is compiled in; failing here is a programming error.
		panic(err)
	}
	return b
}
