package question

// SampleQuestions returns the built-in starter questions loaded into an empty bank.
func SampleQuestions() []Question {
	return []Question{
		mustTrueFalse("The Earth is a flat plate.", false),
		mustTrueFalse("Python is a programming language.", true),
		mustMultipleChoice("What is the capital of Croatia?", []string{"Zagreb", "Split", "Rijeka", "Osijek"}, 0),
		mustMultipleChoice("What is 2+2?", []string{"3", "4", "5", "22"}, 1),
	}
}

func mustTrueFalse(text string, correct bool) Question {
	q, err := NewTrueFalse(text, correct)
	if err != nil {
		panic(err)
	}
	return q
}

func mustMultipleChoice(text string, options []string, correctIndex int) Question {
	q, err := NewMultipleChoice(text, options, correctIndex)
	if err != nil {
		panic(err)
	}
	return q
}
