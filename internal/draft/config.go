package draft

// MaxCount caps the number of questions requested in one call.
const MaxCount = 20

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every decoded draft; the first failure
	// rejects it.
	Validators []Validator

	// MaxTokensPerQuestion is multiplied by the requested count to size
	// the response budget.
	MaxTokensPerQuestion int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxExisting is the maximum number of bank prompts listed in the
	// prompt for deduplication.
	MaxExisting int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&DistinctOptionsValidator{},
			&LengthValidator{MaxText: 300, MaxOption: 120},
		},
		MaxTokensPerQuestion: 200,
		Temperature:          0.8,
		MaxExisting:          30,
	}
}
