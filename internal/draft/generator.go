// Package draft asks an LLM for new quiz questions on a topic. Every drafted
// record goes through the bank codec, so a draft that reaches the caller
// obeys the same rules as a question typed into the editor.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/kviz/internal/codec"
	"github.com/abhisek/kviz/internal/llm"
	"github.com/abhisek/kviz/internal/question"
)

// ErrNoDrafts is returned when the model produced no usable question.
var ErrNoDrafts = errors.New("draft: no usable questions in LLM response")

// Generator produces question drafts.
type Generator interface {
	Generate(ctx context.Context, input Input) (*Batch, error)
}

// Input describes what to draft.
type Input struct {
	// Topic is the subject of the questions, e.g. "European rivers".
	Topic string

	// Count is the number of questions wanted, clamped to [1, MaxCount].
	Count int

	// Existing holds prompts already in the bank. They are listed in the
	// prompt and drafts repeating them are rejected.
	Existing []string
}

// Batch is the outcome of one Generate call.
type Batch struct {
	Questions []question.Question
	Rejected  []Rejection
	Usage     llm.Usage
}

// Rejection records a drafted record that did not make it into the batch.
type Rejection struct {
	Record int
	Err    error
}

func (r Rejection) Error() string { return fmt.Sprintf("draft %d: %v", r.Record, r.Err) }

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// draftOutput is the raw LLM response before decoding.
type draftOutput struct {
	Questions []codec.Record `json:"questions"`
}

// Generate asks for input.Count questions and returns those that decode
// and pass every validator. It fails only when none do.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*Batch, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeDraft)
	input.Count = clampCount(input.Count)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input, g.config)),
		Schema:      DraftSchema,
		MaxTokens:   g.config.MaxTokensPerQuestion * input.Count,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw draftOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	batch := &Batch{Usage: resp.Usage}
	seen := newTextSet(input.Existing)

	for i, rec := range raw.Questions {
		if len(batch.Questions) == input.Count {
			break
		}

		q, err := codec.DecodeRecord(dropPlaceholders(rec))
		if err != nil {
			batch.Rejected = append(batch.Rejected, Rejection{Record: i, Err: err})
			continue
		}
		if verr := g.validate(q); verr != nil {
			batch.Rejected = append(batch.Rejected, Rejection{Record: i, Err: verr})
			continue
		}
		if !seen.add(q.Text()) {
			batch.Rejected = append(batch.Rejected, Rejection{Record: i, Err: ErrDuplicate})
			continue
		}
		batch.Questions = append(batch.Questions, q)
	}

	if len(batch.Questions) == 0 {
		return batch, ErrNoDrafts
	}
	return batch, nil
}

// dropPlaceholders clears the fields the record's tip does not use. The
// draft schema forces the model to fill every field.
func dropPlaceholders(rec codec.Record) codec.Record {
	if rec.Tip == nil {
		return rec
	}
	switch question.Kind(*rec.Tip) {
	case question.KindTrueFalse:
		rec.Options = nil
		rec.CorrectIndex = nil
	case question.KindMultipleChoice:
		rec.Correct = nil
	}
	return rec
}

func (g *LLMGenerator) validate(q question.Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

func clampCount(n int) int {
	return max(1, min(n, MaxCount))
}
