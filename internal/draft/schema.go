package draft

import (
	"github.com/abhisek/kviz/internal/codec"
	"github.com/abhisek/kviz/internal/llm"
	"github.com/abhisek/kviz/internal/question"
)

// DraftSchema is the response shape requested from the model. Every record
// carries all variant fields so the schema stays valid under strict
// structured-output modes; the generator drops the placeholder fields of the
// other variant before decoding.
var DraftSchema = &llm.Schema{
	Name:        "question-drafts",
	Description: "A batch of quiz questions, each true/false or multiple choice",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": MaxCount,
				"items":    recordSchema,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		codec.FieldTip: map[string]any{
			"type":        "string",
			"enum":        []any{string(question.KindTrueFalse), string(question.KindMultipleChoice)},
			"description": "TF for a true/false statement, MCQ for a four-option question",
		},
		codec.FieldText: map[string]any{
			"type":        "string",
			"description": "The question or statement shown to the player",
		},
		codec.FieldCorrect: map[string]any{
			"type":        "boolean",
			"description": "TF only: whether the statement is true. Use false for MCQ.",
		},
		codec.FieldOptions: map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"minItems":    question.OptionCount,
			"maxItems":    question.OptionCount,
			"description": "MCQ only: exactly four distinct options. Use four empty strings for TF.",
		},
		codec.FieldCorrectIndex: map[string]any{
			"type":        "integer",
			"minimum":     0,
			"maximum":     question.OptionCount - 1,
			"description": "MCQ only: index of the correct option. Use 0 for TF.",
		},
	},
	"required": []any{
		codec.FieldTip, codec.FieldText, codec.FieldCorrect,
		codec.FieldOptions, codec.FieldCorrectIndex,
	},
	"additionalProperties": false,
}
