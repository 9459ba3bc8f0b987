// Package codec converts between question collections and a hierarchical
// document of tagged records.
//
// Each record carries a "tip" discriminator ("TF" or "MCQ") and exactly the
// fields of its variant:
//
//	TF:  tip, text, tocan
//	MCQ: tip, text, opcije (4 strings), tocan_index (0-3)
//
// Decoding maps the tag to the matching question constructor, so every
// decoded question has passed the same validation as one built by hand.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/kviz/internal/question"
)

// Record field names.
const (
	FieldTip          = "tip"
	FieldText         = "text"
	FieldLegacyText   = "tekst"
	FieldCorrect      = "tocan"
	FieldOptions      = "opcije"
	FieldCorrectIndex = "tocan_index"
)

// Record is one serialized question. Pointer fields distinguish a missing
// key from a zero value. Unknown keys are ignored on decode; keys match
// case-sensitively in both syntaxes.
//
// LegacyText accepts files that spell the prompt key "tekst"; it is read
// only when "text" is absent and is never written.
type Record struct {
	Tip          *string  `json:"tip,omitempty" yaml:"tip,omitempty"`
	Text         *string  `json:"text,omitempty" yaml:"text,omitempty"`
	LegacyText   *string  `json:"tekst,omitempty" yaml:"tekst,omitempty"`
	Correct      *bool    `json:"tocan,omitempty" yaml:"tocan,omitempty"`
	Options      []string `json:"opcije,omitempty" yaml:"opcije,omitempty"`
	CorrectIndex *int     `json:"tocan_index,omitempty" yaml:"tocan_index,omitempty"`
}

// UnmarshalJSON reads the record keys exactly as spelled in the document
// format. encoding/json would otherwise match "TIP" or "Text" to the tags.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var rec Record
	for _, f := range []struct {
		key string
		dst any
	}{
		{FieldTip, &rec.Tip},
		{FieldText, &rec.Text},
		{FieldLegacyText, &rec.LegacyText},
		{FieldCorrect, &rec.Correct},
		{FieldOptions, &rec.Options},
		{FieldCorrectIndex, &rec.CorrectIndex},
	} {
		raw, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return &FormatError{Record: -1, Field: f.key, Message: "malformed field " + f.key, Err: err}
		}
	}
	*r = rec
	return nil
}

// Document is an ordered list of records.
type Document []Record

// FormatError reports a malformed document or record.
type FormatError struct {
	Record  int    // Record index, -1 for document-level failures
	Field   string // Offending field, if any
	Message string
	Err     error // Underlying cause (e.g. *question.ValidationError)
}

func (e *FormatError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Record < 0 {
		return msg
	}
	return fmt.Sprintf("record %d: %s", e.Record, msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Encode converts questions to a document, one record per question, in order.
func Encode(qs []question.Question) Document {
	doc := make(Document, 0, len(qs))
	for _, q := range qs {
		doc = append(doc, EncodeQuestion(q))
	}
	return doc
}

// EncodeQuestion converts a single question to its record.
func EncodeQuestion(q question.Question) Record {
	text := q.Text()
	switch q := q.(type) {
	case question.TrueFalse:
		tip := string(question.KindTrueFalse)
		correct := q.Correct()
		return Record{Tip: &tip, Text: &text, Correct: &correct}
	case question.MultipleChoice:
		tip := string(question.KindMultipleChoice)
		idx := q.CorrectIndex()
		return Record{Tip: &tip, Text: &text, Options: q.Options(), CorrectIndex: &idx}
	default:
		panic("codec: unknown question variant")
	}
}

// Decode converts a document to questions. A record carrying a field of the
// other variant is rejected. It is all-or-nothing: the first
// bad record fails the whole decode and no questions are returned.
func Decode(doc Document) ([]question.Question, error) {
	out := make([]question.Question, 0, len(doc))
	for i, rec := range doc {
		q, err := decodeRecord(i, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// DecodeRecord converts a single record to a question.
func DecodeRecord(rec Record) (question.Question, error) {
	return decodeRecord(-1, rec)
}

func decodeRecord(i int, rec Record) (question.Question, error) {
	if rec.Tip == nil {
		return nil, &FormatError{Record: i, Field: FieldTip, Message: "unknown question type"}
	}
	text := rec.Text
	if text == nil {
		text = rec.LegacyText
	}
	if text == nil {
		return nil, missing(i, FieldText)
	}

	var (
		q   question.Question
		err error
	)
	switch question.Kind(*rec.Tip) {
	case question.KindTrueFalse:
		if rec.Options != nil {
			return nil, notAllowed(i, FieldOptions, question.KindTrueFalse)
		}
		if rec.CorrectIndex != nil {
			return nil, notAllowed(i, FieldCorrectIndex, question.KindTrueFalse)
		}
		if rec.Correct == nil {
			return nil, missing(i, FieldCorrect)
		}
		q, err = question.NewTrueFalse(*text, *rec.Correct)
	case question.KindMultipleChoice:
		if rec.Correct != nil {
			return nil, notAllowed(i, FieldCorrect, question.KindMultipleChoice)
		}
		if rec.Options == nil {
			return nil, missing(i, FieldOptions)
		}
		if rec.CorrectIndex == nil {
			return nil, missing(i, FieldCorrectIndex)
		}
		q, err = question.NewMultipleChoice(*text, rec.Options, *rec.CorrectIndex)
	default:
		return nil, &FormatError{
			Record:  i,
			Field:   FieldTip,
			Message: fmt.Sprintf("unknown question type %q", *rec.Tip),
		}
	}
	if err != nil {
		var verr *question.ValidationError
		field := ""
		if errors.As(err, &verr) {
			field = verr.Field
		}
		return nil, &FormatError{Record: i, Field: field, Message: "invalid question", Err: err}
	}
	return q, nil
}

func notAllowed(i int, field string, kind question.Kind) *FormatError {
	return &FormatError{Record: i, Field: field, Message: fmt.Sprintf("field not allowed for %s: %s", kind, field)}
}

func missing(i int, field string) *FormatError {
	return &FormatError{Record: i, Field: field, Message: "missing field: " + field}
}
