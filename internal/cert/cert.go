// Package cert renders a finished quiz result as a one-page PDF certificate.
package cert

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/session"
)

// ErrNoResult is returned when there is no finished result to certify.
var ErrNoResult = errors.New("cert: session has no result")

// Data is what goes on the certificate.
type Data struct {
	Name   string
	Bank   string
	Result *session.Result
}

// maxRows bounds the breakdown table so the certificate stays one page.
const maxRows = 15

// GeneratePDF renders the certificate and returns the PDF bytes.
func GeneratePDF(data Data) ([]byte, error) {
	if data.Result == nil {
		return nil, ErrNoResult
	}
	res := data.Result

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("kviz certificate", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	subtitle := "kviz knowledge quiz"
	if data.Bank != "" {
		subtitle += " - " + data.Bank
	}
	pdf.CellFormat(0, 9, tr(subtitle), "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, tr(displayName(data.Name)), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Correct answers: %d/%d | Percentage: %.1f%% | Date: %s",
			res.Correct, res.Total, res.Percentage, res.FinishedAt.Format(time.DateOnly)),
		"", 1, "C", false, 0, "")
	if res.Unanswered > 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("%d question(s) left unanswered", res.Unanswered), "", 1, "C", false, 0, "")
	}

	if len(res.Items) > 0 {
		pdf.Ln(4)
		breakdown(pdf, tr, res.Items)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Session ID: "+res.SessionID, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}

func breakdown(pdf *fpdf.Fpdf, tr func(string) string, items []session.Item) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(185, 7, "Question", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Your answer", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "Result", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i, it := range items {
		if i == maxRows {
			pdf.CellFormat(277, 7, fmt.Sprintf("... and %d more", len(items)-maxRows), "1", 1, "C", false, 0, "")
			break
		}
		answer, verdict := "-", "Unanswered"
		if it.Answered {
			answer = question.AnswerLabel(it.Question, it.Answer)
			verdict = "Wrong"
			if it.Correct {
				verdict = "Correct"
			}
		}
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(185, 7, tr(truncate(it.Question.Text(), 95)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, answer, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, verdict, "1", 1, "C", false, 0, "")
	}
}

func displayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Anonymous"
	}
	return truncate(name, 60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "..."
}
