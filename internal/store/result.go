package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var quizResultColumns = []string{
	"id", "sequence", "timestamp", "session_id", "bank_path", "player_name",
	"total", "correct", "unanswered", "percentage", "finished_at",
}

type resultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *resultRepo) Append(ctx context.Context, data QuizResultData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(QuizResultsTable.Name).
		Columns(quizResultColumns[1:]...).
		Values(
			seqNum,
			time.Now().UTC(),
			data.SessionID,
			data.BankPath,
			data.PlayerName,
			data.Total,
			data.Correct,
			data.Unanswered,
			data.Percentage,
			data.FinishedAt.UTC(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}
	return nil
}

func (r *resultRepo) Recent(ctx context.Context, limit int) ([]QuizResult, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(quizResultColumns...).
		From(entsql.Table(QuizResultsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []QuizResult
	for rows.Next() {
		var qr QuizResult
		if err := rows.Scan(
			&qr.ID, &qr.Sequence, &qr.Timestamp, &qr.SessionID, &qr.BankPath, &qr.PlayerName,
			&qr.Total, &qr.Correct, &qr.Unanswered, &qr.Percentage, &qr.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		out = append(out, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}
	return out, nil
}
