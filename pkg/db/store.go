package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// dateLayout is how iteration days are persisted; comparison is by day only.
const dateLayout = "2006-01-02"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
)

// DBExecutor is an interface that allows functions to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// builder produces SQLite-flavoured statements.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// isUniqueConstraintErr returns true when the error indicates a unique/constraint violation
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}

// NormalizeWord lowercases and trims a word the way it is stored.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// CreateWord inserts a new word and returns its id.
// A word that already exists (case-insensitively) yields ErrAlreadyExists.
func CreateWord(ctx context.Context, db DBExecutor, word string) (int64, error) {
	w := NormalizeWord(word)
	if w == "" {
		return 0, fmt.Errorf("%w: word must be non-empty", ErrValidation)
	}
	res, err := db.ExecContext(ctx, `INSERT INTO word (word) VALUES (?)`, w)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return 0, fmt.Errorf("word %q: %w", w, ErrAlreadyExists)
		}
		return 0, fmt.Errorf("insert word: %w", err)
	}
	return res.LastInsertId()
}

// SetPronunciation attaches a pronunciation to an existing word.
func SetPronunciation(ctx context.Context, db DBExecutor, wordID int64, pronunciation string) error {
	if wordID <= 0 {
		return fmt.Errorf("%w: wordID must be positive", ErrValidation)
	}
	res, err := db.ExecContext(ctx, `UPDATE word SET pronunciation = ? WHERE id = ?`,
		strings.ToLower(strings.TrimSpace(pronunciation)), wordID)
	if err != nil {
		return fmt.Errorf("update pronunciation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("word %d: %w", wordID, ErrNotFound)
	}
	return nil
}

// AddTranslation stores one accepted translation for a word.
func AddTranslation(ctx context.Context, db DBExecutor, wordID int64, translation string) (int64, error) {
	if wordID <= 0 {
		return 0, fmt.Errorf("%w: wordID must be positive", ErrValidation)
	}
	t := strings.ToLower(strings.TrimSpace(translation))
	if t == "" {
		return 0, fmt.Errorf("%w: translation must be non-empty", ErrValidation)
	}
	res, err := db.ExecContext(ctx, `INSERT INTO translation (word_id, translation) VALUES (?, ?)`, wordID, t)
	if err != nil {
		return 0, fmt.Errorf("insert translation: %w", err)
	}
	return res.LastInsertId()
}

// ScheduleIterations creates one iteration per date for the word.
func ScheduleIterations(ctx context.Context, db DBExecutor, wordID int64, dates []time.Time) error {
	if wordID <= 0 {
		return fmt.Errorf("%w: wordID must be positive", ErrValidation)
	}
	if len(dates) == 0 {
		return fmt.Errorf("%w: no iteration dates", ErrValidation)
	}
	insert := builder.Insert("iteration").Columns("word_id", "date")
	for _, d := range dates {
		insert = insert.Values(wordID, d.Format(dateLayout))
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert iterations: %w", err)
	}
	return nil
}

// WordExists reports whether the word is already stored.
func WordExists(ctx context.Context, db DBExecutor, word string) (bool, error) {
	query, args, err := builder.Select("COUNT(*)").From("word").
		Where(sq.Eq{"word": NormalizeWord(word)}).ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("count word: %w", err)
	}
	return n > 0, nil
}

// CountWords returns the number of stored words.
func CountWords(ctx context.Context, db DBExecutor) (int, error) {
	query, args, err := builder.Select("COUNT(*)").From("word").ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

// DueWords returns the distinct words that have an iteration on the given day.
func DueWords(ctx context.Context, db DBExecutor, day time.Time) ([]Word, error) {
	query, args, err := builder.Select("w.id", "w.word", "w.pronunciation").
		Distinct().
		From("word w").
		Join("iteration i ON i.word_id = w.id").
		Where(sq.Eq{"i.date": day.Format(dateLayout)}).
		OrderBy("w.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query due words: %w", err)
	}
	defer rows.Close()

	var out []Word
	for rows.Next() {
		var w Word
		var pron sql.NullString
		if err := rows.Scan(&w.ID, &w.Word, &pron); err != nil {
			return nil, err
		}
		if pron.Valid {
			w.Pronunciation = pron.String
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Iterations returns the scheduled review days of a word in ascending order.
func Iterations(ctx context.Context, db DBExecutor, wordID int64) ([]Iteration, error) {
	query, args, err := builder.Select("id", "word_id", "date").From("iteration").
		Where(sq.Eq{"word_id": wordID}).OrderBy("date", "id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query iterations: %w", err)
	}
	defer rows.Close()

	var out []Iteration
	for rows.Next() {
		var it Iteration
		var raw string
		if err := rows.Scan(&it.ID, &it.WordID, &raw); err != nil {
			return nil, err
		}
		it.Date, err = parseDay(raw)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", it.ID, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Translations returns every accepted translation for a word.
func Translations(ctx context.Context, db DBExecutor, wordID int64) ([]string, error) {
	query, args, err := builder.Select("translation").From("translation").
		Where(sq.Eq{"word_id": wordID}).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordRun stores a completed quiz session.
func RecordRun(ctx context.Context, db DBExecutor, at time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `INSERT INTO run (date) VALUES (?)`, at.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns completed quiz sessions, oldest first.
func ListRuns(ctx context.Context, db DBExecutor) ([]Run, error) {
	query, args, err := builder.Select("id", "date").From("run").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var raw string
		if err := rows.Scan(&r.ID, &raw); err != nil {
			return nil, err
		}
		r.Date, err = parseTimestamp(raw)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", r.ID, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseDay(raw string) (time.Time, error) {
	// Drivers may hand DATE columns back with a time suffix.
	if len(raw) > len(dateLayout) {
		raw = raw[:len(dateLayout)]
	}
	return time.ParseInLocation(dateLayout, raw, time.Local)
}

// parseTimestamp accepts RFC3339 and the CURRENT_TIMESTAMP column default.
func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", raw)
}
