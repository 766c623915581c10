package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store owns the database handle and composes the store functions into
// the transactional operations the session needs.
type Store struct {
	conn *sql.DB
}

// NewStore wraps an open, migrated connection.
func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Conn exposes the underlying handle for read-only helpers.
func (s *Store) Conn() *sql.DB { return s.conn }

// RunInTx executes fn within a database transaction.
// On error from fn the transaction is rolled back and the error returned.
// On panic from fn it is rolled back and the panic re-raised.
func (s *Store) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InsertWord persists a word, its pronunciation, its translations and its
// review schedule in one transaction. Either all of it lands or none of it.
func (s *Store) InsertWord(ctx context.Context, nw NewWord) (Word, error) {
	if len(nw.Translations) == 0 {
		return Word{}, fmt.Errorf("%w: word %q has no translations", ErrValidation, nw.Word)
	}
	var w Word
	err := s.RunInTx(ctx, func(tx *sql.Tx) error {
		id, err := CreateWord(ctx, tx, nw.Word)
		if err != nil {
			return err
		}
		if err := ScheduleIterations(ctx, tx, id, nw.Dates); err != nil {
			return err
		}
		if nw.Pronunciation != "" {
			if err := SetPronunciation(ctx, tx, id, nw.Pronunciation); err != nil {
				return err
			}
		}
		for _, t := range nw.Translations {
			if _, err := AddTranslation(ctx, tx, id, t); err != nil {
				return err
			}
		}
		w = Word{ID: id, Word: NormalizeWord(nw.Word), Pronunciation: NormalizeWord(nw.Pronunciation)}
		return nil
	})
	if err != nil {
		return Word{}, err
	}
	return w, nil
}

// WordExists reports whether the word is already stored.
func (s *Store) WordExists(ctx context.Context, word string) (bool, error) {
	return WordExists(ctx, s.conn, word)
}

// CountWords returns the number of stored words.
func (s *Store) CountWords(ctx context.Context) (int, error) {
	return CountWords(ctx, s.conn)
}

// DueWords returns the words scheduled for review on day.
func (s *Store) DueWords(ctx context.Context, day time.Time) ([]Word, error) {
	return DueWords(ctx, s.conn, day)
}

// Translations returns the accepted translations of a word.
func (s *Store) Translations(ctx context.Context, wordID int64) ([]string, error) {
	return Translations(ctx, s.conn, wordID)
}

// RecordRun stores a completed quiz session.
func (s *Store) RecordRun(ctx context.Context, at time.Time) (int64, error) {
	return RecordRun(ctx, s.conn, at)
}
