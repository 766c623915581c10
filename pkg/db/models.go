package db

import "time"

// Word is a Polish word with its phonetic pronunciation.
type Word struct {
	ID            int64
	Word          string
	Pronunciation string
}

// Iteration is a scheduled review of a Word on a calendar day.
type Iteration struct {
	ID     int64
	WordID int64
	Date   time.Time
}

// Translation is one accepted English translation of a Word.
type Translation struct {
	ID          int64
	WordID      int64
	Translation string
}

// Run marks a completed quiz session.
type Run struct {
	ID   int64
	Date time.Time
}

// NewWord carries everything captured for a word before it is persisted.
type NewWord struct {
	Word          string
	Pronunciation string
	Translations  []string
	// Dates are the review days produced by the scheduler.
	Dates []time.Time
}
