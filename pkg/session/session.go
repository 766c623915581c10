// Package session drives the interactive insert and quiz dialogues.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/japaniel/polski/pkg/db"
	"github.com/japaniel/polski/pkg/schedule"
	"github.com/japaniel/polski/pkg/verify"
)

// ErrReportUnimplemented is returned for the reserved --report mode.
var ErrReportUnimplemented = errors.New("report mode is not implemented")

// Store is the persistence the Controller needs.
type Store interface {
	WordExists(ctx context.Context, word string) (bool, error)
	CountWords(ctx context.Context) (int, error)
	InsertWord(ctx context.Context, nw db.NewWord) (db.Word, error)
	Translations(ctx context.Context, wordID int64) ([]string, error)
	RecordRun(ctx context.Context, at time.Time) (int64, error)
}

// Options selects the mode of a session.
type Options struct {
	Insert bool
	Report bool
}

// Controller runs one session against a store.
type Controller struct {
	Store     Store
	Scheduler *schedule.Scheduler
	Verifier  *verify.Verifier
	Prompter  *Prompter
	Out       io.Writer
	// Logger receives operational events. nil means no logging.
	Logger *slog.Logger
	// Now is the session clock; it stamps completed runs.
	Now func() time.Time
	// Color enables the ANSI tick that overwrites the answered prompt line.
	Color bool
}

// NewController creates a Controller reading answers from in and writing
// dialogue to out.
func NewController(store Store, sched *schedule.Scheduler, v *verify.Verifier, in io.Reader, out io.Writer) *Controller {
	return &Controller{
		Store:     store,
		Scheduler: sched,
		Verifier:  v,
		Prompter:  NewPrompter(in, out),
		Out:       out,
		Now:       time.Now,
	}
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Run picks the mode: insert when asked to or when nothing is due,
// otherwise a quiz over today's words.
func (c *Controller) Run(ctx context.Context, opts Options) error {
	if opts.Insert && opts.Report {
		return fmt.Errorf("insert and report modes are mutually exclusive")
	}
	if opts.Report {
		return ErrReportUnimplemented
	}
	if opts.Insert {
		_, err := c.Insert(ctx)
		return err
	}

	words, err := c.Scheduler.DueToday(ctx)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		total, err := c.Store.CountWords(ctx)
		if err != nil {
			return err
		}
		if total == 0 {
			fmt.Fprintln(c.Out, "No words in database. Gone into insert mode.")
		} else {
			fmt.Fprintln(c.Out, "No words to revise today. Gone into insert mode.")
		}
		_, err = c.Insert(ctx)
		return err
	}
	return c.Quiz(ctx, words)
}

// Insert captures new words until an empty word is entered and returns how
// many were saved.
func (c *Controller) Insert(ctx context.Context) (int, error) {
	saved := 0
	for {
		input, err := c.Prompter.Ask(ctx, "Polish word: ")
		if err != nil {
			return saved, err
		}
		word := db.NormalizeWord(input)
		if word == "" {
			break
		}

		exists, err := c.Store.WordExists(ctx, word)
		if err != nil {
			return saved, err
		}
		if exists {
			fmt.Fprintf(c.Out, "%q already exists\n", word)
			continue
		}

		pronunciation, err := c.askPronunciation(ctx)
		if err != nil {
			return saved, err
		}
		translations, err := c.askTranslations(ctx)
		if err != nil {
			return saved, err
		}

		w, err := c.Store.InsertWord(ctx, db.NewWord{
			Word:          word,
			Pronunciation: pronunciation,
			Translations:  translations,
			Dates:         c.Scheduler.Iterations(),
		})
		if errors.Is(err, db.ErrAlreadyExists) {
			fmt.Fprintf(c.Out, "%q already exists\n", word)
			continue
		}
		if err != nil {
			return saved, fmt.Errorf("save %q: %w", word, err)
		}
		c.logger().Debug("word saved", "id", w.ID, "word", w.Word, "translations", len(translations))
		saved++
	}

	switch saved {
	case 0:
		fmt.Fprintln(c.Out, "No words added.")
	case 1:
		fmt.Fprintln(c.Out, "1 word saved.")
	default:
		fmt.Fprintf(c.Out, "%d words saved.\n", saved)
	}
	return saved, nil
}

func (c *Controller) askPronunciation(ctx context.Context) (string, error) {
	for {
		input, err := c.Prompter.Ask(ctx, "Pronunciation: ")
		if err != nil {
			return "", err
		}
		if p := strings.ToLower(strings.TrimSpace(input)); p != "" {
			return p, nil
		}
	}
}

// askTranslations collects translations until an empty line follows at
// least one of them.
func (c *Controller) askTranslations(ctx context.Context) ([]string, error) {
	var out []string
	for {
		input, err := c.Prompter.Ask(ctx, "Translation: ")
		if err != nil {
			return nil, err
		}
		t := strings.ToLower(strings.TrimSpace(input))
		if t == "" {
			if len(out) == 0 {
				continue
			}
			return out, nil
		}
		out = append(out, t)
	}
}

// Quiz asks for each word until it is translated correctly, then records
// the completed run.
func (c *Controller) Quiz(ctx context.Context, words []db.Word) error {
	for _, w := range words {
		accepted, err := c.Store.Translations(ctx, w.ID)
		if err != nil {
			return err
		}
		if len(accepted) == 0 {
			// No answer could ever be accepted.
			c.logger().Warn("word has no translations, skipping", "id", w.ID, "word", w.Word)
			continue
		}

		prompt := w.Word + " > "
		for {
			answer, err := c.Prompter.Ask(ctx, prompt)
			if err != nil {
				return err
			}
			if c.Verifier.Check(answer, accepted) {
				c.tick(prompt, answer)
				break
			}
		}
	}

	id, err := c.Store.RecordRun(ctx, c.Now())
	if err != nil {
		return err
	}
	c.logger().Info("run recorded", "id", id, "words", len(words))
	return nil
}

// tick confirms a correct answer. With color it moves the cursor back up to
// the end of the answered line and prints a green check mark there.
func (c *Controller) tick(prompt, answer string) {
	if !c.Color {
		fmt.Fprintln(c.Out, "✓")
		return
	}
	col := utf8.RuneCountInString(prompt + answer)
	fmt.Fprintf(c.Out, "\033[32m\033[%dC\033[1A ✓\033[39m\n", col)
}
