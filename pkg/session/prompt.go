package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned when input ends in the middle of a dialogue.
var ErrInputClosed = errors.New("input closed")

type line struct {
	text string
	err  error
}

// Prompter writes prompts and reads answers one line at a time.
// Reads are abandoned as soon as the context is done, so an interrupt
// never waits on the user pressing enter.
type Prompter struct {
	out   io.Writer
	lines chan line
}

// NewPrompter starts reading lines from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{out: out, lines: make(chan line)}
	go p.scan(in)
	return p
}

func (p *Prompter) scan(in io.Reader) {
	defer close(p.lines)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		p.lines <- line{text: strings.TrimRight(sc.Text(), "\r")}
	}
	if err := sc.Err(); err != nil {
		p.lines <- line{err: err}
	}
}

// Ask prints prompt and returns the next line of input without its newline.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			return "", ErrInputClosed
		}
		if l.err != nil {
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return l.text, nil
	}
}
