package session

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterReadsLines(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("one\r\ntwo\n"), &out)
	ctx := context.Background()

	got, err := p.Ask(ctx, "a: ")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	got, err = p.Ask(ctx, "b: ")
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	_, err = p.Ask(ctx, "c: ")
	assert.ErrorIs(t, err, ErrInputClosed)
	_, err = p.Ask(ctx, "d: ")
	assert.ErrorIs(t, err, ErrInputClosed)

	assert.True(t, strings.HasPrefix(out.String(), "a: b: c: "))
}

func TestPrompterHonoursCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	p := NewPrompter(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Ask(ctx, "waiting: ")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
