package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShort(t *testing.T) {
	chunks := splitMessage("hello", 4000)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestSplitMessageExactLimit(t *testing.T) {
	msg := strings.Repeat("a", 10)
	chunks := splitMessage(msg, 10)
	assert.Equal(t, []string{msg}, chunks)
}

func TestSplitMessageLong(t *testing.T) {
	msg := strings.Repeat("a", 25)
	chunks := splitMessage(msg, 10)

	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("a", 10), chunks[0])
	assert.Equal(t, strings.Repeat("a", 10), chunks[1])
	assert.Equal(t, strings.Repeat("a", 5), chunks[2])
	assert.Equal(t, msg, strings.Join(chunks, ""))
}

func TestSplitMessageRuneSafe(t *testing.T) {
	// Multibyte runes must never be cut mid-sequence.
	msg := strings.Repeat("日", 7)
	chunks := splitMessage(msg, 3)

	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		for _, r := range chunk {
			assert.Equal(t, '日', r)
		}
	}
	assert.Equal(t, msg, strings.Join(chunks, ""))
}

func TestSplitMessageNonPositiveLimit(t *testing.T) {
	chunks := splitMessage("hello", 0)
	assert.Equal(t, []string{"hello"}, chunks)
}
