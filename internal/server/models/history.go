package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/transkeeper/internal/common"
)

// HistoryEntry is one translation event. ID is assigned by SQL backends and
// stays zero in the JSON store.
type HistoryEntry struct {
	ID     int64
	Owner  string
	Time   time.Time
	From   string
	To     string
	Input  string
	Output string
}

// NewHistoryEntry validates the fields and stamps the entry with now,
// truncated to whole seconds.
func NewHistoryEntry(owner, from, to, input, output string, now time.Time) (*HistoryEntry, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: empty owner", common.ErrInvalidInput)
	}
	if strings.TrimSpace(to) == "" {
		return nil, fmt.Errorf("%w: empty target language", common.ErrInvalidInput)
	}
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: empty input text", common.ErrInvalidInput)
	}

	return &HistoryEntry{
		Owner:  owner,
		Time:   now.Truncate(time.Second),
		From:   from,
		To:     to,
		Input:  input,
		Output: output,
	}, nil
}

// Timestamp renders Time as "YYYY-MM-DD HH:MM:SS".
func (e *HistoryEntry) Timestamp() string {
	return e.Time.Format(common.TimeLayout)
}

// Truncate cuts Input and Output to at most n runes. n <= 0 keeps them whole.
func (e *HistoryEntry) Truncate(n int) {
	e.Input = truncateRunes(e.Input, n)
	e.Output = truncateRunes(e.Output, n)
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
