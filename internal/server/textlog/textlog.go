// Package textlog appends translations to a plain-text log meant for humans.
// The log is write-only: nothing in the server reads it back.
package textlog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/transkeeper/internal/server/models"
)

var separator = strings.Repeat("-", 50)

// Writer appends records to a file. A zero path disables it.
type Writer struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Writer {
	return &Writer{path: path}
}

// Format renders one record:
//
//	[2024-05-01 10:20:30] (alice)
//	Source: hello
//	Translated (fr): bonjour
//	--------------------------------------------------
func Format(e *models.HistoryEntry) string {
	return fmt.Sprintf("[%s] (%s)\nSource: %s\nTranslated (%s): %s\n%s\n",
		e.Timestamp(), e.Owner, e.Input, e.To, e.Output, separator)
}

func (w *Writer) Append(e *models.HistoryEntry) error {
	if w == nil || w.path == "" {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open text log: %w", err)
	}

	if _, err := f.WriteString(Format(e)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write text log: %w", err)
	}
	return f.Close()
}
