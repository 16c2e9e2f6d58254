package textlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, input, output string) *models.HistoryEntry {
	t.Helper()
	e, err := models.NewHistoryEntry("alice", "en", "fr", input, output, time.Date(2024, 5, 1, 10, 20, 30, 0, time.Local))
	require.NoError(t, err)
	return e
}

func TestFormat(t *testing.T) {
	want := "[2024-05-01 10:20:30] (alice)\n" +
		"Source: hello\n" +
		"Translated (fr): bonjour\n" +
		strings.Repeat("-", 50) + "\n"

	assert.Equal(t, want, Format(entry(t, "hello", "bonjour")))
}

func TestWriter_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Translator_History.txt")
	w := New(path)

	require.NoError(t, w.Append(entry(t, "hello", "bonjour")))
	require.NoError(t, w.Append(entry(t, "thank you", "merci")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, Format(entry(t, "hello", "bonjour"))+Format(entry(t, "thank you", "merci")), string(data))
}

func TestWriter_Disabled(t *testing.T) {
	var nilWriter *Writer
	assert.NoError(t, nilWriter.Append(entry(t, "a", "b")))
	assert.NoError(t, New("").Append(entry(t, "a", "b")))
}

func TestWriter_BadPath(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "log.txt"))
	assert.Error(t, w.Append(entry(t, "a", "b")))
}
