package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "line", input: "  bonjour le monde \nnext\n", want: "bonjour le monde"},
		{name: "last line without newline", input: "fr", want: "fr"},
		{name: "empty line", input: "\n", want: ""},
		{name: "nothing left", input: "", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.input)), "Target language", &out)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Target language\n> ", out.String())
		})
	}
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	t.Run("ok", func(t *testing.T) {
		readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
		var out bytes.Buffer
		pw, err := GetPassword(&out)
		require.NoError(t, err)
		assert.Equal(t, []byte("s3cret"), pw)
		assert.Equal(t, "Enter password: \n", out.String())
	})

	t.Run("terminal error", func(t *testing.T) {
		boom := errors.New("not a terminal")
		readPassword = func(int) ([]byte, error) { return nil, boom }
		_, err := GetPassword(&bytes.Buffer{})
		require.ErrorIs(t, err, boom)
	})
}

func TestIsYes(t *testing.T) {
	for _, s := range []string{"y", "Y", "yes", " YES "} {
		assert.True(t, isYes(s), s)
	}
	for _, s := range []string{"", "n", "no", "yep"} {
		assert.False(t, isYes(s), s)
	}
}
