package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain line", "alice\n", "alice"},
		{"surrounding spaces trimmed", "  alice  \n", "alice"},
		{"eof after partial line", "alice", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &bytes.Buffer{}
			r := bufio.NewReader(strings.NewReader(tt.input))
			got, err := GetSimpleText(r, "Enter username", w)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, w.String(), "Enter username")
		})
	}
}

func TestGetSimpleText_EmptyInput(t *testing.T) {
	w := &bytes.Buffer{}
	r := bufio.NewReader(strings.NewReader(""))
	_, err := GetSimpleText(r, "Enter username", w)
	assert.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}

	w := &bytes.Buffer{}
	pw, err := GetPassword(w)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Contains(t, w.String(), "Enter password:")
}
