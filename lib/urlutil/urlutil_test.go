package urlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"  dQw4w9WgXcQ\n", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, c := range cases {
		got, err := ExtractVideoID(c.input)
		require.NoError(t, err, c.input)
		require.Equal(t, c.want, got, c.input)
	}
}

func TestExtractVideoIDRejectsGarbage(t *testing.T) {
	for _, input := range []string{
		"",
		"not a url",
		"https://www.youtube.com/watch",
		"https://example.com/watch?v=tooshort",
	} {
		_, err := ExtractVideoID(input)
		require.Error(t, err, input)
	}
}
