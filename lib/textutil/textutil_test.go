package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanComment(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Hello World!", "hello world"},
		{"check this out https://youtu.be/abc123 now", "check this out now"},
		{"thanks @someone for the #tips", "thanks for the tips"},
		{"rated 10/10, would watch again!!!", "rated would watch again"},
		{"  too   much\t\twhitespace \n", "too much whitespace"},
		{"1234", ""},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, CleanComment(c.input), "input: %q", c.input)
	}
}
