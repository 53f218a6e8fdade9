package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteUnquoteRoundTrip(t *testing.T) {
	cases := []string{
		`plain.txt`,
		`has "quotes".txt`,
		`back\slash.txt`,
		"tab\ttab.txt",
		"newline\nnewline.txt",
		"carriage\rreturn.txt",
		"",
	}
	for _, c := range cases {
		q := quote(c)
		got, err := unquote(q)
		require.NoError(t, err, "quoted form: %s", q)
		assert.Equal(t, c, got)
	}
}

func TestUnquoteRejectsUnquotedInput(t *testing.T) {
	_, err := unquote("no quotes here")
	assert.Error(t, err)
}
