package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, k *Keyword, p Payload) Verdict {
	t.Helper()
	v, err := k.Classify(context.Background(), p)
	require.NoError(t, err)
	return v
}

func TestKeywordCleanMessageIsHam(t *testing.T) {
	k := NewKeyword(nil, nil)
	v := classify(t, k, Payload{
		Author:  "Ada",
		Content: "Hello, I have a question about your pricing.",
		Subject: "Pricing question",
		IP:      "203.0.113.9",
	})
	assert.Equal(t, VerdictHam, v)
}

func TestKeywordDefaultListMatches(t *testing.T) {
	k := NewKeyword(nil, nil)
	v := classify(t, k, Payload{Content: "Best CASINO bonuses inside"})
	assert.Equal(t, VerdictSpam, v)
}

func TestKeywordConfiguredKeyword(t *testing.T) {
	k := NewKeyword([]string{"cheap pills"}, nil)
	assert.Equal(t, VerdictSpam, classify(t, k, Payload{Content: "get Cheap Pills now"}))
	assert.Equal(t, VerdictHam, classify(t, k, Payload{Content: "get supplies now"}))
}

func TestKeywordMatchesSubjectAndURL(t *testing.T) {
	k := NewKeyword(nil, nil)
	assert.Equal(t, VerdictSpam, classify(t, k, Payload{Subject: "free lottery tickets"}))
	assert.Equal(t, VerdictSpam, classify(t, k, Payload{AuthorURL: "https://poker.example.com"}))
}

func TestKeywordRegexKeyword(t *testing.T) {
	k := NewKeyword([]string{`w[o0]rk fr[o0]m h[o0]me`}, nil)
	assert.Equal(t, VerdictSpam, classify(t, k, Payload{Content: "w0rk fr0m h0me today"}))
}

func TestKeywordBlockedIP(t *testing.T) {
	k := NewKeyword(nil, []string{"198.51.100.7", `^10\.0\.`})
	assert.Equal(t, VerdictSpam, classify(t, k, Payload{IP: "198.51.100.7", Content: "hi"}))
	assert.Equal(t, VerdictSpam, classify(t, k, Payload{IP: "10.0.3.4", Content: "hi"}))
	assert.Equal(t, VerdictHam, classify(t, k, Payload{IP: "192.0.2.1", Content: "hi"}))
}

func TestKeywordNeverAbstains(t *testing.T) {
	k := NewKeyword([]string{"("}, nil) // broken regex still falls back to substring match
	_, err := k.Classify(context.Background(), Payload{Content: "anything"})
	assert.NoError(t, err)
}
