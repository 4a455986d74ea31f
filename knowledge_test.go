package lorebot_test

import (
	"testing"

	"github.com/lorebot/lorebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSourceURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "already normalized", raw: "https://example.com/docs/page", want: "https://example.com/docs/page"},
		{name: "strips trailing slash", raw: "https://example.com/docs/page/", want: "https://example.com/docs/page"},
		{name: "strips query string", raw: "https://example.com/docs/page?tab=usage", want: "https://example.com/docs/page"},
		{name: "strips fragment", raw: "https://example.com/docs/page#install", want: "https://example.com/docs/page"},
		{name: "strips all three", raw: "https://example.com/docs/page/?v=2#top", want: "https://example.com/docs/page"},
		{name: "bare host loses trailing slash", raw: "https://example.com/", want: "https://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lorebot.NormalizeSourceURL(tt.raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeSourceURL_VariantsCollapse(t *testing.T) {
	t.Parallel()

	a, err := lorebot.NormalizeSourceURL("https://example.com/docs/page/")
	require.NoError(t, err)
	b, err := lorebot.NormalizeSourceURL("https://example.com/docs/page#section")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestNormalizeSourceURL_RejectsRelative(t *testing.T) {
	t.Parallel()

	_, err := lorebot.NormalizeSourceURL("/docs/page")

	require.Error(t, err)
	assert.Equal(t, lorebot.EINVALID, lorebot.ErrorCode(err))
}

func TestEntry_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		entry := &lorebot.Entry{SourceID: "https://example.com/docs", Text: "content"}

		assert.NoError(t, entry.Validate())
	})

	t.Run("missing source ID", func(t *testing.T) {
		t.Parallel()

		entry := &lorebot.Entry{Text: "content"}

		err := entry.Validate()
		require.Error(t, err)
		assert.Equal(t, lorebot.EINVALID, lorebot.ErrorCode(err))
	})

	t.Run("missing text", func(t *testing.T) {
		t.Parallel()

		entry := &lorebot.Entry{SourceID: "https://example.com/docs"}

		err := entry.Validate()
		require.Error(t, err)
		assert.Equal(t, lorebot.EINVALID, lorebot.ErrorCode(err))
	})
}
