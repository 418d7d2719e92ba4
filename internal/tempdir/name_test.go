package tempdir

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9]*-[0-9a-f]{40}-[0-9]+$`)

func TestDeriveSubdir(t *testing.T) {
	now := time.Unix(1760788800, 0)

	tests := []struct {
		name           string
		hint           string
		expectedPrefix string
		expected       string
	}{
		{
			name:           "Empty hint",
			hint:           "",
			expectedPrefix: "",
			expected:       "-da39a3ee5e6b4b0d3255bfef95601890afd80709-1760788800",
		},
		{
			name:           "Plain hint",
			hint:           "test",
			expectedPrefix: "test",
			expected:       "test-a94a8fe5ccb19ba61c4c0873d391e987982fbbd3-1760788800",
		},
		{
			name:           "Namespace separators",
			hint:           "Dir::test",
			expectedPrefix: "Dirtest",
		},
		{
			name:           "Symbols only with a digit",
			hint:           "!\"§$%&/()=?`1",
			expectedPrefix: "1",
		},
		{
			name:           "Backslashes",
			hint:           `derhasi\Component\hello`,
			expectedPrefix: "derhasiComponenthello",
		},
		{
			name:           "Slashes",
			hint:           "derhasi/component/hello",
			expectedPrefix: "derhasicomponenthello",
		},
		{
			name:           "Test function name",
			hint:           t.Name(),
			expectedPrefix: "TestDeriveSubdir",
		},
		{
			name:           "Non ASCII letters",
			hint:           "größe_1",
			expectedPrefix: "gre1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := DeriveSubdir(tt.hint, now)

			assert.Regexp(t, tokenPattern, token)

			parsed, ok := ParseSubdir(token)
			require.True(t, ok)
			assert.Equal(t, tt.expectedPrefix, parsed.Prefix)
			assert.Equal(t, now.Unix(), parsed.Timestamp.Unix())

			if tt.expected != "" {
				assert.Equal(t, tt.expected, token)
			}
		})
	}
}

func TestDeriveSubdirDependsOnTime(t *testing.T) {
	now := time.Unix(1760788800, 0)

	assert.Equal(t, DeriveSubdir("test", now), DeriveSubdir("test", now.Add(500*time.Millisecond)))
	assert.NotEqual(t, DeriveSubdir("test", now), DeriveSubdir("test", now.Add(time.Second)))
}

func TestDeriveSubdirHashSeparatesSimilarHints(t *testing.T) {
	now := time.Unix(1760788800, 0)

	// Both hints sanitize to the same prefix; the hash keeps them apart.
	first := DeriveSubdir("a/b", now)
	second := DeriveSubdir("a-b", now)

	assert.NotEqual(t, first, second)
}

func TestParseSubdir(t *testing.T) {
	t.Run("with collision suffix", func(t *testing.T) {
		parsed, ok := ParseSubdir("test-a94a8fe5ccb19ba61c4c0873d391e987982fbbd3-1760788800_3")
		require.True(t, ok)

		assert.Equal(t, "test", parsed.Prefix)
		assert.Equal(t, "a94a8fe5ccb19ba61c4c0873d391e987982fbbd3", parsed.Hash)
		assert.Equal(t, int64(1760788800), parsed.Timestamp.Unix())
		assert.Equal(t, 3, parsed.Suffix)
	})

	t.Run("foreign names are rejected", func(t *testing.T) {
		for _, name := range []string{
			"",
			"argo-compare-123456",
			"test-a94a8fe5-1760788800",
			"test-a94a8fe5ccb19ba61c4c0873d391e987982fbbd3-",
			"te.st-a94a8fe5ccb19ba61c4c0873d391e987982fbbd3-1760788800",
			"test-a94a8fe5ccb19ba61c4c0873d391e987982fbbd3-1760788800_",
		} {
			_, ok := ParseSubdir(name)
			assert.False(t, ok, name)
		}
	})
}
