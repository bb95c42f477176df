package shortid

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func never(context.Context, string) (bool, error) { return false, nil }

func always(context.Context, string) (bool, error) { return true, nil }

func TestIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("IssuesDistinctIdentifiersFromAlphabet", func(t *testing.T) {
		issuer := NewIssuer(never)
		seen := make(map[string]struct{}, 1000)

		for i := 0; i < 1000; i++ {
			id, err := issuer.Issue(ctx, 0)
			require.NoError(t, err)
			assert.Len(t, id, DefaultLength)
			for _, r := range id {
				assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected character %q in %s", r, id)
			}
			assert.NotContainsf(t, id, "I", "id %s", id)
			assert.NotContainsf(t, id, "O", "id %s", id)
			assert.NotContainsf(t, id, "0", "id %s", id)
			assert.NotContainsf(t, id, "1", "id %s", id)
			seen[id] = struct{}{}
		}

		assert.Len(t, seen, 1000, "expect 1000 distinct identifiers")
	})

	t.Run("HonorsLength", func(t *testing.T) {
		id, err := NewIssuer(never).Issue(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, id, 10)
	})

	t.Run("RetriesOnCollision", func(t *testing.T) {
		calls := 0
		issuer := NewIssuer(func(context.Context, string) (bool, error) {
			calls++
			return calls < 4, nil
		})

		id, err := issuer.Issue(ctx, DefaultLength)
		require.NoError(t, err)
		assert.Len(t, id, DefaultLength)
		assert.Equal(t, 4, calls)
	})

	t.Run("FallsBackAfterMaxAttempts", func(t *testing.T) {
		calls := 0
		issuer := NewIssuer(func(context.Context, string) (bool, error) {
			calls++
			return true, nil
		})
		issuer.now = func() time.Time { return time.UnixMilli(1700000000000) }

		id, err := issuer.Issue(ctx, DefaultLength)
		require.NoError(t, err)
		assert.Equal(t, MaxAttempts, calls)
		assert.Len(t, id, DefaultLength)
		// 1700000000000 in base 36 is "loyw3v28"
		assert.True(t, strings.HasPrefix(id, "v28"), "expect timestamp tail prefix, got %s", id)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(base36, r), "unexpected character %q in %s", r, id)
		}
	})

	t.Run("ReturnsStorageErrors", func(t *testing.T) {
		issuer := NewIssuer(func(context.Context, string) (bool, error) {
			return false, errors.New("connection refused")
		})

		_, err := issuer.Issue(ctx, DefaultLength)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("ReturnsRandomSourceErrors", func(t *testing.T) {
		issuer := NewIssuer(always)
		issuer.read = func([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

		_, err := issuer.Issue(ctx, DefaultLength)
		assert.ErrorContains(t, err, "entropy exhausted")
	})
}

func TestRandom(t *testing.T) {
	id := Random(0)
	assert.Len(t, id, DefaultLength)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(Alphabet, r))
	}
	assert.Len(t, Random(12), 12)
}
