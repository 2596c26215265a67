package randname_test

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filedrop/pkg/randname"
)

var baseIDPattern = regexp.MustCompile(`^[0-9a-f]{20}$`)

func TestGenerate(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id := randname.Generate()
		require.Regexp(t, baseIDPattern, id)

		_, dup := seen[id]
		require.False(t, dup, "generated a duplicate id: %s", id)
		seen[id] = struct{}{}
	}
}

// prefixSet fakes a storage namespace with a fixed set of stored names.
type prefixSet map[string]struct{}

func (p prefixSet) ExistsWithPrefix(_ context.Context, prefix string) bool {
	for name := range p {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// alwaysTaken simulates a namespace where every candidate collides.
type alwaysTaken struct{}

func (alwaysTaken) ExistsWithPrefix(context.Context, string) bool { return true }

func TestAllocate(t *testing.T) {
	t.Parallel()

	t.Run("never returns an existing id", func(t *testing.T) {
		t.Parallel()

		existing := make(prefixSet)
		for range 100 {
			existing[randname.Generate()+".png"] = struct{}{}
			existing[randname.Generate()+".zip"] = struct{}{}
		}

		ctx := context.Background()
		for range 10000 {
			id, err := randname.Allocate(ctx, existing)
			require.NoError(t, err)
			require.Regexp(t, baseIDPattern, id)
			assert.False(t, existing.ExistsWithPrefix(ctx, id+"."), "allocated a colliding id: %s", id)
		}
	})

	t.Run("exhausts after bounded retries", func(t *testing.T) {
		t.Parallel()

		id, err := randname.Allocate(context.Background(), alwaysTaken{})
		assert.Empty(t, id)
		assert.ErrorIs(t, err, randname.ErrExhaustedAttempts)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := randname.Allocate(ctx, alwaysTaken{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
