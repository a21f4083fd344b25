package resolver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/resolver"
)

// appender claims strings and appends suffix, declining everything else.
func appender(suffix string) resolver.Resolver[*testContext] {
	return func(ctx *testContext, value any) (any, bool) {
		if s, ok := value.(string); ok {
			return s + suffix, true
		}
		return nil, false
	}
}

func TestMerge_AppliesLeftThenRight(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
	merged := resolver.Merge(appender("a"), appender("b"))

	out, claimed := merged(ctx, "x")
	assert.True(t, claimed)
	assert.Equal(t, "xab", out)
}

func TestMerge_ShortCircuitsOnFinalResponse(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))

	finalize := func(ctx *testContext, value any) (any, bool) {
		return handler.Response(func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusAccepted)
			return nil
		}), true
	}

	rightCalled := false
	right := func(ctx *testContext, value any) (any, bool) {
		rightCalled = true
		return nil, false
	}

	out, claimed := resolver.Merge(finalize, right)(ctx, "anything")
	assert.True(t, claimed)
	assert.False(t, rightCalled, "right side must be skipped once the left yields a final response")

	resp, ok := out.(handler.Response)
	require.True(t, ok)

	rec := httptest.NewRecorder()
	require.NoError(t, resp(rec, ctx.Request()))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestMerge_BothDecline(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))

	decline := func(ctx *testContext, value any) (any, bool) { return nil, false }

	out, claimed := resolver.Merge(decline, decline)(ctx, 42)
	assert.False(t, claimed)
	assert.Equal(t, 42, out)
}

func TestMerge_RightClaimsAfterLeftDeclines(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))

	decline := func(ctx *testContext, value any) (any, bool) { return nil, false }

	out, claimed := resolver.Merge(decline, appender("z"))(ctx, "v")
	assert.True(t, claimed)
	assert.Equal(t, "vz", out)
}

func TestMerge_Associativity(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))

	a, b, c := appender("a"), appender("b"), appender("c")
	left := resolver.Merge(resolver.Merge(a, b), c)
	right := resolver.Merge(a, resolver.Merge(b, c))

	outLeft, claimedLeft := left(ctx, "x")
	outRight, claimedRight := right(ctx, "x")

	assert.Equal(t, claimedLeft, claimedRight)
	assert.Equal(t, outLeft, outRight)
	assert.Equal(t, "xabc", outLeft)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	t.Run("folds_left_to_right", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
		merged := resolver.MergeAll(appender("1"), appender("2"), appender("3"))

		out, claimed := merged(ctx, "n")
		assert.True(t, claimed)
		assert.Equal(t, "n123", out)
	})

	t.Run("empty_set_declines", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
		merged := resolver.MergeAll[*testContext]()

		out, claimed := merged(ctx, "v")
		assert.False(t, claimed)
		assert.Equal(t, "v", out)
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("claimed_value_replaces_input", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
		out := resolver.Apply(ctx, appender("!"), "done")
		assert.Equal(t, "done!", out)
	})

	t.Run("declined_value_passes_through", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
		decline := func(ctx *testContext, value any) (any, bool) { return nil, false }
		out := resolver.Apply(ctx, decline, "unchanged")
		assert.Equal(t, "unchanged", out)
	})
}
