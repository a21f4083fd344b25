package resolver

import (
	"github.com/upperxcode/shelf-plus/core/handler"
)

// Resolver inspects a captured handler value and either produces a refined
// value or declines. Returning claimed=false leaves the current value
// unchanged and passes it to the next resolver in the chain; returning
// claimed=true replaces the current value and restarts the pipeline scan,
// so a resolver's output can be picked up by earlier, more generic rules.
//
// A Resolver doubles as a transformation: Merge composes two of them into
// one and Apply runs one against a value outside the pipeline, which is how
// route-scoped and global middleware participate in resolution.
type Resolver[C handler.Context] func(ctx C, value any) (value2 any, claimed bool)

// Merge combines two resolvers into one that applies a's effect and then
// b's on the same value, left to right. If a produces a final
// handler.Response the merge short-circuits and b is skipped. Merge is
// associative: Merge(Merge(a, b), c) and Merge(a, Merge(b, c)) produce the
// same net effect for every input.
func Merge[C handler.Context](a, b Resolver[C]) Resolver[C] {
	return func(ctx C, value any) (any, bool) {
		out, claimed := a(ctx, value)
		if !claimed || out == nil {
			out = value
			claimed = false
		}
		if _, final := out.(handler.Response); final {
			return out, true
		}
		next, ok := b(ctx, out)
		if !ok || next == nil {
			return out, claimed
		}
		return next, true
	}
}

// MergeAll folds any number of resolvers into one, left to right.
func MergeAll[C handler.Context](resolvers ...Resolver[C]) Resolver[C] {
	if len(resolvers) == 0 {
		return func(ctx C, value any) (any, bool) { return value, false }
	}
	merged := resolvers[0]
	for _, r := range resolvers[1:] {
		merged = Merge(merged, r)
	}
	return merged
}

// Apply runs a single transformation against a value, returning the
// transformed value or the input unchanged when the transformation
// declines. Handlers use it to reshape their own return value inline,
// before the pipeline sees it:
//
//	return resolver.Apply(ctx, forceDownload, reportBytes)
func Apply[C handler.Context](ctx C, t Resolver[C], value any) any {
	out, claimed := t(ctx, value)
	if !claimed || out == nil {
		return value
	}
	return out
}
