package resolver

import (
	"fmt"
	"slices"

	"github.com/upperxcode/shelf-plus/core/handler"
)

// maxRestarts bounds the number of scan restarts a single resolution may
// perform. Resolver sets that alternately claim each other's output would
// otherwise loop forever; past this bound the value is reported as
// unresolvable.
const maxRestarts = 32

// Pipeline drives an ordered resolver chain to a fixed point, turning any
// captured value into a final handler.Response. The chain is assembled once
// at registration time and is immutable afterwards, so a Pipeline is safe
// to share across concurrent requests.
type Pipeline[C handler.Context] struct {
	resolvers []Resolver[C]
}

// New builds a pipeline from the given custom resolvers followed by the
// built-in set. Custom resolvers therefore see every value first and may
// shadow or refine built-in behavior for types the built-ins would claim.
func New[C handler.Context](custom ...Resolver[C]) *Pipeline[C] {
	return &Pipeline[C]{
		resolvers: append(slices.Clone(custom), builtins[C]()...),
	}
}

// Resolve converts value into a final response. Already-final responses are
// returned unchanged, making resolution idempotent. Resolvers are offered
// the current value in registration order; a claim replaces the value and
// restarts the scan from the first resolver. A full pass in which no
// resolver claims the value fails with ErrUnresolvableValue, as does a
// chain that keeps rewriting the value without ever finalizing it.
func (p *Pipeline[C]) Resolve(ctx C, value any) (handler.Response, error) {
	if value == nil {
		return nil, fmt.Errorf("%w: nil value", ErrUnresolvableValue)
	}
	original := value

	for restarts := 0; restarts < maxRestarts; restarts++ {
		if resp, ok := value.(handler.Response); ok {
			return resp, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		claimed := false
		for _, resolve := range p.resolvers {
			next, ok := resolve(ctx, value)
			if !ok || next == nil {
				// Declined: the current value stays, the next resolver is offered it.
				continue
			}
			value = next
			claimed = true
			break
		}
		if !claimed {
			return nil, unresolvable(original, value)
		}
	}

	return nil, fmt.Errorf("%w: resolver cycle detected for value of type %T", ErrUnresolvableValue, original)
}

func unresolvable(original, current any) error {
	// Comparing values directly could panic on uncomparable types,
	// so only the type tags are inspected.
	if fmt.Sprintf("%T", original) != fmt.Sprintf("%T", current) {
		return fmt.Errorf("%w: no resolver claimed value of type %T (resolved from %T)", ErrUnresolvableValue, current, original)
	}
	return fmt.Errorf("%w: no resolver claimed value of type %T", ErrUnresolvableValue, original)
}
