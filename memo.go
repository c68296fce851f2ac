package tiercache

import (
	"context"
	"strconv"
)

// Func is a cacheable computation. The single ctx+error signature covers
// both blocking and non-blocking work; a computation that never suspends
// simply ignores ctx.
type Func[V any] func(ctx context.Context, args Args) (V, error)

// Memoize wraps fn with get-before-compute / set-after-compute semantics
// under the given namespace. On a hit the wrapped computation does not run
// at all, so its side effects do not occur. On a miss the result is written
// to the cache before being returned. A failed computation is returned
// as-is and never cached.
//
// If caching the result fails (undecidable key material or a value the
// codec cannot encode), the computed value is returned alongside the error
// so callers that treat caching as best-effort can keep it.
func Memoize[V any](c Cache[V], namespace string, fn Func[V]) Func[V] {
	return func(ctx context.Context, args Args) (V, error) {
		v, ok, err := c.Get(ctx, namespace, args)
		if err != nil {
			var zero V
			return zero, err
		}
		if ok {
			return v, nil
		}
		v, err = fn(ctx, args)
		if err != nil {
			return v, err
		}
		if err := c.Set(ctx, namespace, v, args); err != nil {
			return v, err
		}
		return v, nil
	}
}

// PositionalArgs keys a computation by positional values, for callers
// without named arguments. Values are indexed "0", "1", ... so the argument
// set stays an ordinary Args map.
func PositionalArgs(vals ...any) Args {
	a := make(Args, len(vals))
	for i, v := range vals {
		a[strconv.Itoa(i)] = v
	}
	return a
}
