package fks

// buildConfig collects Build's tunables. lambda is the load parameter
// (target average bucket size); eq overrides key equality; maxWidth caps
// the secondary hash width the parameter search will try.
type buildConfig[T comparable] struct {
	lambda   uint
	eq       Equaler[T]
	maxWidth uint8
}

func defaultBuildConfig[T comparable]() buildConfig[T] {
	return buildConfig[T]{
		lambda:   4,
		eq:       DefaultEqual[T](),
		maxWidth: defaultMaxSecondaryWidth,
	}
}

// Option configures a call to Build. Following the teacher's option[K,V]
// pattern (options.go in the cockroachdb/swiss package this module is
// adapted from), each Option is a small value that mutates a buildConfig.
type Option[T comparable] interface {
	apply(cfg *buildConfig[T])
}

type lambdaOption[T comparable] struct{ lambda uint }

func (o lambdaOption[T]) apply(cfg *buildConfig[T]) { cfg.lambda = o.lambda }

// WithLambda overrides the default load parameter (4). Build halves it on
// every failed construction attempt until it reaches 0, at which point
// Build returns ErrConstructionFailure. lambda must be > 0.
func WithLambda[T comparable](lambda uint) Option[T] {
	return lambdaOption[T]{lambda: lambda}
}

type equalOption[T comparable] struct{ eq Equaler[T] }

func (o equalOption[T]) apply(cfg *buildConfig[T]) { cfg.eq = o.eq }

// WithEqual overrides the default == equality, e.g. for keys that should
// compare case-insensitively or otherwise non-identically to Go's builtin
// comparison. The supplied Equaler must remain consistent with Hasher:
// equal keys must hash equally.
func WithEqual[T comparable](eq Equaler[T]) Option[T] {
	return equalOption[T]{eq: eq}
}

type maxWidthOption[T comparable] struct{ width uint8 }

func (o maxWidthOption[T]) apply(cfg *buildConfig[T]) { cfg.maxWidth = o.width }

// WithMaxSecondaryWidth overrides the default secondary-hash width cap
// (56). Raising it widens the parameter search space per bucket at the
// cost of build time; it cannot exceed 63.
func WithMaxSecondaryWidth[T comparable](width uint8) Option[T] {
	return maxWidthOption[T]{width: width}
}
