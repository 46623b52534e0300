// MIT License

package ddkit

import "runtime"

// Config holds the tunable parameters of a Manager. It is built by New
// from a set of Option functions, following the functional-options pattern
// (grounded on the teacher's configs/func(*configs) and on
// zzenonn-go-zdd's Config/Option).
type Config struct {
	nodesize        int // initial number of nodes in the store
	cachesize       int // initial size of the (shared) operation cache
	cacheratio      int // cache-to-store growth ratio (%), 0 = fixed size
	maxnodesize     int // hard cap on store size, 0 = unlimited
	maxnodeincrease int // cap on the size increase of a single resize
	minfreenodes    int // minimum free-node ratio (%) kept after a GC

	recursionLimit int // global recursion-depth budget (spec.md §5)

	workers     int // builder worker-pool size, 1 = sequential
	memoryLimit int64
}

// defaultConfig mirrors the teacher's makeconfigs defaults, extended with
// the builder/resource-model fields spec.md §5 requires.
func defaultConfig() *Config {
	return &Config{
		nodesize:        1000,
		cachesize:       10000,
		maxnodeincrease: 1 << 20,
		minfreenodes:    20,
		recursionLimit:  1 << 16,
		workers:         1,
		memoryLimit:     1 << 30,
	}
}

// Option configures a Manager at construction time.
type Option func(*Config)

// Nodesize sets the initial number of slots in the node store.
func Nodesize(size int) Option {
	return func(c *Config) { c.nodesize = size }
}

// Maxnodesize caps the total number of nodes the store may grow to. The
// zero value (the default) means no limit.
func Maxnodesize(size int) Option {
	return func(c *Config) { c.maxnodesize = size }
}

// Maxnodeincrease caps how many nodes a single resize may add. The default
// is about one million nodes; zero removes the limit.
func Maxnodeincrease(size int) Option {
	return func(c *Config) { c.maxnodeincrease = size }
}

// Minfreenodes sets the free-node ratio (%) that must remain after a GC
// before a resize is triggered instead. The default is 20.
func Minfreenodes(ratio int) Option {
	return func(c *Config) { c.minfreenodes = ratio }
}

// Cachesize sets the initial size of the shared operation cache.
func Cachesize(size int) Option {
	return func(c *Config) { c.cachesize = size }
}

// Cacheratio sets the cache-to-store growth ratio (%) used whenever the
// node store resizes. Zero (the default) keeps the cache size fixed.
func Cacheratio(ratio int) Option {
	return func(c *Config) { c.cacheratio = ratio }
}

// RecursionLimit sets the global recursion-depth budget shared by every
// kernel operation (spec.md §5 "Resource limits"). Exceeding it is a fatal
// error (see errors.go).
func RecursionLimit(limit int) Option {
	return func(c *Config) { c.recursionLimit = limit }
}

// WithWorkers sets the number of goroutines the DD Builder may use to
// process a single level's frontier in parallel. Values <= 0 default to
// runtime.NumCPU, following zzenonn-go-zdd's WithParallel. 1 (the default)
// disables parallelism.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n <= 0 {
			c.workers = runtime.NumCPU()
			return
		}
		c.workers = n
	}
}

// WithMemoryLimit records a soft memory budget, in bytes, in the Config.
// Nothing in the package reads it: Build and the node store do not check
// memory use against it.
func WithMemoryLimit(bytes int64) Option {
	return func(c *Config) { c.memoryLimit = bytes }
}
