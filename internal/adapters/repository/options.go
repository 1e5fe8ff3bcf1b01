package repository

const defaultHistory = 10

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithHistory sets how many cycle ids are remembered.
func WithHistory(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.keep = n
		}
	}
}
