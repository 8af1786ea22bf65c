package main

func init() {
	register(Path{
		Name:  "go",
		Label: "Go",
		New: func() (Func, error) {
			return func(n uint32) (uint64, error) { return fibonacci(uint64(n)), nil }, nil
		},
	})
}

// Exponential on purpose: every path has to do the same amount of work.
func fibonacci(n uint64) uint64 {
	if n <= 1 {
		return n
	}
	return fibonacci(n-1) + fibonacci(n-2)
}
