package perf

// EnableForTest swaps in a fresh collecting registry with periodic summaries
// off and returns a func restoring the previous one.
func EnableForTest() func() {
	prev := std.Swap(NewRegistry(true, 0))
	return func() {
		std.Store(prev)
	}
}
