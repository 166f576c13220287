package ledger

// Count is a test helper reporting how many records the in-memory store holds.
func Count(s Store) int {
	if mem, ok := s.(*inMemoryStore); ok {
		mem.mu.RLock()
		defer mem.mu.RUnlock()
		return len(mem.records)
	}
	return -1
}
