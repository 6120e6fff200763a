package runtime

// compactStorage is the accelerated record backend: every member lives
// in one flat backing array, positionals first, named values after, with
// a parallel name index. Name lookup is a linear scan over that index.
type compactStorage struct {
	cells []Value
	names []string
}

func newCompactStorage(positionals []Value, entries []NamedEntry) *compactStorage {
	deduped := dedupeEntries(entries)
	cells := make([]Value, 0, len(positionals)+len(deduped))
	cells = append(cells, positionals...)
	names := make([]string, 0, len(deduped))
	for _, e := range deduped {
		cells = append(cells, e.Value)
		names = append(names, e.Name)
	}
	return &compactStorage{cells: cells, names: names}
}

// dedupeEntries collapses repeated names to the last occurrence while
// keeping first-seen order, matching mapping update semantics.
func dedupeEntries(entries []NamedEntry) []NamedEntry {
	if len(entries) < 2 {
		return entries
	}
	index := make(map[string]int, len(entries))
	out := make([]NamedEntry, 0, len(entries))
	for _, e := range entries {
		if at, seen := index[e.Name]; seen {
			out[at].Value = e.Value
			continue
		}
		index[e.Name] = len(out)
		out = append(out, e)
	}
	return out
}

func (s *compactStorage) positionalCount() int { return len(s.cells) - len(s.names) }

func (s *compactStorage) positionalAt(i int) Value { return s.cells[i] }

func (s *compactStorage) namedCount() int { return len(s.names) }

func (s *compactStorage) namedKey(i int) string { return s.names[i] }

func (s *compactStorage) lookup(name string) (Value, bool) {
	base := len(s.cells) - len(s.names)
	for i, n := range s.names {
		if n == name {
			return s.cells[base+i], true
		}
	}
	return nil, false
}
