package runtime

// hashMapEntry is one association in a HashMapValue. The key's hash is
// computed at insertion and kept alongside so lookups only run full
// equality on hash collisions.
type hashMapEntry struct {
	key   Value
	value Value
	hash  uint64
}

// HashMapValue associates arbitrary hashable values with values.
// A record keyed in and the equivalent plain tuple index the same
// slot, because lookup follows the same hash and equality contract the
// record itself carries.
type HashMapValue struct {
	entries []hashMapEntry
}

func NewHashMap() *HashMapValue {
	return &HashMapValue{}
}

func (m *HashMapValue) Kind() Kind { return KindHashMap }

func (m *HashMapValue) Len() int { return len(m.entries) }

// Set inserts or replaces the association for key. Unhashable keys
// propagate their *UnhashableError.
func (m *HashMapValue) Set(key Value, value Value) error {
	h, err := HashValue(key)
	if err != nil {
		return err
	}
	if idx, found := m.findEntry(h, key); found {
		m.entries[idx].value = value
		return nil
	}
	m.entries = append(m.entries, hashMapEntry{key: key, value: value, hash: h})
	return nil
}

// Get returns the association for key, failing with *KeyMissingError
// when absent and *UnhashableError when the key cannot hash.
func (m *HashMapValue) Get(key Value) (Value, error) {
	h, err := HashValue(key)
	if err != nil {
		return nil, err
	}
	if idx, found := m.findEntry(h, key); found {
		return m.entries[idx].value, nil
	}
	return nil, &KeyMissingError{Key: Repr(key)}
}

// Delete removes the association for key, reporting whether it existed.
func (m *HashMapValue) Delete(key Value) (bool, error) {
	h, err := HashValue(key)
	if err != nil {
		return false, err
	}
	idx, found := m.findEntry(h, key)
	if !found {
		return false, nil
	}
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	return true, nil
}

func (m *HashMapValue) findEntry(hash uint64, key Value) (int, bool) {
	for idx, entry := range m.entries {
		if entry.hash != hash {
			continue
		}
		if Equal(entry.key, key) {
			return idx, true
		}
	}
	return -1, false
}
