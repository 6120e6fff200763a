package runtime

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hash combination constants for records with named members, applied in
// the manner of tuple-hash mixing so "positionals only" and
// "positionals plus these named members" always land apart.
const (
	hashMultiplier uint64 = 0x9e3779b97f4a7c15
	hashTail       uint64 = 97531
)

// HashValue computes the stable hash of a value. Mutable containers
// (arrays, maps), callables and hash maps do not hash; the failure
// carries the offending kind and propagates through any enclosing
// tuple or record unchanged.
func HashValue(v Value) (uint64, error) {
	switch val := v.(type) {
	case NilValue:
		return taggedHash(KindNil, nil), nil
	case BoolValue:
		var b byte
		if val.Val {
			b = 1
		}
		return taggedHash(KindBool, []byte{b}), nil
	case IntegerValue:
		return taggedHash(KindInteger, uint64Bytes(uint64(val.Val))), nil
	case FloatValue:
		return taggedHash(KindFloat, uint64Bytes(math.Float64bits(val.Val))), nil
	case CharValue:
		return taggedHash(KindChar, uint64Bytes(uint64(val.Val))), nil
	case StringValue:
		return taggedHash(KindString, []byte(val.Val)), nil
	case *TupleValue:
		return hashElements(val.Elements)
	case *RecordValue:
		return val.Hash()
	default:
		return 0, &UnhashableError{Kind: v.Kind()}
	}
}

func taggedHash(k Kind, content []byte) uint64 {
	d := xxhash.New()
	_, _ = d.Write([]byte{byte(k)})
	if len(content) > 0 {
		_, _ = d.Write(content)
	}
	return d.Sum64()
}

func uint64Bytes(u uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	return buf[:]
}

// hashElements folds an ordered sequence of element hashes into one
// digest. This is the tuple hash, and also the base of every record
// hash, so a record without named members hashes exactly like the
// equivalent plain tuple.
func hashElements(elements []Value) (uint64, error) {
	d := xxhash.New()
	_, _ = d.Write([]byte{byte(KindTuple)})
	for _, el := range elements {
		h, err := HashValue(el)
		if err != nil {
			return 0, err
		}
		_, _ = d.Write(uint64Bytes(h))
	}
	return d.Sum64(), nil
}

// Hash returns the record's hash, computing it on first request and
// memoizing it for the record's lifetime. Only successful computations
// are cached; an unhashable member fails the same way on every call.
func (v *RecordValue) Hash() (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.hashOK {
		return v.hashed, nil
	}
	h, err := v.computeHash()
	if err != nil {
		return 0, err
	}
	v.hashed = h
	v.hashOK = true
	return h, nil
}

func (v *RecordValue) computeHash() (uint64, error) {
	result, err := hashElements(v.Positionals())
	if err != nil {
		return 0, err
	}
	if v.store.namedCount() == 0 {
		return result, nil
	}
	// Named members fold in as an unordered set of (key, value) pair
	// hashes: XOR is insertion-order independent, the multiply-add mix
	// keeps "args only" distinct from "args plus keywords".
	var unordered uint64
	for i := 0; i < v.store.namedCount(); i++ {
		name := v.store.namedKey(i)
		val, _ := v.store.lookup(name)
		ph, err := hashPair(name, val)
		if err != nil {
			return 0, err
		}
		unordered ^= ph
	}
	return (result^unordered)*hashMultiplier + hashTail, nil
}

func hashPair(name string, val Value) (uint64, error) {
	vh, err := HashValue(val)
	if err != nil {
		return 0, err
	}
	d := xxhash.New()
	_, _ = d.Write([]byte(name))
	_, _ = d.Write(uint64Bytes(vh))
	return d.Sum64(), nil
}
