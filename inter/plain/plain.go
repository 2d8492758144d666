// Package plain is the typed value tree that actions are encoded through.
//
// An action's plain value is a Dict of the shape
//
//	{"type_id": Text, "values": List}
//
// and its wire form is the cser encoding of that tree. Dict keys are written
// in ascending byte order, so a tree has exactly one encoding.
package plain

import (
	"errors"
	"math/big"
	"sort"

	"github.com/rony4d/go-opera-adventure/utils/cser"
)

// Kind tags a value on the wire.
type Kind uint8

const (
	KindInteger Kind = 1 + iota
	KindText
	KindBinary
	KindList
	KindDict
)

// MaxDepth bounds the nesting of lists and dicts on decode.
const MaxDepth = 16

var (
	ErrUnknownKind = errors.New("plain: unknown value kind")
	ErrTooDeep     = errors.New("plain: value nested too deep")
	ErrUnsorted    = errors.New("plain: dict keys not strictly ascending")
)

// Value is one node of the tree.
type Value interface {
	Kind() Kind
}

type (
	// Integer is an arbitrary precision signed integer.
	Integer struct {
		v *big.Int
	}
	// Text is a UTF-8 string.
	Text string
	// Binary is raw bytes.
	Binary []byte
	// List is an ordered sequence.
	List []Value
	// Dict maps text keys to values.
	Dict map[string]Value
)

func (Integer) Kind() Kind { return KindInteger }
func (Text) Kind() Kind    { return KindText }
func (Binary) Kind() Kind  { return KindBinary }
func (List) Kind() Kind    { return KindList }
func (Dict) Kind() Kind    { return KindDict }

// NewInteger wraps v.
func NewInteger(v int64) Integer {
	return Integer{v: big.NewInt(v)}
}

// BigInteger wraps a copy of v.
func BigInteger(v *big.Int) Integer {
	return Integer{v: new(big.Int).Set(v)}
}

// Big returns a copy of the integer.
func (i Integer) Big() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(i.v)
}

// Int64 returns the integer and whether it fits into int64.
func (i Integer) Int64() (int64, bool) {
	b := i.Big()
	return b.Int64(), b.IsInt64()
}

// Keys returns the dict keys in wire order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Marshal encodes v.
func Marshal(v Value) ([]byte, error) {
	return cser.MarshalBinaryAdapter(func(w *cser.Writer) error {
		return write(w, v)
	})
}

func write(w *cser.Writer, v Value) error {
	if v == nil {
		return ErrUnknownKind
	}
	w.U8(uint8(v.Kind()))
	switch val := v.(type) {
	case Integer:
		w.SignedBigInt(val.Big())
	case Text:
		w.SliceBytes([]byte(val))
	case Binary:
		w.SliceBytes(val)
	case List:
		w.U56(uint64(len(val)))
		for _, item := range val {
			if err := write(w, item); err != nil {
				return err
			}
		}
	case Dict:
		w.U56(uint64(len(val)))
		for _, k := range val.Keys() {
			w.SliceBytes([]byte(k))
			if err := write(w, val[k]); err != nil {
				return err
			}
		}
	default:
		return ErrUnknownKind
	}
	return nil
}

// Unmarshal decodes one value and requires raw to be consumed exactly.
func Unmarshal(raw []byte) (Value, error) {
	var out Value
	err := cser.UnmarshalBinaryAdapter(raw, func(r *cser.Reader) error {
		v, err := read(r, 0)
		out = v
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func read(r *cser.Reader, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	switch Kind(r.U8()) {
	case KindInteger:
		return Integer{v: r.SignedBigInt()}, nil
	case KindText:
		return Text(r.SliceBytes(cser.MaxAlloc)), nil
	case KindBinary:
		return Binary(r.SliceBytes(cser.MaxAlloc)), nil
	case KindList:
		n := r.U56()
		if n > cser.MaxAlloc {
			return nil, cser.ErrTooLargeAlloc
		}
		list := make(List, 0, n)
		for i := uint64(0); i < n; i++ {
			item, err := read(r, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
		return list, nil
	case KindDict:
		n := r.U56()
		if n > cser.MaxAlloc {
			return nil, cser.ErrTooLargeAlloc
		}
		dict := make(Dict, n)
		prev := ""
		for i := uint64(0); i < n; i++ {
			key := string(r.SliceBytes(cser.MaxAlloc))
			if i > 0 && key <= prev {
				return nil, ErrUnsorted
			}
			prev = key
			item, err := read(r, depth+1)
			if err != nil {
				return nil, err
			}
			dict[key] = item
		}
		return dict, nil
	default:
		return nil, ErrUnknownKind
	}
}

// Equal compares two trees structurally.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Integer:
		return av.Big().Cmp(b.(Integer).Big()) == 0
	case Text:
		return av == b.(Text)
	case Binary:
		return string(av) == string(b.(Binary))
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Dict:
		bv := b.(Dict)
		if len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			if !Equal(v, bv[k]) {
				return false
			}
		}
		return true
	}
	return false
}
