// Package bits implements an LSB-first bit stream over a byte slice.
//
// cser keeps small integers (length prefixes, sign and presence flags) in this
// stream so that the byte stream only carries payload bytes.
package bits

type (
	// Array holds the bit stream bytes.
	Array struct {
		Bytes []byte
	}

	// Writer appends bits to an Array.
	Writer struct {
		*Array
		bitOffset int // next free bit in the last byte, 0 means a new byte is needed
	}

	// Reader consumes bits from an Array.
	Reader struct {
		*Array
		byteOffset int
		bitOffset  int
	}
)

// NewWriter returns a Writer appending to arr.
func NewWriter(arr *Array) *Writer {
	return &Writer{Array: arr}
}

// NewReader returns a Reader positioned at the first bit of arr.
func NewReader(arr *Array) *Reader {
	return &Reader{Array: arr}
}

func (a *Writer) byteBitsFree() int {
	return 8 - a.bitOffset
}

func (a *Writer) writeIntoLastByte(v uint) {
	a.Bytes[len(a.Bytes)-1] |= byte(v << a.bitOffset)
}

// lowBits keeps the lowest 8-drop bits of v.
func lowBits(v uint, drop int) uint {
	return v & (uint(0xff) >> drop)
}

// Write appends the lowest `bits` bits of v. v must fit into `bits`.
func (a *Writer) Write(bits int, v uint) {
	if a.bitOffset == 0 {
		a.Bytes = append(a.Bytes, byte(0))
	}
	free := a.byteBitsFree()
	if bits <= free {
		a.writeIntoLastByte(v)
		if bits == free {
			a.bitOffset = 0
		} else {
			a.bitOffset += bits
		}
		return
	}
	// spill over into the next byte
	a.writeIntoLastByte(lowBits(v, a.bitOffset))
	a.bitOffset = 0
	a.Write(bits-free, v>>free)
}

func (a *Reader) byteBitsFree() int {
	return 8 - a.bitOffset
}

// Read consumes `bits` bits. It panics when the stream is shorter than that.
func (a *Reader) Read(bits int) (v uint) {
	if bits == 0 {
		return 0
	}
	free := a.byteBitsFree()
	if bits <= free {
		v = lowBits(uint(a.Bytes[a.byteOffset]), 8-(a.bitOffset+bits)) >> a.bitOffset
		if bits == free {
			a.bitOffset = 0
			a.byteOffset++
		} else {
			a.bitOffset += bits
		}
		return v
	}
	v = uint(a.Bytes[a.byteOffset]) >> a.bitOffset
	a.bitOffset = 0
	a.byteOffset++
	rest := a.Read(bits - free)
	return v | rest<<free
}

// NonReadBytes counts bytes not yet fully consumed, including a partially read one.
func (a *Reader) NonReadBytes() int {
	return len(a.Bytes) - a.byteOffset
}

// NonReadBits counts unread bits, padding included.
func (a *Reader) NonReadBits() int {
	return a.NonReadBytes()*8 - a.bitOffset
}
