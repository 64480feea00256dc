package cpu

import (
	"strings"
)

// Cast truncates value to its low bits, and sign extends the result
// from the topmost kept bit.
func Cast(value int64, bits int) (casted int64, err error) {
	if bits <= 0 {
		err = ErrInvalidArgument
		return
	}

	casted = cast(value, bits)
	return
}

func cast(value int64, bits int) int64 {
	if bits >= 64 {
		return value
	}

	mask := uint64(1)<<bits - 1
	word := uint64(value) & mask
	if word&(uint64(1)<<(bits-1)) != 0 {
		word |= ^mask
	}

	return int64(word)
}

// BinaryString renders value, cast to bits, as binary digits in groups
// of four, ie "10 0110 1001".
func BinaryString(value int64, bits int) (text string, err error) {
	if bits <= 0 {
		err = ErrInvalidArgument
		return
	}

	word := uint64(cast(value, bits))

	var sb strings.Builder
	for n := bits - 1; n >= 0; n-- {
		if word&(uint64(1)<<n) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		if n > 0 && n%4 == 0 {
			sb.WriteByte(' ')
		}
	}

	text = sb.String()
	return
}

// shiftLeft multiplies value by 2**count. A negative count shifts right.
func shiftLeft(value int64, count int64) int64 {
	if count < 0 {
		return shiftRight(value, -max(count, -63))
	}

	// Register words are at most 32 bits, so clamping at 32 keeps the
	// low word (all zero) and the sign of any overflow.
	if count > MAX_BITS {
		count = MAX_BITS
	}

	return value << count
}

// shiftRight divides value by 2**count, rounding toward negative
// infinity. A negative count shifts left.
func shiftRight(value int64, count int64) int64 {
	if count < 0 {
		return shiftLeft(value, -max(count, -63))
	}

	if count > 63 {
		count = 63
	}

	return value >> count
}
