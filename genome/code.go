// Package genome provides the byte-encoded recipes organisms are built from:
// gene codes, the instruction table and interpreter, mutation and distance.
package genome

// Gene code bytes carry a sign bit and a 7-bit magnitude.
// This is not two's complement: 0x81 is -1 and 0x80 is never produced.
const (
	signBit       = 0x80
	magnitudeMask = 0x7f

	// CodeRange is the number of distinct magnitudes a gene code can hold.
	CodeRange = 128
	// MaxValue is the largest magnitude a gene code can hold.
	MaxValue = CodeRange - 1
)

// FromInt encodes an integer as a gene code byte.
// The magnitude wraps modulo CodeRange, the sign is kept.
func FromInt(i int) byte {
	negative := i < 0
	if negative {
		i = -i
	}
	mag := byte(i % CodeRange)
	if negative && mag != 0 {
		return mag | signBit
	}
	return mag
}

// ToInt decodes a gene code byte.
func ToInt(b byte) int {
	v := int(b & magnitudeMask)
	if b&signBit != 0 {
		return -v
	}
	return v
}

// Abs returns the magnitude of a gene code byte.
func Abs(b byte) int {
	return int(b & magnitudeMask)
}

// Mod returns Abs(b) % div. A non-positive divisor yields 0.
func Mod(b byte, div int) int {
	if div <= 0 {
		return 0
	}
	return Abs(b) % div
}

// ModInt applies the same rule as Mod to an already decoded value.
func ModInt(v, div int) int {
	if div <= 0 {
		return 0
	}
	if v < 0 {
		v = -v
	}
	return v % div
}
