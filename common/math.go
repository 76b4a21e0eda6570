package common

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// NextPowerOfTwo returns the smallest power of two greater than or equal to v.
// Zero maps to 1. The second return value is false when the result does not fit in T.
//
// Parameters:
//   - v: the value to round up
//
// Returns:
//   - T: the next power of two
//   - bool: false on overflow
func NextPowerOfTwo[T constraints.Unsigned](v T) (T, bool) {
	if v <= 1 {
		return 1, true
	}
	p := T(1)
	for p < v {
		next := p << 1
		if next == 0 || next < p {
			return 0, false
		}
		p = next
	}
	return p, true
}

// NextPowerOfTwoFloat truncates a float toward zero to a uint32 and rounds it up to a power of two.
// Negative, NaN and out-of-range inputs are reported as undefined.
//
// Parameters:
//   - v: the value to convert and round up
//
// Returns:
//   - uint32: the next power of two
//   - bool: false when the value has no defined result
func NextPowerOfTwoFloat(v float32) (uint32, bool) {
	f := float64(v)
	if math.IsNaN(f) || f < 0 || f > math.MaxUint32 {
		return 0, false
	}
	return NextPowerOfTwo(uint32(f))
}

// Signum returns 1 for positive values (including +0), -1 for negative values (including -0)
// and NaN for NaN.
func Signum(v float32) float32 {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return v
	case math.Signbit(f):
		return -1
	default:
		return 1
	}
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite32 reports whether v is neither NaN nor infinite.
func IsFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Coalesce returns the first non-zero value, or the zero value when all are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
