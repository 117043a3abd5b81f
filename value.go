package tmfilters

import (
	"strconv"

	"github.com/soypat/geometry/ms2"
)

// Kind identifies the shape of a uniform [Value].
type Kind uint8

const (
	kindInvalid Kind = iota
	// KindFloat is a single float uniform.
	KindFloat
	// KindVec2 is a vec2 uniform.
	KindVec2
	// KindFloatArray is a float[N] array uniform.
	KindFloatArray
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	case KindFloatArray:
		return "float[]"
	}
	return "invalid"
}

// Value is an immutable uniform value: a float, a vec2 or a float array.
// The zero Value is invalid.
type Value struct {
	kind Kind
	f    float32
	v    ms2.Vec
	arr  []float32
}

// Float returns a float uniform value.
func Float(f float32) Value { return Value{kind: KindFloat, f: f} }

// Vec2 returns a vec2 uniform value.
func Vec2(x, y float32) Value { return Value{kind: KindVec2, v: ms2.Vec{X: x, Y: y}} }

// FloatArray returns a float array uniform value. The contents of a are copied.
func FloatArray(a []float32) Value {
	return Value{kind: KindFloatArray, arr: append([]float32{}, a...)}
}

// filled returns a float array of length n with every element set to f.
func filled(n int, f float32) Value {
	arr := make([]float32, n)
	for i := range arr {
		arr[i] = f
	}
	return Value{kind: KindFloatArray, arr: arr}
}

func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was created by one of the Value constructors.
func (v Value) IsValid() bool { return v.kind != kindInvalid }

// Len returns the number of float components in v.
func (v Value) Len() int {
	switch v.kind {
	case KindFloat:
		return 1
	case KindVec2:
		return 2
	case KindFloatArray:
		return len(v.arr)
	}
	return 0
}

// Float returns the scalar held by v. It panics if v is not a float.
func (v Value) Float() float32 {
	if v.kind != KindFloat {
		panic("tmfilters: Float called on " + v.kind.String() + " value")
	}
	return v.f
}

// Vec2 returns the vector held by v. It panics if v is not a vec2.
func (v Value) Vec2() ms2.Vec {
	if v.kind != KindVec2 {
		panic("tmfilters: Vec2 called on " + v.kind.String() + " value")
	}
	return v.v
}

// AppendFloats appends the float components of v to dst and returns the result.
func (v Value) AppendFloats(dst []float32) []float32 {
	switch v.kind {
	case KindFloat:
		return append(dst, v.f)
	case KindVec2:
		return append(dst, v.v.X, v.v.Y)
	case KindFloatArray:
		return append(dst, v.arr...)
	}
	return dst
}

// GLSLType returns the GLSL element type of the uniform v is assigned to.
// Arrays return their element type; use [Value.Len] for the length.
func (v Value) GLSLType() string {
	switch v.kind {
	case KindFloat, KindFloatArray:
		return "float"
	case KindVec2:
		return "vec2"
	}
	return ""
}

// Equal reports whether v and w have the same kind and components.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind || v.Len() != w.Len() {
		return false
	}
	switch v.kind {
	case KindFloat:
		return v.f == w.f
	case KindVec2:
		return v.v == w.v
	}
	for i := range v.arr {
		if v.arr[i] != w.arr[i] {
			return false
		}
	}
	return true
}

func (v Value) String() string {
	return string(v.AppendString(nil))
}

// AppendString appends a human readable form of v to b: "1.5", "[1, 0]" or "[0.5 ×128]"
// for arrays whose elements are all equal.
func (v Value) AppendString(b []byte) []byte {
	switch v.kind {
	case KindFloat:
		return appendFloat(b, v.f)
	case KindVec2:
		b = append(b, '[')
		b = appendFloat(b, v.v.X)
		b = append(b, ", "...)
		b = appendFloat(b, v.v.Y)
		return append(b, ']')
	case KindFloatArray:
		b = append(b, '[')
		if allEqual(v.arr) && len(v.arr) > 1 {
			b = appendFloat(b, v.arr[0])
			b = append(b, " ×"...)
			b = strconv.AppendInt(b, int64(len(v.arr)), 10)
			return append(b, ']')
		}
		for i, f := range v.arr {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = appendFloat(b, f)
		}
		return append(b, ']')
	}
	return append(b, "<invalid>"...)
}

func appendFloat(b []byte, f float32) []byte {
	return strconv.AppendFloat(b, float64(f), 'g', -1, 32)
}

func allEqual(a []float32) bool {
	for i := 1; i < len(a); i++ {
		if a[i] != a[0] {
			return false
		}
	}
	return true
}
