// Package glfilter is an OpenGL host for [tmfilters] filters. A [Renderer]
// implements [tmfilters.Host]: installing the plugin compiles every filter,
// after which images can be rendered through any registered filter.
//
// GPU functionality requires cgo and a current OpenGL 4.3+ context, which
// [StartGLFW] provides. The context must be used from the thread that
// created it; call runtime.LockOSThread in main before starting GLFW.
package glfilter

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/chewxy/math32"
	"github.com/soypat/tmfilters"
)

var (
	ErrUnknownFilter = errors.New("filter not registered")
	ErrUnknownOption = errors.New("unknown filter option")
	ErrOptionKind    = errors.New("option value kind mismatch")
	ErrArrayLength   = errors.New("option array longer than uniform")
	ErrNoOptions     = errors.New("filter has no options")
	errNoSource      = errors.New("no source image set")
	errNoCGo         = errors.New("glfilter requires cgo")
)

// Config configures the GLFW window and GL context created by [StartGLFW].
type Config struct {
	Width, Height int
	Title         string
	// Visible shows the window. Offscreen rendering only needs a hidden window.
	Visible   bool
	Resizable bool
}

// Uniform is a resolved uniform assignment.
type Uniform struct {
	Name  string
	Value tmfilters.Value
}

// vertexSource draws a fullscreen quad with v_uv at (0,0) in the bottom-left corner.
const vertexSource = `#version 300 es
layout(location = 0) in vec2 a_position;
out vec2 v_uv;
void main() {
    v_uv = a_position * 0.5 + 0.5;
    gl_Position = vec4(a_position, 0.0, 1.0);
}
` + "\x00"

// quadVertices are two triangles covering clip space.
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	-1, 1,
	1, -1,
	1, 1,
}

// Resolve returns the uniform assignments for a filter invoked with values.
// Options not present in values take their binding defaults. Array values
// shorter than the default keep the trailing default elements.
func Resolve(bindings []tmfilters.Binding, values []tmfilters.OptionValue) ([]Uniform, error) {
	return appendResolved(nil, bindings, values)
}

func appendResolved(dst []Uniform, bindings []tmfilters.Binding, values []tmfilters.OptionValue) ([]Uniform, error) {
	base := len(dst)
	for _, b := range bindings {
		dst = append(dst, Uniform{Name: b.Uniform, Value: b.Default})
	}
OUTER:
	for _, ov := range values {
		for i, b := range bindings {
			if b.Option != ov.Name {
				continue
			}
			v, err := merge(b.Default, ov.Value)
			if err != nil {
				return dst[:base], fmt.Errorf("option %q: %w", ov.Name, err)
			}
			dst[base+i].Value = v
			continue OUTER
		}
		return dst[:base], fmt.Errorf("%w %q", ErrUnknownOption, ov.Name)
	}
	return dst, nil
}

func merge(def, v tmfilters.Value) (tmfilters.Value, error) {
	if v.Kind() != def.Kind() {
		return tmfilters.Value{}, fmt.Errorf("%w: want %s, got %s", ErrOptionKind, def.Kind(), v.Kind())
	}
	if v.Kind() != tmfilters.KindFloatArray || v.Len() == def.Len() {
		return v, nil
	} else if v.Len() > def.Len() {
		return tmfilters.Value{}, fmt.Errorf("%w: %d > %d", ErrArrayLength, v.Len(), def.Len())
	}
	arr := v.AppendFloats(make([]float32, 0, def.Len()))
	arr = append(arr, def.AppendFloats(nil)[len(arr):]...)
	return tmfilters.FloatArray(arr), nil
}

// Shorthand converts a single scalar filter argument to a value for the
// filter's primary option. Scalars assigned to a vec2 option set both components.
func Shorthand(primary tmfilters.Binding, v float32) (tmfilters.OptionValue, error) {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return tmfilters.OptionValue{}, fmt.Errorf("shorthand value for %q is not finite", primary.Option)
	}
	ov := tmfilters.OptionValue{Name: primary.Option}
	switch primary.Default.Kind() {
	case tmfilters.KindFloat:
		ov.Value = tmfilters.Float(v)
	case tmfilters.KindVec2:
		ov.Value = tmfilters.Vec2(v, v)
	default:
		return tmfilters.OptionValue{}, fmt.Errorf("%w: option %q does not accept a scalar", ErrOptionKind, primary.Option)
	}
	return ov, nil
}

// shorthandFor assigns v to the first of bindings.
func shorthandFor(bindings []tmfilters.Binding, v float32) (tmfilters.OptionValue, error) {
	if len(bindings) == 0 {
		return tmfilters.OptionValue{}, fmt.Errorf("%w: shorthand needs a primary option", ErrNoOptions)
	}
	return Shorthand(bindings[0], v)
}

// logger returns a logger that discards output when l is nil.
func logger(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard, "", 0)
	}
	return l
}

// flipRows copies rows of pix in reverse order into dst, growing dst as needed.
func flipRows(dst, pix []byte, stride int) []byte {
	dst = growBytes(dst, len(pix))
	h := len(pix) / stride
	for y := 0; y < h; y++ {
		copy(dst[(h-1-y)*stride:(h-y)*stride], pix[y*stride:(y+1)*stride])
	}
	return dst
}

func growBytes(b []byte, n int) []byte {
	if cap(b) < n {
		return make([]byte, n)
	}
	return b[:n]
}
