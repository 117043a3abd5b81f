package tmfilters

import "testing"

func TestValue(t *testing.T) {
	var tests = []struct {
		v       Value
		kind    Kind
		glsl    string
		str     string
		nfloats int
	}{
		{v: Float(1.5), kind: KindFloat, glsl: "float", str: "1.5", nfloats: 1},
		{v: Vec2(1, 0), kind: KindVec2, glsl: "vec2", str: "[1, 0]", nfloats: 2},
		{v: filled(128, 0.5), kind: KindFloatArray, glsl: "float", str: "[0.5 ×128]", nfloats: 128},
		{v: FloatArray([]float32{0.25, 1}), kind: KindFloatArray, glsl: "float", str: "[0.25, 1]", nfloats: 2},
	}
	for _, test := range tests {
		if test.v.Kind() != test.kind {
			t.Errorf("%s: want kind %s, got %s", test.str, test.kind, test.v.Kind())
		}
		if test.v.GLSLType() != test.glsl {
			t.Errorf("%s: want GLSL type %s, got %s", test.str, test.glsl, test.v.GLSLType())
		}
		if got := test.v.String(); got != test.str {
			t.Errorf("want string %q, got %q", test.str, got)
		}
		if got := len(test.v.AppendFloats(nil)); got != test.nfloats || test.v.Len() != got {
			t.Errorf("%s: want %d floats, got %d (Len %d)", test.str, test.nfloats, got, test.v.Len())
		}
		if !test.v.Equal(test.v) {
			t.Errorf("%s: not equal to itself", test.str)
		}
	}
	if Float(1).Equal(Vec2(1, 0)) || filled(2, 0.5).Equal(filled(3, 0.5)) {
		t.Error("values of different shape reported equal")
	}
	if (Value{}).IsValid() {
		t.Error("zero value reported valid")
	}
}

func TestFloatArrayCopies(t *testing.T) {
	src := []float32{1, 2, 3}
	v := FloatArray(src)
	src[0] = 100
	got := v.AppendFloats(nil)
	got[1] = 200
	if again := v.AppendFloats(nil); again[0] != 1 || again[1] != 2 {
		t.Errorf("value mutated through aliasing: %v", again)
	}
}
