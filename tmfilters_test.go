package tmfilters_test

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/soypat/tmfilters"
	"github.com/soypat/tmfilters/registry"
)

type registerCall struct {
	name     string
	source   string
	bindings []tmfilters.Binding
}

// recorder is a host that records every registry call.
type recorder struct {
	registered   []registerCall
	unregistered []string
	// failOn makes Register or Unregister fail for the given name.
	failOn string
}

var errRecorder = errors.New("recorder: refused")

func (r *recorder) Filters() tmfilters.Registry { return r }

func (r *recorder) Register(name, source string, bindings []tmfilters.Binding) error {
	if name == r.failOn {
		return errRecorder
	}
	r.registered = append(r.registered, registerCall{name: name, source: source, bindings: bindings})
	return nil
}

func (r *recorder) Unregister(name string) error {
	if name == r.failOn {
		return errRecorder
	}
	r.unregistered = append(r.unregistered, name)
	return nil
}

// wantOptions is the option table of every built-in filter in declaration order.
var wantOptions = map[string][]string{
	"brightness":          {"amount"},
	"contrast":            {"amount"},
	"saturation":          {"amount"},
	"hueRotate":           {"angle"},
	"posterize":           {"levels"},
	"chromaticAberration": {"amount", "direction"},
	"pixelate":            {"pixelSize"},
	"gridDistortion": {"gridCellDimensions", "gridPixelDimensions", "gridOffsetDimensions",
		"widthFactors", "heightFactors", "widthVariationScale", "heightVariationScale"},
	"glitch":     {"amount"},
	"crtMattias": {"curvature", "scanSpeed", "time"},
	"scanlines":  {"count", "lineWidth", "intensity", "speed", "time"},
	"vignette":   {"amount", "softness", "roundness"},
	"bloom":      {"threshold", "intensity", "radius"},
	"filmGrain":  {"intensity", "size", "speed", "time"},
}

func TestPluginIdentity(t *testing.T) {
	var p tmfilters.Plugin
	if p.Name() != "textmode.filters" {
		t.Errorf("got name %q", p.Name())
	}
	if p.Version() != "1.1.1" {
		t.Errorf("got version %q", p.Version())
	}
}

func TestInstallRegistersCatalog(t *testing.T) {
	var rec recorder
	err := tmfilters.Plugin{}.Install(&rec)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.registered) != len(wantOptions) {
		t.Fatalf("want %d register calls, got %d", len(wantOptions), len(rec.registered))
	}
	seen := make(map[string]int)
	for _, call := range rec.registered {
		seen[call.name]++
		want, ok := wantOptions[call.name]
		if !ok {
			t.Errorf("unexpected filter %q", call.name)
			continue
		}
		if call.source == "" {
			t.Errorf("%s: empty shader source", call.name)
		}
		var got []string
		for _, b := range call.bindings {
			got = append(got, b.Option)
			if b.Uniform != "u_"+b.Option {
				t.Errorf("%s: option %q bound to uniform %q", call.name, b.Option, b.Uniform)
			}
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: want options %v, got %v", call.name, want, got)
		}
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("%s registered %d times", name, n)
		}
	}
}

func TestUninstallMatchesInstall(t *testing.T) {
	var rec recorder
	p := tmfilters.Plugin{}
	if err := p.Install(&rec); err != nil {
		t.Fatal(err)
	}
	if err := p.Uninstall(&rec); err != nil {
		t.Fatal(err)
	}
	var registered []string
	for _, call := range rec.registered {
		registered = append(registered, call.name)
	}
	unregistered := append([]string{}, rec.unregistered...)
	sort.Strings(registered)
	sort.Strings(unregistered)
	if !reflect.DeepEqual(registered, unregistered) {
		t.Errorf("register/unregister name sets differ:\n%v\n%v", registered, unregistered)
	}
}

func TestInstallTwiceNotDeduplicated(t *testing.T) {
	var rec recorder
	p := tmfilters.Plugin{}
	for i := 0; i < 2; i++ {
		if err := p.Install(&rec); err != nil {
			t.Fatal(err)
		}
	}
	if len(rec.registered) != 28 {
		t.Errorf("want 28 register calls, got %d", len(rec.registered))
	}
}

func TestInstallUninstallRoundTrip(t *testing.T) {
	reg := registry.New()
	p := tmfilters.Plugin{}
	if err := p.Install(reg); err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 14 {
		t.Fatalf("want 14 registered filters, got %d", reg.Len())
	}
	for _, name := range tmfilters.Names() {
		e, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("%s not registered", name)
		}
		fd, _ := tmfilters.Lookup(name)
		if e.Source != fd.Source() {
			t.Errorf("%s: registered source differs from catalog", name)
		}
	}
	if err := p.Uninstall(reg); err != nil {
		t.Fatal(err)
	}
	for _, name := range tmfilters.Names() {
		if reg.IsRegistered(name) {
			t.Errorf("%s still registered after uninstall", name)
		}
	}
}

func TestInstallPropagatesRegistryError(t *testing.T) {
	rec := recorder{failOn: tmfilters.Pixelate}
	p := tmfilters.Plugin{}
	err := p.Install(&rec)
	if !errors.Is(err, errRecorder) {
		t.Fatalf("want recorder error, got %v", err)
	}
	// Filters before pixelate in catalog order were registered, none after.
	names := tmfilters.Names()
	var idx int
	for i, name := range names {
		if name == tmfilters.Pixelate {
			idx = i
		}
	}
	if len(rec.registered) != idx {
		t.Errorf("want %d registrations before failure, got %d", idx, len(rec.registered))
	}
	err = p.Uninstall(&rec)
	if !errors.Is(err, errRecorder) {
		t.Fatalf("want recorder error on uninstall, got %v", err)
	}
}

func TestExactDefaults(t *testing.T) {
	f := tmfilters.Float
	v := tmfilters.Vec2
	factors := make([]float32, 128)
	for i := range factors {
		factors[i] = 0.5
	}
	var tests = []struct {
		name string
		want []tmfilters.Value // In option order of wantOptions.
	}{
		{name: "brightness", want: []tmfilters.Value{f(1)}},
		{name: "contrast", want: []tmfilters.Value{f(1)}},
		{name: "saturation", want: []tmfilters.Value{f(1)}},
		{name: "hueRotate", want: []tmfilters.Value{f(0)}},
		{name: "posterize", want: []tmfilters.Value{f(4)}},
		{name: "chromaticAberration", want: []tmfilters.Value{f(5), v(1, 0)}},
		{name: "pixelate", want: []tmfilters.Value{f(4)}},
		{name: "gridDistortion", want: []tmfilters.Value{
			v(80, 40), v(640, 320), v(0, 0),
			tmfilters.FloatArray(factors), tmfilters.FloatArray(factors),
			f(0.5), f(0.5),
		}},
		{name: "glitch", want: []tmfilters.Value{f(0)}},
		{name: "crtMattias", want: []tmfilters.Value{f(0.5), f(1), f(0)}},
		{name: "scanlines", want: []tmfilters.Value{f(300), f(0.5), f(0.75), f(1), f(0)}},
		{name: "vignette", want: []tmfilters.Value{f(0.5), f(0.5), f(0.5)}},
		{name: "bloom", want: []tmfilters.Value{f(0.5), f(1), f(4)}},
		{name: "filmGrain", want: []tmfilters.Value{f(0.2), f(2), f(1), f(0)}},
	}
	if len(tests) != len(wantOptions) {
		t.Fatalf("default table covers %d of %d filters", len(tests), len(wantOptions))
	}
	for _, test := range tests {
		fd, ok := tmfilters.Lookup(test.name)
		if !ok {
			t.Fatalf("%s not in catalog", test.name)
		}
		got := fd.Bindings()
		options := wantOptions[test.name]
		if len(got) != len(test.want) || len(options) != len(test.want) {
			t.Fatalf("%s: want %d bindings, got %d", test.name, len(test.want), len(got))
		}
		for i, g := range got {
			w := tmfilters.Binding{Uniform: "u_" + options[i], Option: options[i], Default: test.want[i]}
			if g.Uniform != w.Uniform || g.Option != w.Option || !g.Default.Equal(w.Default) {
				t.Errorf("%s: binding %d want %v %v %v, got %v %v %v", test.name, i,
					w.Uniform, w.Option, w.Default, g.Uniform, g.Option, g.Default)
			}
		}
	}
}

func TestGridDistortionFactors(t *testing.T) {
	fd, _ := tmfilters.Lookup(tmfilters.GridDistortion)
	for _, option := range []string{"widthFactors", "heightFactors"} {
		b, ok := fd.Binding(option)
		if !ok {
			t.Fatalf("missing %s", option)
		}
		if b.Default.Kind() != tmfilters.KindFloatArray {
			t.Fatalf("%s: want float array, got %s", option, b.Default.Kind())
		}
		factors := b.Default.AppendFloats(nil)
		if len(factors) != 128 {
			t.Errorf("%s: want 128 factors, got %d", option, len(factors))
		}
		for i, f := range factors {
			if f != 0.5 {
				t.Errorf("%s[%d]=%g, want 0.5", option, i, f)
			}
		}
	}
}

func TestCatalogImmutable(t *testing.T) {
	fd, _ := tmfilters.Lookup(tmfilters.Bloom)
	b := fd.Bindings()
	b[0].Option = "mutated"
	b[0].Default = tmfilters.Float(-1)
	again, _ := tmfilters.Lookup(tmfilters.Bloom)
	if primary, _ := again.Primary(); primary.Option != "threshold" || primary.Default.Float() != 0.5 {
		t.Error("catalog binding mutated through returned slice")
	}
	all := tmfilters.Catalog()
	all[0] = tmfilters.FilterDefinition{}
	if tmfilters.Catalog()[0].Name() != tmfilters.Brightness {
		t.Error("catalog mutated through returned slice")
	}
}

func TestPrimaryOption(t *testing.T) {
	for _, fd := range tmfilters.Catalog() {
		want := wantOptions[fd.Name()][0]
		primary, ok := fd.Primary()
		if !ok || primary.Option != want {
			t.Errorf("%s: want primary option %q, got %q", fd.Name(), want, primary.Option)
		}
	}
	missing, found := tmfilters.Lookup("sepia")
	if found {
		t.Fatal("unexpected filter sepia")
	}
	if _, ok := missing.Primary(); ok {
		t.Error("zero definition reported a primary option")
	}
}

func TestCatalogSourcesImplementInterface(t *testing.T) {
	for _, fd := range tmfilters.Catalog() {
		err := tmfilters.CheckSource(fd.Source(), fd.Bindings())
		if err != nil {
			t.Errorf("%s: %v", fd.Name(), err)
		}
	}
}
