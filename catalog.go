package tmfilters

// Filter names.
const (
	Brightness          = "brightness"
	Contrast            = "contrast"
	Saturation          = "saturation"
	HueRotate           = "hueRotate"
	Posterize           = "posterize"
	ChromaticAberration = "chromaticAberration"
	Pixelate            = "pixelate"
	GridDistortion      = "gridDistortion"
	Glitch              = "glitch"
	CrtMattias          = "crtMattias"
	Scanlines           = "scanlines"
	Vignette            = "vignette"
	Bloom               = "bloom"
	FilmGrain           = "filmGrain"
)

// MaxGridCells is the length of the gridDistortion factor arrays and the
// largest column or row count the filter distorts.
const MaxGridCells = 128

// Binding maps a shader uniform to the public option name that sets it
// and the value used when the option is omitted.
type Binding struct {
	Uniform string
	Option  string
	Default Value
}

func bind(option string, def Value) Binding {
	return Binding{Uniform: "u_" + option, Option: option, Default: def}
}

// FilterDefinition is a catalog entry: a named fragment shader with its
// ordered uniform bindings. Definitions are immutable.
type FilterDefinition struct {
	name     string
	source   string
	bindings []Binding
}

// Name returns the catalog key of the filter.
func (fd FilterDefinition) Name() string { return fd.name }

// Source returns the GLSL ES 3.00 fragment shader source.
func (fd FilterDefinition) Source() string { return fd.source }

// Bindings returns a copy of the filter's uniform bindings in declaration order.
func (fd FilterDefinition) Bindings() []Binding {
	return append([]Binding{}, fd.bindings...)
}

// Primary returns the first binding. A host applying a filter with a single
// scalar instead of named options assigns that scalar to the primary option.
// It reports false for a definition without bindings, such as the zero value.
func (fd FilterDefinition) Primary() (Binding, bool) {
	if len(fd.bindings) == 0 {
		return Binding{}, false
	}
	return fd.bindings[0], true
}

// Binding looks up a binding by its option name.
func (fd FilterDefinition) Binding(option string) (Binding, bool) {
	for _, b := range fd.bindings {
		if b.Option == option {
			return b, true
		}
	}
	return Binding{}, false
}

var catalog = []FilterDefinition{
	// Color adjustment.
	{name: Brightness, source: brightnessFrag, bindings: []Binding{
		bind("amount", Float(1)),
	}},
	{name: Contrast, source: contrastFrag, bindings: []Binding{
		bind("amount", Float(1)),
	}},
	{name: Saturation, source: saturationFrag, bindings: []Binding{
		bind("amount", Float(1)),
	}},
	{name: HueRotate, source: hueRotateFrag, bindings: []Binding{
		bind("angle", Float(0)),
	}},
	{name: Posterize, source: posterizeFrag, bindings: []Binding{
		bind("levels", Float(4)),
	}},

	// Distortion.
	{name: ChromaticAberration, source: chromaticAberrationFrag, bindings: []Binding{
		bind("amount", Float(5)),
		bind("direction", Vec2(1, 0)),
	}},
	{name: Pixelate, source: pixelateFrag, bindings: []Binding{
		bind("pixelSize", Float(4)),
	}},
	{name: GridDistortion, source: gridDistortionFrag, bindings: []Binding{
		bind("gridCellDimensions", Vec2(80, 40)),
		bind("gridPixelDimensions", Vec2(640, 320)),
		bind("gridOffsetDimensions", Vec2(0, 0)),
		bind("widthFactors", filled(MaxGridCells, 0.5)),
		bind("heightFactors", filled(MaxGridCells, 0.5)),
		bind("widthVariationScale", Float(0.5)),
		bind("heightVariationScale", Float(0.5)),
	}},

	// Stylization.
	{name: Glitch, source: glitchFrag, bindings: []Binding{
		bind("amount", Float(0)),
	}},
	{name: CrtMattias, source: crtMattiasFrag, bindings: []Binding{
		bind("curvature", Float(0.5)),
		bind("scanSpeed", Float(1)),
		bind("time", Float(0)),
	}},
	{name: Scanlines, source: scanlinesFrag, bindings: []Binding{
		bind("count", Float(300)),
		bind("lineWidth", Float(0.5)),
		bind("intensity", Float(0.75)),
		bind("speed", Float(1)),
		bind("time", Float(0)),
	}},
	{name: Vignette, source: vignetteFrag, bindings: []Binding{
		bind("amount", Float(0.5)),
		bind("softness", Float(0.5)),
		bind("roundness", Float(0.5)),
	}},
	{name: Bloom, source: bloomFrag, bindings: []Binding{
		bind("threshold", Float(0.5)),
		bind("intensity", Float(1)),
		bind("radius", Float(4)),
	}},
	{name: FilmGrain, source: filmGrainFrag, bindings: []Binding{
		bind("intensity", Float(0.2)),
		bind("size", Float(2)),
		bind("speed", Float(1)),
		bind("time", Float(0)),
	}},
}

// Catalog returns the built-in filters in catalog order.
func Catalog() []FilterDefinition {
	return append([]FilterDefinition{}, catalog...)
}

// Names returns the built-in filter names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i := range catalog {
		names[i] = catalog[i].name
	}
	return names
}

// Lookup returns the built-in filter with the given name.
func Lookup(name string) (FilterDefinition, bool) {
	for i := range catalog {
		if catalog[i].name == name {
			return catalog[i], true
		}
	}
	return FilterDefinition{}, false
}
