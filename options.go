package tmfilters

import "github.com/soypat/geometry/ms2"

// OptionValue assigns a value to a filter option by its public name.
type OptionValue struct {
	Name  string
	Value Value
}

// Options is implemented by the typed option sets of each built-in filter.
type Options interface {
	// FilterName returns the catalog name of the filter the options apply to.
	FilterName() string
	// AppendOptions appends the option values to dst and returns the result.
	AppendOptions(dst []OptionValue) []OptionValue
}

// DefaultOptions returns the default option values of the named filter, or nil
// if the filter is not in the catalog.
func DefaultOptions(name string) []OptionValue {
	fd, ok := Lookup(name)
	if !ok {
		return nil
	}
	opts := make([]OptionValue, len(fd.bindings))
	for i, b := range fd.bindings {
		opts[i] = OptionValue{Name: b.Option, Value: b.Default}
	}
	return opts
}

func optf(name string, f float32) OptionValue { return OptionValue{Name: name, Value: Float(f)} }
func optv(name string, v ms2.Vec) OptionValue { return OptionValue{Name: name, Value: Vec2(v.X, v.Y)} }

// BrightnessOptions multiplies color by Amount. Default 1.
type BrightnessOptions struct {
	Amount float32
}

func DefaultBrightnessOptions() BrightnessOptions { return BrightnessOptions{Amount: 1} }
func (BrightnessOptions) FilterName() string      { return Brightness }
func (o BrightnessOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("amount", o.Amount))
}

// ContrastOptions scales color around mid-gray by Amount. Default 1.
type ContrastOptions struct {
	Amount float32
}

func DefaultContrastOptions() ContrastOptions { return ContrastOptions{Amount: 1} }
func (ContrastOptions) FilterName() string    { return Contrast }
func (o ContrastOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("amount", o.Amount))
}

// SaturationOptions scales color intensity while keeping luminance.
// 0 is grayscale, default 1 leaves the image unchanged.
type SaturationOptions struct {
	Amount float32
}

func DefaultSaturationOptions() SaturationOptions { return SaturationOptions{Amount: 1} }
func (SaturationOptions) FilterName() string      { return Saturation }
func (o SaturationOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("amount", o.Amount))
}

// HueRotateOptions rotates hue by Angle degrees. Values wrap at 360. Default 0.
type HueRotateOptions struct {
	Angle float32
}

func DefaultHueRotateOptions() HueRotateOptions { return HueRotateOptions{} }
func (HueRotateOptions) FilterName() string     { return HueRotate }
func (o HueRotateOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("angle", o.Angle))
}

// PosterizeOptions quantizes each channel to Levels bands. Default 4.
type PosterizeOptions struct {
	Levels float32
}

func DefaultPosterizeOptions() PosterizeOptions { return PosterizeOptions{Levels: 4} }
func (PosterizeOptions) FilterName() string     { return Posterize }
func (o PosterizeOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("levels", o.Levels))
}

// ChromaticAberrationOptions offsets the red and blue channels by Amount
// pixels along Direction, which is normalized by the shader.
// Defaults: Amount 5, Direction (1,0).
type ChromaticAberrationOptions struct {
	Amount    float32
	Direction ms2.Vec
}

func DefaultChromaticAberrationOptions() ChromaticAberrationOptions {
	return ChromaticAberrationOptions{Amount: 5, Direction: ms2.Vec{X: 1}}
}
func (ChromaticAberrationOptions) FilterName() string { return ChromaticAberration }
func (o ChromaticAberrationOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("amount", o.Amount), optv("direction", o.Direction))
}

// PixelateOptions renders the layer in blocks of PixelSize pixels. Default 4, minimum 1.
type PixelateOptions struct {
	PixelSize float32
}

func DefaultPixelateOptions() PixelateOptions { return PixelateOptions{PixelSize: 4} }
func (PixelateOptions) FilterName() string    { return Pixelate }
func (o PixelateOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("pixelSize", o.PixelSize))
}

// GridDistortionOptions resizes the columns and rows of a character grid.
// Factors are in [0,1] with 0.5 keeping the nominal cell size; the
// variation scales amplify the deviation from 0.5. At most [MaxGridCells]
// factors are used per axis. Nil factor slices are not appended so hosts
// keep the default factors.
type GridDistortionOptions struct {
	GridCellDimensions   ms2.Vec // Columns and rows. Default (80,40).
	GridPixelDimensions  ms2.Vec // Grid size in pixels. Default (640,320).
	GridOffsetDimensions ms2.Vec // Grid offset in pixels. Default (0,0).
	WidthFactors         []float32
	HeightFactors        []float32
	WidthVariationScale  float32 // Default 0.5.
	HeightVariationScale float32 // Default 0.5.
}

func DefaultGridDistortionOptions() GridDistortionOptions {
	return GridDistortionOptions{
		GridCellDimensions:   ms2.Vec{X: 80, Y: 40},
		GridPixelDimensions:  ms2.Vec{X: 640, Y: 320},
		WidthVariationScale:  0.5,
		HeightVariationScale: 0.5,
	}
}
func (GridDistortionOptions) FilterName() string { return GridDistortion }
func (o GridDistortionOptions) AppendOptions(dst []OptionValue) []OptionValue {
	dst = append(dst,
		optv("gridCellDimensions", o.GridCellDimensions),
		optv("gridPixelDimensions", o.GridPixelDimensions),
		optv("gridOffsetDimensions", o.GridOffsetDimensions),
	)
	if o.WidthFactors != nil {
		dst = append(dst, OptionValue{Name: "widthFactors", Value: FloatArray(o.WidthFactors)})
	}
	if o.HeightFactors != nil {
		dst = append(dst, OptionValue{Name: "heightFactors", Value: FloatArray(o.HeightFactors)})
	}
	return append(dst,
		optf("widthVariationScale", o.WidthVariationScale),
		optf("heightVariationScale", o.HeightVariationScale),
	)
}

// GlitchOptions controls digital glitch intensity. 0 (default) disables the effect.
type GlitchOptions struct {
	Amount float32
}

func DefaultGlitchOptions() GlitchOptions { return GlitchOptions{} }
func (GlitchOptions) FilterName() string  { return Glitch }
func (o GlitchOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("amount", o.Amount))
}

// CrtMattiasOptions emulates a curved CRT monitor. Time should advance every frame.
// Defaults: Curvature 0.5, ScanSpeed 1, Time 0.
type CrtMattiasOptions struct {
	Curvature float32
	ScanSpeed float32
	Time      float32
}

func DefaultCrtMattiasOptions() CrtMattiasOptions {
	return CrtMattiasOptions{Curvature: 0.5, ScanSpeed: 1}
}
func (CrtMattiasOptions) FilterName() string { return CrtMattias }
func (o CrtMattiasOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("curvature", o.Curvature), optf("scanSpeed", o.ScanSpeed), optf("time", o.Time))
}

// ScanlinesOptions draws Count horizontal lines across the layer height.
// Defaults: Count 300 (minimum 10), LineWidth 0.5, Intensity 0.75, Speed 1, Time 0.
type ScanlinesOptions struct {
	Count     float32
	LineWidth float32
	Intensity float32
	Speed     float32
	Time      float32
}

func DefaultScanlinesOptions() ScanlinesOptions {
	return ScanlinesOptions{Count: 300, LineWidth: 0.5, Intensity: 0.75, Speed: 1}
}
func (ScanlinesOptions) FilterName() string { return Scanlines }
func (o ScanlinesOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst,
		optf("count", o.Count),
		optf("lineWidth", o.LineWidth),
		optf("intensity", o.Intensity),
		optf("speed", o.Speed),
		optf("time", o.Time),
	)
}

// VignetteOptions darkens the layer edges. Roundness 0 follows the layer
// rectangle and 1 is elliptical. Defaults are all 0.5.
type VignetteOptions struct {
	Amount    float32
	Softness  float32
	Roundness float32
}

func DefaultVignetteOptions() VignetteOptions {
	return VignetteOptions{Amount: 0.5, Softness: 0.5, Roundness: 0.5}
}
func (VignetteOptions) FilterName() string { return Vignette }
func (o VignetteOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("amount", o.Amount), optf("softness", o.Softness), optf("roundness", o.Roundness))
}

// BloomOptions adds glow of Radius pixels around areas brighter than Threshold.
// Defaults: Threshold 0.5, Intensity 1, Radius 4.
type BloomOptions struct {
	Threshold float32
	Intensity float32
	Radius    float32
}

func DefaultBloomOptions() BloomOptions {
	return BloomOptions{Threshold: 0.5, Intensity: 1, Radius: 4}
}
func (BloomOptions) FilterName() string { return Bloom }
func (o BloomOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("threshold", o.Threshold), optf("intensity", o.Intensity), optf("radius", o.Radius))
}

// FilmGrainOptions overlays animated grain that is weaker in dark areas.
// Defaults: Intensity 0.2, Size 2, Speed 1, Time 0.
type FilmGrainOptions struct {
	Intensity float32
	Size      float32
	Speed     float32
	Time      float32
}

func DefaultFilmGrainOptions() FilmGrainOptions {
	return FilmGrainOptions{Intensity: 0.2, Size: 2, Speed: 1}
}
func (FilmGrainOptions) FilterName() string { return FilmGrain }
func (o FilmGrainOptions) AppendOptions(dst []OptionValue) []OptionValue {
	return append(dst, optf("intensity", o.Intensity), optf("size", o.Size), optf("speed", o.Speed), optf("time", o.Time))
}
