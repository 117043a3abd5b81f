package tmfilters

import (
	_ "embed"
)

// Embedded fragment shaders. All share the interface checked by [CheckSource].
var (
	//go:embed shaders/brightness.frag
	brightnessFrag string
	//go:embed shaders/contrast.frag
	contrastFrag string
	//go:embed shaders/saturation.frag
	saturationFrag string
	//go:embed shaders/hueRotate.frag
	hueRotateFrag string
	//go:embed shaders/posterize.frag
	posterizeFrag string
	//go:embed shaders/chromaticAberration.frag
	chromaticAberrationFrag string
	//go:embed shaders/pixelate.frag
	pixelateFrag string
	//go:embed shaders/gridDistortion.frag
	gridDistortionFrag string
	//go:embed shaders/glitch.frag
	glitchFrag string
	//go:embed shaders/crtMattias.frag
	crtMattiasFrag string
	//go:embed shaders/scanlines.frag
	scanlinesFrag string
	//go:embed shaders/vignette.frag
	vignetteFrag string
	//go:embed shaders/bloom.frag
	bloomFrag string
	//go:embed shaders/filmGrain.frag
	filmGrainFrag string
)
