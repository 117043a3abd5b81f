//go:build !tinygo && cgo

package glfilter

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/tmfilters"
)

// Window is the GLFW window created by [StartGLFW].
type Window = glfw.Window

// StartGLFW initializes GLFW, creates a window with an OpenGL 4.6 core context
// and makes it current. The returned function terminates GLFW.
func StartGLFW(cfg Config) (window *Window, terminate func(), err error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, nil, errors.New("window dimensions must be positive")
	}
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.Resizable))
	glfw.WindowHint(glfw.Visible, glfwBool(cfg.Visible))
	title := cfg.Title
	if title == "" {
		title = "tmfilters"
	}
	window, err = glfw.CreateWindow(cfg.Width, cfg.Height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// Viewport binds the default framebuffer, sets a width×height viewport and
// clears it to opaque black. Call before [Renderer.Draw] when drawing to a window.
func Viewport(width, height int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Renderer compiles registered filters and renders images through them.
// A Renderer must only be used on the thread owning its GL context.
type Renderer struct {
	programs map[string]*program
	log      *log.Logger

	vao, vbo uint32
	// Source layer texture.
	srcTex        uint32
	srcW, srcH    int
	srcPix        []byte
	fbo, dstTex   uint32
	dstW, dstH    int
	uniformsBuf   []Uniform
	floatsScratch []float32
}

type program struct {
	prog       glgl.Program
	bindings   []tmfilters.Binding
	sampler    int32
	resolution int32
	// locs holds uniform locations in binding order. -1 marks uniforms
	// removed by the GLSL compiler.
	locs []int32
}

var (
	_ tmfilters.Host     = (*Renderer)(nil)
	_ tmfilters.Registry = (*Renderer)(nil)
)

// NewRenderer creates a Renderer on the current GL context.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		programs: make(map[string]*program),
		log:      logger(nil),
	}
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(quadVertices), gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	if err := glgl.Err(); err != nil {
		r.Delete()
		return nil, fmt.Errorf("creating quad: %w", err)
	}
	return r, nil
}

// SetLogger sets the logger for compile and registration messages. nil disables logging.
func (r *Renderer) SetLogger(l *log.Logger) { r.log = logger(l) }

// Filters returns r, which registers filters by compiling them.
func (r *Renderer) Filters() tmfilters.Registry { return r }

// Register checks and compiles a fragment shader. A program registered under
// the same name is replaced once the new program compiles.
func (r *Renderer) Register(name, source string, bindings []tmfilters.Binding) error {
	if err := tmfilters.CheckSource(source, bindings); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertexSource,
		Fragment: source + "\x00",
	})
	if err != nil {
		return fmt.Errorf("compiling %s: %w", name, err)
	}
	p := &program{
		prog:       prog,
		bindings:   append([]tmfilters.Binding{}, bindings...),
		sampler:    uniformLocation(prog, tmfilters.SamplerUniform),
		resolution: uniformLocation(prog, tmfilters.ResolutionUniform),
		locs:       make([]int32, len(bindings)),
	}
	for i, b := range bindings {
		p.locs[i] = uniformLocation(prog, b.Uniform)
		if p.locs[i] < 0 {
			r.log.Printf("glfilter: %s: uniform %s inactive", name, b.Uniform)
		}
	}
	if old, ok := r.programs[name]; ok {
		old.prog.Delete()
	}
	r.programs[name] = p
	r.log.Printf("glfilter: registered %s (%d uniforms)", name, len(bindings))
	return nil
}

// Unregister deletes the named program. Unknown names are a no-op.
func (r *Renderer) Unregister(name string) error {
	p, ok := r.programs[name]
	if !ok {
		return nil
	}
	p.prog.Delete()
	delete(r.programs, name)
	r.log.Printf("glfilter: unregistered %s", name)
	return nil
}

// IsRegistered reports whether a filter is compiled under name.
func (r *Renderer) IsRegistered(name string) bool {
	_, ok := r.programs[name]
	return ok
}

// uniformLocation returns -1 for uniforms that are not active in prog.
func uniformLocation(prog glgl.Program, name string) int32 {
	loc, err := prog.UniformLocation(name + "\x00")
	if err != nil {
		return -1
	}
	return loc
}

// SetSource uploads img as the layer filters sample from.
func (r *Renderer) SetSource(img image.Image) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return errors.New("empty source image")
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*w {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}
	// GL textures start at the bottom row.
	r.srcPix = flipRows(r.srcPix[:0], rgba.Pix[:4*w*h], 4*w)
	if r.srcTex == 0 {
		gl.GenTextures(1, &r.srcTex)
	}
	gl.BindTexture(gl.TEXTURE_2D, r.srcTex)
	setTextureParams()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.srcPix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.srcW, r.srcH = w, h
	return glgl.Err()
}

func setTextureParams() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Draw renders the source layer through the named filter into the bound
// framebuffer. The caller sets the viewport.
func (r *Renderer) Draw(name string, values ...tmfilters.OptionValue) error {
	p, ok := r.programs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	} else if r.srcTex == 0 {
		return errNoSource
	}
	uniforms, err := appendResolved(r.uniformsBuf[:0], p.bindings, values)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	r.uniformsBuf = uniforms
	p.prog.Bind()
	defer p.prog.Unbind()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.srcTex)
	if p.sampler >= 0 {
		gl.Uniform1i(p.sampler, 0)
	}
	if p.resolution >= 0 {
		gl.Uniform2f(p.resolution, float32(r.srcW), float32(r.srcH))
	}
	for i, u := range uniforms {
		loc := p.locs[i]
		if loc < 0 {
			continue
		}
		r.floatsScratch = u.Value.AppendFloats(r.floatsScratch[:0])
		switch u.Value.Kind() {
		case tmfilters.KindFloat:
			gl.Uniform1f(loc, r.floatsScratch[0])
		case tmfilters.KindVec2:
			gl.Uniform2f(loc, r.floatsScratch[0], r.floatsScratch[1])
		case tmfilters.KindFloatArray:
			gl.Uniform1fv(loc, int32(len(r.floatsScratch)), &r.floatsScratch[0])
		}
	}
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return glgl.Err()
}

// Apply renders src through the named filter and stores the result in dst,
// which must have the same size as src.
func (r *Renderer) Apply(dst *image.RGBA, src image.Image, name string, values ...tmfilters.OptionValue) error {
	if dst.Rect.Dx() != src.Bounds().Dx() || dst.Rect.Dy() != src.Bounds().Dy() {
		return fmt.Errorf("destination size %v does not match source %v", dst.Rect.Size(), src.Bounds().Size())
	}
	if _, ok := r.programs[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	err := r.SetSource(src)
	if err != nil {
		return err
	}
	err = r.bindTarget(r.srcW, r.srcH)
	if err != nil {
		return err
	}
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.srcW), int32(r.srcH))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	err = r.Draw(name, values...)
	if err != nil {
		return err
	}
	return r.readTarget(dst)
}

// ApplyOptions renders src through the filter opts belongs to.
func (r *Renderer) ApplyOptions(dst *image.RGBA, src image.Image, opts tmfilters.Options) error {
	return r.Apply(dst, src, opts.FilterName(), opts.AppendOptions(nil)...)
}

// ApplyShorthand renders src through the named filter with v assigned to its primary option.
func (r *Renderer) ApplyShorthand(dst *image.RGBA, src image.Image, name string, v float32) error {
	p, ok := r.programs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	ov, err := shorthandFor(p.bindings, v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return r.Apply(dst, src, name, ov)
}

func (r *Renderer) bindTarget(w, h int) error {
	if r.fbo == 0 {
		gl.GenFramebuffers(1, &r.fbo)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	if r.dstTex == 0 || r.dstW != w || r.dstH != h {
		if r.dstTex == 0 {
			gl.GenTextures(1, &r.dstTex)
		}
		gl.BindTexture(gl.TEXTURE_2D, r.dstTex)
		setTextureParams()
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.dstTex, 0)
		r.dstW, r.dstH = w, h
	}
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fmt.Errorf("framebuffer incomplete: status 0x%x", status)
	}
	return glgl.Err()
}

func (r *Renderer) readTarget(dst *image.RGBA) error {
	w, h := r.dstW, r.dstH
	r.srcPix = growBytes(r.srcPix, 4*w*h)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.srcPix))
	if err := glgl.Err(); err != nil {
		return err
	}
	stride := 4 * w
	for y := 0; y < h; y++ {
		row := r.srcPix[(h-1-y)*stride : (h-y)*stride]
		off := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		copy(dst.Pix[off:off+stride], row)
	}
	return nil
}

// Delete releases every GL resource held by r, including compiled filters.
func (r *Renderer) Delete() {
	for name, p := range r.programs {
		p.prog.Delete()
		delete(r.programs, name)
	}
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		r.fbo = 0
	}
	for _, tex := range []*uint32{&r.srcTex, &r.dstTex} {
		if *tex != 0 {
			gl.DeleteTextures(1, tex)
			*tex = 0
		}
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
}
