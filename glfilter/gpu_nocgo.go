//go:build tinygo || !cgo

package glfilter

import (
	"image"
	"log"

	"github.com/soypat/tmfilters"
)

// Window stands in for the GLFW window, which needs cgo.
type Window struct{}

func StartGLFW(cfg Config) (window *Window, terminate func(), err error) {
	return nil, nil, errNoCGo
}

func Viewport(width, height int) {}

// Renderer is unavailable without cgo; every method returns an error.
type Renderer struct{}

func NewRenderer() (*Renderer, error) { return nil, errNoCGo }

func (r *Renderer) SetLogger(l *log.Logger)                            {}
func (r *Renderer) Filters() tmfilters.Registry                        { return r }
func (r *Renderer) Register(string, string, []tmfilters.Binding) error { return errNoCGo }
func (r *Renderer) Unregister(string) error                            { return errNoCGo }
func (r *Renderer) IsRegistered(string) bool                           { return false }
func (r *Renderer) SetSource(image.Image) error                        { return errNoCGo }
func (r *Renderer) Draw(string, ...tmfilters.OptionValue) error        { return errNoCGo }
func (r *Renderer) Delete()                                            {}
func (r *Renderer) ApplyOptions(*image.RGBA, image.Image, tmfilters.Options) error {
	return errNoCGo
}
func (r *Renderer) ApplyShorthand(*image.RGBA, image.Image, string, float32) error {
	return errNoCGo
}
func (r *Renderer) Apply(*image.RGBA, image.Image, string, ...tmfilters.OptionValue) error {
	return errNoCGo
}
