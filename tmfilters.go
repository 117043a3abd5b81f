// Package tmfilters is a catalog of GPU fragment-shader filters for text-mode
// renderers. The plugin carries no rendering engine: installing it registers
// each filter's GLSL ES 3.00 source and its default uniforms into a
// host-owned [Registry], and uninstalling it removes them by name.
//
// Every shader samples the layer from `uniform sampler2D u_texture` at
// `in vec2 v_uv`, receives the layer size in `uniform vec2 u_resolution` and
// writes `out vec4 fragColor`. Filter-specific uniforms are named `u_<option>`.
package tmfilters

import (
	"fmt"
)

const (
	// PluginName identifies the plugin to a host's plugin manager.
	PluginName = "textmode.filters"
	// PluginVersion is the version reported to hosts.
	PluginVersion = "1.1.1"
)

// Registry is the host capability filters are registered into.
// Duplicate names and unknown names are handled as the host sees fit.
type Registry interface {
	Register(name, source string, bindings []Binding) error
	Unregister(name string) error
}

// Host is the handle a host passes to plugins on install and uninstall.
type Host interface {
	Filters() Registry
}

// Lifecycle is the plugin contract expected by host plugin managers.
type Lifecycle interface {
	Name() string
	Version() string
	Install(Host) error
	Uninstall(Host) error
}

var _ Lifecycle = Plugin{}

// Plugin registers the built-in filter catalog into a host.
type Plugin struct{}

func (Plugin) Name() string    { return PluginName }
func (Plugin) Version() string { return PluginVersion }

// Install registers every catalog filter into host in catalog order.
// Registration is not deduplicated; installing twice registers every filter twice.
// The first registry error aborts the install and is returned.
func (Plugin) Install(host Host) error {
	reg := host.Filters()
	for i := range catalog {
		fd := &catalog[i]
		err := reg.Register(fd.name, fd.source, fd.Bindings())
		if err != nil {
			return fmt.Errorf("registering filter %q: %w", fd.name, err)
		}
	}
	return nil
}

// Uninstall unregisters every catalog filter from host by name.
// The first registry error aborts the uninstall and is returned.
func (Plugin) Uninstall(host Host) error {
	reg := host.Filters()
	for i := range catalog {
		err := reg.Unregister(catalog[i].name)
		if err != nil {
			return fmt.Errorf("unregistering filter %q: %w", catalog[i].name, err)
		}
	}
	return nil
}
