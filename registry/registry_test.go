package registry_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/soypat/tmfilters"
	"github.com/soypat/tmfilters/registry"
)

func TestMapRegisterUnregister(t *testing.T) {
	var m registry.Map // zero value usable.
	bindings := []tmfilters.Binding{{Uniform: "u_amount", Option: "amount", Default: tmfilters.Float(1)}}
	if err := m.Register("b", "src-b", bindings); err != nil {
		t.Fatal(err)
	}
	if err := m.Register("a", "src-a", nil); err != nil {
		t.Fatal(err)
	}
	if got := m.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("want sorted names [a b], got %v", got)
	}
	// Mutating the caller's slice must not reach the stored entry.
	bindings[0].Option = "mutated"
	e, ok := m.Lookup("b")
	if !ok || e.Source != "src-b" || e.Bindings[0].Option != "amount" {
		t.Errorf("unexpected entry %+v", e)
	}
	// Re-registering replaces.
	if err := m.Register("b", "src-b2", nil); err != nil {
		t.Fatal(err)
	}
	if e, _ := m.Lookup("b"); e.Source != "src-b2" || m.Len() != 2 {
		t.Errorf("re-register did not replace entry: %+v len=%d", e, m.Len())
	}
	if err := m.Unregister("b"); err != nil {
		t.Fatal(err)
	}
	if err := m.Unregister("never-registered"); err != nil {
		t.Errorf("unregistering unknown name: %v", err)
	}
	if m.IsRegistered("b") || m.Len() != 1 {
		t.Errorf("b still registered, len=%d", m.Len())
	}
}

func TestMapPluginInstall(t *testing.T) {
	m := registry.New()
	p := tmfilters.Plugin{}
	if err := p.Install(m); err != nil {
		t.Fatal(err)
	}
	if m.Len() != len(tmfilters.Names()) {
		t.Fatalf("want %d entries, got %d", len(tmfilters.Names()), m.Len())
	}
	// Installing again overwrites and keeps the count.
	if err := p.Install(m); err != nil {
		t.Fatal(err)
	}
	if m.Len() != len(tmfilters.Names()) {
		t.Errorf("want %d entries after reinstall, got %d", len(tmfilters.Names()), m.Len())
	}
	if err := p.Uninstall(m); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Errorf("want empty registry, got %v", m.Names())
	}
}

func TestMapConcurrentAccess(t *testing.T) {
	m := registry.New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := tmfilters.Plugin{}
			for j := 0; j < 10; j++ {
				p.Install(m)
				m.Names()
				p.Uninstall(m)
			}
		}()
	}
	wg.Wait()
	if m.Len() != 0 {
		t.Errorf("want empty registry after concurrent install/uninstall, got %d", m.Len())
	}
}
