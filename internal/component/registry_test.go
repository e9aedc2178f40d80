package component

import (
	"testing"

	"github.com/go-chi/chi/v5"
)

type fake struct {
	name string
	ddl  []string
}

func (f *fake) Name() string         { return f.name }
func (f *fake) Routes(chi.Router)    {}
func (f *fake) Migrations() []string { return f.ddl }
func (f *fake) Init(Deps) error      { return nil }

func TestRegistryOrderAndMigrations(t *testing.T) {
	mu.Lock()
	saved := registry
	registry = map[string]Component{}
	mu.Unlock()
	defer func() {
		mu.Lock()
		registry = saved
		mu.Unlock()
	}()

	Register(&fake{name: "zeta", ddl: []string{"z1"}})
	Register(&fake{name: "alpha", ddl: []string{"a1", "a2"}})
	Register(&fake{name: "mid"})

	all := All()
	if len(all) != 3 || all[0].Name() != "alpha" || all[2].Name() != "zeta" {
		t.Fatalf("unexpected order: %v", names(all))
	}

	got := Migrations()
	want := []string{"a1", "a2", "z1"}
	if len(got) != len(want) {
		t.Fatalf("migrations = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("migrations = %v, want %v", got, want)
		}
	}
}

func names(cs []Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name()
	}
	return out
}
