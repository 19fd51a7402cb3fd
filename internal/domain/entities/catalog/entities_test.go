package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedCADFile(t *testing.T) {
	tests := []struct {
		displayName string
		want        bool
	}{
		{"model.rvt", true},
		{"MODEL.RVT", true},
		{"plan.DwG", true},
		{"building.ifc", true},
		{"part.step", true},
		{"part.stp", true},
		{"assembly.iam", true},
		{"component.ipt", true},
		{"notes.txt", false},
		{"archive.rvt.zip", false},
		{"rvt", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSupportedCADFile(tt.displayName), tt.displayName)
	}
}

func TestCatalogMergeLaterWins(t *testing.T) {
	first := New()
	first["shared.rvt"] = Entry{URN: "urn:first"}
	first["only.dwg"] = Entry{URN: "urn:only"}

	second := New()
	second["shared.rvt"] = Entry{URN: "urn:second"}

	first.Merge(second)
	assert.Equal(t, "urn:second", first["shared.rvt"].URN)
	assert.Equal(t, "urn:only", first["only.dwg"].URN)
}

func TestCatalogNamesSorted(t *testing.T) {
	cat := New()
	cat["b.rvt"] = Entry{URN: "urn:b"}
	cat["a.rvt"] = Entry{URN: "urn:a"}
	cat["c.rvt"] = Entry{URN: "urn:c"}

	assert.Equal(t, []string{"a.rvt", "b.rvt", "c.rvt"}, cat.Names())
}

func TestManifestViewLabel(t *testing.T) {
	assert.Equal(t, "[3D] Model", ManifestView{Name: "Model", Role: "3d"}.Label())
	assert.Equal(t, "[2D] Sheet: A101", ManifestView{Name: "Sheet: A101", Role: "2d"}.Label())
}
