package spatialmath

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Material is a named material with a density in kg/m^3.
type Material struct {
	Name    string  `json:"name" yaml:"name"`
	Density float64 `json:"density" yaml:"density"`
}

// Densities of common materials, in kg/m^3.
var materialDensities = map[string]float64{
	"styrofoam":       75.0,
	"pine":            373.0,
	"wood":            700.0,
	"oak":             710.0,
	"ice":             916.0,
	"water":           1000.0,
	"plastic":         1175.0,
	"concrete":        2000.0,
	"aluminum":        2700.0,
	"steel_alloy":     7600.0,
	"steel_stainless": 7800.0,
	"iron":            7874.0,
	"brass":           8600.0,
	"copper":          8940.0,
	"tungsten":        19300.0,
}

// NewMaterial returns an unnamed material of the given density.
func NewMaterial(density float64) Material {
	return Material{Density: density}
}

// MaterialByName looks up one of the built in materials. The lookup is case insensitive.
func MaterialByName(name string) (Material, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	d, ok := materialDensities[key]
	if !ok {
		return Material{}, errors.Errorf("unknown material %q", name)
	}
	return Material{Name: key, Density: d}, nil
}

// Materials returns the built in materials ordered by density.
func Materials() []Material {
	out := make([]Material, 0, len(materialDensities))
	for name, d := range materialDensities {
		out = append(out, Material{Name: name, Density: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Density < out[j].Density })
	return out
}
