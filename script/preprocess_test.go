package script

import (
	"testing"

	"go.viam.com/test"
)

func TestPreprocess(t *testing.T) {
	for _, tc := range []struct {
		name   string
		input  string
		expect string
	}{
		{"kebab case", `(mass-matrix3 1 m)`, `(mass_matrix3 1 m)`},
		{"several hyphens", `(spatial-inertia-matrix s)`, `(spatial_inertia_matrix s)`},
		{"minus operator", `(- 10 5)`, `(- 10 5)`},
		{"negative number", `(vector3 -1 x-1 2)`, `(vector3 -1 x-1 2)`},
		{"string", `(material "steel-alloy")`, `(material "steel-alloy")`},
		{"escaped quote", `"a\"b-c" d-e`, `"a\"b-c" d_e`},
		{"backtick string", "`a-b` c-d", "`a-b` c_d"},
		{"comment", ";; a mass-matrix", "// a mass-matrix"},
		{"comment then code", "; one\n(vec-x v)", "// one\n(vec_x v)"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, preprocess(tc.input), test.ShouldEqual, tc.expect)
		})
	}
}
