package config

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/gzmath/logging"
	"go.viam.com/gzmath/spatialmath"
)

func TestLoadYAML(t *testing.T) {
	body, err := Load("testdata/hull.yaml")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, body.Name, test.ShouldEqual, "hull")
	test.That(t, body.Warnings(), test.ShouldBeEmpty)

	s, err := body.SpatialInertial()
	test.That(t, err, test.ShouldBeNil)
	fam, ok := s.FluidAddedMass()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, fam.XYZBlockDiagonal(), test.ShouldResemble, spatialmath.DiagonalMatrix3(spatialmath.Vector3d{X: 4, Y: 5, Z: 6}))

	expected := spatialmath.Matrix6d{
		{1.1, 0, 0, 0, 0, 0},
		{0, 4.2, 0, 0, 0, -2},
		{0, 0, 5.3, 0, 2, 0},
		{0, 0, 0, 6, 0, 0},
		{0, 0, 2, 0, 7, 0},
		{0, -2, 0, 0, 0, 8},
	}
	test.That(t, s.SpatialInertiaMatrix().AlmostEqual(expected, 1e-12), test.ShouldBeTrue)
}

func TestLoadJSONEllipsoid(t *testing.T) {
	body, err := Load("testdata/buoy.json")
	test.That(t, err, test.ShouldBeNil)

	s, err := body.SpatialInertial()
	test.That(t, err, test.ShouldBeNil)
	mm := s.Inertial().MassMatrix()
	sphere, err := spatialmath.MassMatrixFromSphere(1000*spatialmath.NewEllipsoid(spatialmath.Vector3d{X: 0.5, Y: 0.5, Z: 0.5}, spatialmath.Material{}).Volume(), 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mm.AlmostEqual(sphere, 1e-9), test.ShouldBeTrue)

	m := s.SpatialInertiaMatrix()
	test.That(t, m[3][3], test.ShouldAlmostEqual, mm.Mass()+261.8)
	test.That(t, m[0][0], test.ShouldAlmostEqual, mm.DiagonalMoments().X)
}

func TestEllipsoidMassOverridesMaterial(t *testing.T) {
	body, err := Parse([]byte("mass: 3\nellipsoid: {radii: \"1 2 3\", material: steel_alloy}\n"), FormatYAML)
	test.That(t, err, test.ShouldBeNil)
	s, err := body.SpatialInertial()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Inertial().MassMatrix().Mass(), test.ShouldAlmostEqual, 3.)
}

func TestWarnings(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	body, err := Read("testdata/skewed.yml", logger)
	test.That(t, err, test.ShouldBeNil)

	warnings := body.Warnings()
	test.That(t, warnings, test.ShouldResemble, []string{"added_mass.xyz is not symmetric; only its upper triangle is used"})
	test.That(t, logs.FilterMessage(warnings[0]).Len(), test.ShouldEqual, 1)

	s, err := body.SpatialInertial()
	test.That(t, err, test.ShouldBeNil)
	m := s.SpatialInertiaMatrix()
	test.That(t, m.IsSymmetric(1e-12), test.ShouldBeTrue)
	test.That(t, m[3][4], test.ShouldEqual, 2.)
	test.That(t, m[4][3], test.ShouldEqual, 2.)
	test.That(t, m[3][1], test.ShouldEqual, 22.)
	test.That(t, m[1][3], test.ShouldEqual, 22.)
	// the inertia axes are rotated a quarter turn about z
	test.That(t, m[0][0], test.ShouldAlmostEqual, 2.)
	test.That(t, m[1][1], test.ShouldAlmostEqual, 1.)
}

func TestInvalidBodies(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	test.That(t, err, test.ShouldNotBeNil)
	for _, msg := range []string{
		"mass must be a non-negative number",
		"invalid com",
		"invalid added_mass.pqr: expected 3 rows but got 1",
	} {
		test.That(t, err.Error(), test.ShouldContainSubstring, msg)
	}

	for _, c := range []struct {
		name string
		body Body
		err  string
	}{
		{"no inertia", Body{Mass: 1}, "one of inertia or ellipsoid is required"},
		{
			"both",
			Body{Mass: 1, Inertia: &Inertia{1, 1, 1, 0, 0, 0}, Ellipsoid: &EllipsoidShape{Radii: "1 1 1"}},
			"mutually exclusive",
		},
		{"massless inertia", Body{Inertia: &Inertia{1, 1, 1, 0, 0, 0}}, "mass must be positive when inertia is given"},
		{"unrealizable", Body{Mass: 1, Inertia: &Inertia{1, 1, 3, 0, 0, 0}}, "not physically realizable"},
		{"bad rpy", Body{Mass: 1, RPY: "0 x 0", Inertia: &Inertia{1, 1, 1, 0, 0, 0}}, "invalid rpy"},
		{"no density", Body{Ellipsoid: &EllipsoidShape{Radii: "1 1 1"}}, "density must be positive"},
		{"unknown material", Body{Ellipsoid: &EllipsoidShape{Radii: "1 1 1", Material: "cheese"}}, `unknown material "cheese"`},
		{
			"material and density",
			Body{Ellipsoid: &EllipsoidShape{Radii: "1 1 1", Material: "water", Density: 3}},
			"material and density are mutually exclusive",
		},
		{"bad radii", Body{Ellipsoid: &EllipsoidShape{Radii: "1 1", Density: 3}}, "invalid ellipsoid radii"},
		{
			"ragged added mass",
			Body{Mass: 1, Inertia: &Inertia{1, 1, 1, 0, 0, 0}, AddedMass: &AddedMass{XYZPQR: [][]float64{{1, 2, 3}, {1}, {1, 2, 3}}}},
			"expected 3 columns in row 1 but got 1",
		},
	} {
		t.Run(c.name, func(t *testing.T) {
			err := c.body.Validate()
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, c.err)
			_, err = c.body.SpatialInertial()
			test.That(t, err, test.ShouldNotBeNil)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	b := Body{Mass: -1, COM: "1", AddedMass: &AddedMass{XYZ: [][]float64{{1}}, PQR: [][]float64{{1}}}}
	err := b.Validate()
	// mass, com, two added mass blocks and the missing inertia
	test.That(t, len(multierr.Errors(err)), test.ShouldEqual, 5)
}

func TestFormats(t *testing.T) {
	for _, c := range []struct {
		path   string
		format Format
		err    bool
	}{
		{"body.yaml", FormatYAML, false},
		{"body.YML", FormatYAML, false},
		{"dir/body.json", FormatJSON, false},
		{"body.toml", "", true},
		{"body", "", true},
	} {
		format, err := FormatFromPath(c.path)
		test.That(t, format, test.ShouldEqual, c.format)
		test.That(t, err != nil, test.ShouldEqual, c.err)
	}

	_, err := Load("testdata/missing.yaml")
	test.That(t, err, test.ShouldNotBeNil)

	_, err = Parse([]byte(`{"mass": 1, "colour": "red"}`), FormatJSON)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "colour")

	_, err = Parse([]byte("mass: 1\ncolour: red\n"), FormatYAML)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "colour")

	_, err = Parse([]byte("mass: 1"), Format("toml"))
	test.That(t, err, test.ShouldBeError, `unknown body format "toml"`)

	body, err := Parse([]byte(`{"name": "cube", "mass": 1, "inertia": {"ixx": 0.1, "iyy": 0.1, "izz": 0.1}}`), FormatJSON)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, body.Name, test.ShouldEqual, "cube")
	test.That(t, body.Inertia.Izz, test.ShouldEqual, 0.1)
}

func TestReadAll(t *testing.T) {
	logger := logging.NewTestLogger(t)
	bodies, err := ReadAll(context.Background(), []string{"testdata/hull.yaml", "testdata/buoy.json", "testdata/skewed.yml"}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(bodies), test.ShouldEqual, 3)
	test.That(t, bodies[0].Name, test.ShouldEqual, "hull")
	test.That(t, bodies[1].Name, test.ShouldEqual, "buoy")
	test.That(t, bodies[2].Name, test.ShouldEqual, "skewed")

	_, err = ReadAll(context.Background(), []string{"testdata/hull.yaml", "testdata/invalid.yaml"}, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot read testdata/invalid.yaml")

	bodies, err = ReadAll(context.Background(), nil, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bodies, test.ShouldBeEmpty)
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	test.That(t, err, test.ShouldBeNil)
	var schema map[string]interface{}
	test.That(t, json.Unmarshal(data, &schema), test.ShouldBeNil)
	for _, field := range []string{`"added_mass"`, `"xyz_pqr"`, `"ixx"`, `"radii"`} {
		test.That(t, string(data), test.ShouldContainSubstring, field)
	}
}
