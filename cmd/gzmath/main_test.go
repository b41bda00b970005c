package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"gzmath"}, args...))
	return out.String(), err
}

func TestInertiaCommand(t *testing.T) {
	out, err := run(t, "", "inertia", "--eigen", "../../config/testdata/hull.yaml")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldStartWith, "hull\n")
	for _, label := range []string{"p", "q", "r", "x", "y", "z"} {
		test.That(t, out, test.ShouldContainSubstring, " "+label+" ")
	}
	test.That(t, out, test.ShouldContainSubstring, "5.3")
	test.That(t, out, test.ShouldContainSubstring, "positive definite: true")
	test.That(t, out, test.ShouldContainSubstring, "eigenvalues: ")

	out, err = run(t, "", "inertia", "../../config/testdata/hull.yaml")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldNotContainSubstring, "eigenvalues")

	_, err = run(t, "", "inertia", "../../config/testdata/invalid.yaml")
	test.That(t, err, test.ShouldNotBeNil)

	out, err = run(t, "", "inertia", "../../config/testdata/hull.yaml", "../../config/testdata/buoy.json")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Index(out, "hull"), test.ShouldBeLessThan, strings.Index(out, "buoy"))
	test.That(t, strings.Count(out, "positive definite: true"), test.ShouldEqual, 2)

	_, err = run(t, "", "inertia")
	test.That(t, err, test.ShouldBeError, "expected at least one body file")
}

func TestEvalCommand(t *testing.T) {
	out, err := run(t, "(vec-dot [1 2 0] [2 3 0])", "eval", "-")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "8\n")

	path := filepath.Join(t.TempDir(), "fam.zy")
	source := "(spatial-inertia-matrix (fluid-added-mass (diag3 4 5 6) (diag3 1 2 3) (diag3 0 0 0)))"
	test.That(t, os.WriteFile(path, []byte(source), 0o600), test.ShouldBeNil)
	out, err = run(t, "", "--log-level", "debug", "eval", path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, " p ")

	out, err = run(t, "vectr3", "eval", "-")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, out, test.ShouldNotContainSubstring, "nil")

	_, err = run(t, "(vector3 1)", "eval", "-")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "vector3: expected 3 arguments but got 1")
}

func TestListCommands(t *testing.T) {
	out, err := run(t, "", "materials")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "tungsten")
	test.That(t, strings.Index(out, "styrofoam"), test.ShouldBeLessThan, strings.Index(out, "tungsten"))

	out, err = run(t, "", "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "added_mass")

	out, err = run(t, "", "builtins")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "spatial-inertia-matrix")
}

func TestLogLevelFlag(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "materials")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `invalid log level "loud"`)
}
