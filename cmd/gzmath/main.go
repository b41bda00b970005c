// Package main is the gzmath command line tool.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/gzmath/config"
	"go.viam.com/gzmath/linalg"
	"go.viam.com/gzmath/logging"
	"go.viam.com/gzmath/script"
	"go.viam.com/gzmath/spatialmath"
)

const (
	// Flags.
	flagDebug    = "debug"
	flagLogLevel = "log-level"
	flagTimeout  = "timeout"
	flagEigen    = "eigen"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	var logger logging.Logger

	return &cli.App{
		Name:  "gzmath",
		Usage: "inspect the mass properties of bodies moving through a fluid",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "warn",
				Usage: "minimum `LEVEL` to log",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				logger = logging.NewDebugLogger("gzmath")
				return nil
			}
			level, err := logging.LevelFromString(c.String(flagLogLevel))
			if err != nil {
				return err
			}
			logger = logging.NewLoggerAtLevel("gzmath", level)
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				//nolint:errcheck
				logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "inertia",
				Usage:     "print the 6x6 spatial inertia of body files",
				ArgsUsage: "<body.yaml|body.json>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagEigen,
						Usage: "also print the eigenvalues",
					},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() == 0 {
						return errors.New("expected at least one body file")
					}
					bodies, err := config.ReadAll(c.Context, c.Args().Slice(), logger)
					if err != nil {
						return err
					}
					for _, body := range bodies {
						if err := printInertia(c.App.Writer, body, c.Bool(flagEigen)); err != nil {
							return err
						}
					}
					return nil
				},
			},
			{
				Name:      "eval",
				Usage:     "evaluate a script and print its result",
				ArgsUsage: "<script.zy|->",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  flagTimeout,
						Value: script.DefaultTimeout,
						Usage: "stop the script after `DURATION`",
					},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return errors.New("expected one script file, or - for standard input")
					}
					source, err := readScript(c.App.Reader, c.Args().First())
					if err != nil {
						return err
					}
					engine := script.NewEngine(logger)
					engine.SetTimeout(c.Duration(flagTimeout))
					res, err := engine.Eval(c.Context, source)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, formatResult(res))
					return nil
				},
			},
			{
				Name:  "materials",
				Usage: "list the built in materials",
				Action: func(c *cli.Context) error {
					t := table.NewWriter()
					t.AppendHeader(table.Row{"material", "density (kg/m^3)"})
					for _, m := range spatialmath.Materials() {
						t.AppendRow(table.Row{m.Name, m.Density})
					}
					fmt.Fprintln(c.App.Writer, t.Render())
					return nil
				},
			},
			{
				Name:  "schema",
				Usage: "print the JSON schema of body files",
				Action: func(c *cli.Context) error {
					schema, err := config.Schema()
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, string(schema))
					return nil
				},
			},
			{
				Name:  "builtins",
				Usage: "list the functions available to scripts",
				Action: func(c *cli.Context) error {
					t := table.NewWriter()
					t.AppendHeader(table.Row{"name", "usage"})
					for _, b := range script.Builtins() {
						t.AppendRow(table.Row{b.Name, b.Doc})
					}
					fmt.Fprintln(c.App.Writer, t.Render())
					return nil
				},
			},
		},
	}
}

func printInertia(w io.Writer, body *config.Body, eigen bool) error {
	s, err := body.SpatialInertial()
	if err != nil {
		return err
	}
	m := linalg.SpatialInertiaDense(s)
	if body.Name != "" {
		fmt.Fprintln(w, body.Name)
	}
	fmt.Fprintln(w, linalg.RenderMatrix(m, linalg.SpatialLabels...))
	fmt.Fprintf(w, "positive definite: %t\n", linalg.IsPositiveDefinite(m))
	if !eigen {
		return nil
	}
	vals, err := linalg.Eigenvalues(m)
	if err != nil {
		return err
	}
	strs := make([]string, 0, len(vals))
	for _, v := range vals {
		strs = append(strs, fmt.Sprintf("%g", v))
	}
	fmt.Fprintf(w, "eigenvalues: %s\n", strings.Join(strs, " "))
	return nil
}

func readScript(stdin io.Reader, arg string) (string, error) {
	if arg == "-" {
		buf, err := io.ReadAll(stdin)
		return string(buf), err
	}
	//nolint:gosec
	buf, err := os.ReadFile(arg)
	return string(buf), err
}

func formatResult(res interface{}) string {
	switch v := res.(type) {
	case nil:
		return "nil"
	case spatialmath.Matrix6d:
		return linalg.RenderMatrix(linalg.Matrix6ToDense(v), linalg.SpatialLabels...)
	case spatialmath.Matrix3d:
		return linalg.RenderMatrix(linalg.Matrix3ToDense(v))
	case spatialmath.SpatialInertiald:
		return linalg.RenderMatrix(linalg.SpatialInertiaDense(v), linalg.SpatialLabels...)
	default:
		return fmt.Sprintf("%v", v)
	}
}
