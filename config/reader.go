package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"go.viam.com/gzmath/logging"
)

// Format is the encoding of a body file.
type Format string

// The supported body file formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(filePath string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Errorf("cannot tell the format of %q, expected a .yaml, .yml or .json file", filePath)
	}
}

// Load reads and validates a body from the given file.
func Load(filePath string) (*Body, error) {
	format, err := FormatFromPath(filePath)
	if err != nil {
		return nil, err
	}
	//nolint:gosec
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf), format)
}

// Read is Load, also logging the body's warnings.
func Read(filePath string, logger logging.Logger) (*Body, error) {
	body, err := Load(filePath)
	if err != nil {
		return nil, err
	}
	for _, w := range body.Warnings() {
		logger.Warnw(w, "file", filePath, "body", body.Name)
	}
	return body, nil
}

// ReadAll reads the given files concurrently, returning the bodies in the same order.
// It stops at the first failure.
func ReadAll(ctx context.Context, filePaths []string, logger logging.Logger) ([]*Body, error) {
	bodies := make([]*Body, len(filePaths))
	g, ctx := errgroup.WithContext(ctx)
	for i, filePath := range filePaths {
		i, filePath := i, filePath
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			body, err := Read(filePath, logger)
			if err != nil {
				return errors.Wrapf(err, "cannot read %s", filePath)
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}

// Parse decodes and validates a body.
func Parse(data []byte, format Format) (*Body, error) {
	return FromReader("", bytes.NewReader(data), format)
}

// FromReader decodes and validates a body from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, format Format) (*Body, error) {
	var body Body
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&body); err != nil {
			return nil, errors.Wrapf(err, "failed to decode body from yaml %s", originalPath)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			return nil, errors.Wrapf(err, "failed to decode body from json %s", originalPath)
		}
	default:
		return nil, errors.Errorf("unknown body format %q", format)
	}
	if err := body.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid body %s", originalPath)
	}
	return &body, nil
}
