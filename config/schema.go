package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of a body file.
func Schema() ([]byte, error) {
	return json.MarshalIndent(jsonschema.Reflect(&Body{}), "", "  ")
}
