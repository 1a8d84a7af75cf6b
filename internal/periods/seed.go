package periods

import (
	"bytes"
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

//go:embed periods.yaml
var seedPeriods []byte

// Seed returns the compiled-in periods
func Seed() ([]*artperiod.ArtPeriod, error) {
	return Parse(seedPeriods)
}

// LoadFile reads periods from a YAML file; an empty path yields the seed
func LoadFile(path string) ([]*artperiod.ArtPeriod, error) {
	if path == "" {
		return Seed()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read periods file %s", path)
	}
	return Parse(raw)
}

// Parse decodes a YAML list of periods, rejecting unknown fields
func Parse(raw []byte) ([]*artperiod.ArtPeriod, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var out []*artperiod.ArtPeriod
	if err := dec.Decode(&out); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeValidation, "failed to decode art periods")
	}
	return out, nil
}
