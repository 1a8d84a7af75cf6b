// Package catalog loads and validates the trait catalog.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

//go:embed default_traits.json
var defaultTraits []byte

var validate = validator.New()

// Default returns the embedded catalog
func Default() (*traits.TraitsData, error) {
	return Parse(defaultTraits)
}

// Load reads a catalog file, falling back to the embedded catalog when
// path is empty
func Load(path string) (*traits.TraitsData, error) {
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read trait catalog %s", path)
	}

	return Parse(raw)
}

// Parse decodes and validates a catalog. Every category needs all five
// tiers as lists and every trait needs a name and description.
func Parse(raw []byte) (*traits.TraitsData, error) {
	var data traits.TraitsData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeValidation, "failed to decode trait catalog")
	}

	if err := validate.Struct(&data); err != nil {
		return nil, integrityError(err)
	}

	return &data, nil
}

func integrityError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WrapWithCode(err, errors.CodeValidation, "invalid trait catalog")
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "TraitsData.")
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is missing", field))
		default:
			problems = append(problems, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}

	return errors.Validationf("invalid trait catalog: %s", strings.Join(problems, "; ")).
		WithMeta("problems", problems)
}
