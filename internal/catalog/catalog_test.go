package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/vertical-mint/internal/catalog"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

func TestDefault(t *testing.T) {
	data, err := catalog.Default()
	require.NoError(t, err)

	for _, c := range traits.Categories {
		cat, ok := data.Category(c)
		require.True(t, ok)
		assert.NotEmpty(t, cat.All(), "category %s", c)
	}

	robot := false
	for _, tr := range data.Species.Rare {
		if tr.Name == "Robot" {
			robot = true
		}
	}
	assert.True(t, robot)
	assert.NotEmpty(t, data.GraphicText)
}

const validTier = `{"Common":[{"name":"a","description":"b"}],"Rare":[],"Epic":[],"Legendary":[],"Mythical":[]}`

func TestParse_EmptyTiersAllowed(t *testing.T) {
	raw := `{"HeadType":` + validTier + `,"EyesFace":` + validTier + `,"ClothingTop":` + validTier +
		`,"CharacterColor":` + validTier + `,"Species":` + validTier + `,"Background":` + validTier + `}`

	data, err := catalog.Parse([]byte(raw))
	require.NoError(t, err)
	assert.Len(t, data.Background.All(), 1)
	assert.Empty(t, data.GraphicText)
}

func TestParse_MissingTier(t *testing.T) {
	noMythical := `{"Common":[],"Rare":[],"Epic":[],"Legendary":[]}`
	raw := `{"HeadType":` + noMythical + `,"EyesFace":` + validTier + `,"ClothingTop":` + validTier +
		`,"CharacterColor":` + validTier + `,"Species":` + validTier + `,"Background":` + validTier + `}`

	_, err := catalog.Parse([]byte(raw))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "HeadType.Mythical is missing")
}

func TestParse_MissingCategory(t *testing.T) {
	raw := `{"HeadType":` + validTier + `,"EyesFace":` + validTier + `,"ClothingTop":` + validTier +
		`,"CharacterColor":` + validTier + `,"Species":` + validTier + `}`

	_, err := catalog.Parse([]byte(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Background.Common is missing")
}

func TestParse_TraitWithoutDescription(t *testing.T) {
	bad := `{"Common":[{"name":"a"}],"Rare":[],"Epic":[],"Legendary":[],"Mythical":[]}`
	raw := `{"HeadType":` + validTier + `,"EyesFace":` + validTier + `,"ClothingTop":` + validTier +
		`,"CharacterColor":` + validTier + `,"Species":` + bad + `,"Background":` + validTier + `}`

	_, err := catalog.Parse([]byte(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Species.Common[0].Description is missing")
}

func TestParse_Malformed(t *testing.T) {
	_, err := catalog.Parse([]byte(`{`))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestLoad_File(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "traits.json")
	raw := `{"HeadType":` + validTier + `,"EyesFace":` + validTier + `,"ClothingTop":` + validTier +
		`,"CharacterColor":` + validTier + `,"Species":` + validTier + `,"Background":` + validTier + `}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	data, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a", data.Species.Common[0].Name)
}
