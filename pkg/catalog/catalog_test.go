package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cat := Default()
	require.NoError(t, cat.Validate())

	tests := []struct {
		id    string
		count int
	}{
		{"tipo_clinica", 7},
		{"perfil_cliente", 5},
		{"origem_cliente", 6},
		{"mkt_anterior", 3},
		{"sim_nao", 2},
		{"dor", 11},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			q, ok := cat.Question(tt.id)
			require.True(t, ok)
			assert.Len(t, q.Options, tt.count)
		})
	}
}

func TestCatalog_Allows(t *testing.T) {
	cat := Default()

	assert.True(t, cat.Allows("tipo_clinica", "hof"))
	assert.True(t, cat.Allows("tipo_clinica", OtherValue))
	assert.False(t, cat.Allows("tipo_clinica", "clinica_estetica"))
	assert.False(t, cat.Allows("perfil_cliente", ""))
	assert.False(t, cat.Allows("unknown", "geral"))
}

func TestQuestion_Label(t *testing.T) {
	q, ok := Default().Question("estrategia_a")
	require.True(t, ok)

	assert.Equal(t, "Google Ads", q.Label("google_ads"))
	assert.Equal(t, "custom", q.Label("custom"))
	assert.Equal(t, []string{"meta_ads", "google_ads", "youtube_ads", "tiktok_ads", OtherValue}, q.Values())
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cat     Catalog
		wantErr string
	}{
		{
			name: "duplicate question",
			cat: Catalog{Questions: []Question{
				{ID: "a", Kind: KindSingle, Options: []Option{{Value: "x"}}},
				{ID: "a", Kind: KindSingle, Options: []Option{{Value: "y"}}},
			}},
			wantErr: `duplicate question "a"`,
		},
		{
			name:    "unknown kind",
			cat:     Catalog{Questions: []Question{{ID: "a", Kind: "free", Options: []Option{{Value: "x"}}}}},
			wantErr: "unknown kind",
		},
		{
			name:    "no options",
			cat:     Catalog{Questions: []Question{{ID: "a", Kind: KindMulti}}},
			wantErr: "has no options",
		},
		{
			name: "duplicate option",
			cat: Catalog{Questions: []Question{
				{ID: "a", Kind: KindMulti, Options: []Option{{Value: "x"}, {Value: "x"}}},
			}},
			wantErr: `duplicate option "x"`,
		},
		{
			name:    "missing required question",
			cat:     *withoutQuestion(Default(), "estrategia_v"),
			wantErr: `required question "estrategia_v" is missing`,
		},
		{
			name:    "required question with wrong kind",
			cat:     *withKind(Default(), "dor", KindSingle),
			wantErr: `question "dor" must be multi`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()

	t.Run("round trips the default catalogue", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.json")
		data, err := json.Marshal(Default())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o600))

		cat, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), cat)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		_, err := LoadCatalog(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})
}

func withoutQuestion(c *Catalog, id string) *Catalog {
	kept := c.Questions[:0]
	for _, q := range c.Questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	c.Questions = kept
	return c
}

func withKind(c *Catalog, id string, kind Kind) *Catalog {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			c.Questions[i].Kind = kind
		}
	}
	return c
}

func TestLoadCatalog_RejectsIncompleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data, err := json.Marshal(withoutQuestion(Default(), "sim_nao"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = LoadCatalog(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sim_nao")
}
