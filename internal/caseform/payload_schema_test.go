package caseform

import (
	"encoding/json"
	"testing"
	"time"

	"case-collector/internal/common/config"
	"case-collector/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayload(t *testing.T) {
	valid, err := json.Marshal(createValidSubmission())
	require.NoError(t, err)

	res, err := ValidatePayload(valid)
	require.NoError(t, err)
	assert.True(t, res.Valid, res.GetErrorMessages())

	tests := []struct {
		name  string
		edit  func(m map[string]interface{})
		field string
		code  string
	}{
		{"missing key", func(m map[string]interface{}) { delete(m, "nome_clinica") }, "nome_clinica", validation.CodeRequired},
		{"count as text", func(m map[string]interface{}) { m["tempo_parceria"] = "seis" }, "tempo_parceria", validation.CodeInvalidType},
		{"tags as text", func(m map[string]interface{}) { m["dor"] = "cac_alto" }, "dor", validation.CodeInvalidType},
		{"empty months", func(m map[string]interface{}) { m["meses"] = []interface{}{} }, "meses", validation.CodeMinItems},
		{"month lead as text", func(m map[string]interface{}) {
			m["meses"].([]interface{})[0].(map[string]interface{})["leads"] = "dez"
		}, "meses[0].leads", validation.CodeInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc map[string]interface{}
			require.NoError(t, json.Unmarshal(valid, &doc))
			tt.edit(doc)
			raw, err := json.Marshal(doc)
			require.NoError(t, err)

			res, err := ValidatePayload(raw)
			require.NoError(t, err)
			require.False(t, res.Valid)
			fe, ok := res.ErrorFor(tt.field)
			require.True(t, ok, "got %v", res.Fields())
			assert.Equal(t, tt.code, fe.Code)
		})
	}
}

func TestValidatePayload_MalformedJSON(t *testing.T) {
	_, err := ValidatePayload([]byte(`{"nome_clinica":`))
	assert.Error(t, err)
}

func TestValidateDocumentPayload_BlankDocumentIsWellShaped(t *testing.T) {
	// A blank form breaks product rules but still has the wire shape.
	res, err := ValidateDocumentPayload(NewForm(newTestSchema(t)).Document())
	require.NoError(t, err)
	assert.True(t, res.Valid, res.GetErrorMessages())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no url", func(c *Config) { c.SinkURL = "" }, "sink_url is required"},
		{"ftp url", func(c *Config) { c.SinkURL = "ftp://example.com" }, "absolute http(s)"},
		{"negative timeout", func(c *Config) { c.SinkTimeout = -time.Second }, "sink_timeout"},
		{"no months", func(c *Config) { c.InitialMonths = 0 }, "initial_months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SinkURL = "https://forms.example.com/f/abc"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	assert.Equal(t, DefaultConfig(), FromAppConfig(nil))

	cfg := FromAppConfig(&config.Config{
		Sink: config.SinkConfig{URL: "https://forms.example.com/f/abc", Timeout: 0, UserAgent: "agency-form"},
		Form: config.FormConfig{InitialMonths: 6},
	})
	assert.Equal(t, 6, cfg.InitialMonths)
	assert.Equal(t, "https://forms.example.com/f/abc", cfg.SinkURL)
	assert.Zero(t, cfg.SinkTimeout)
	assert.Equal(t, "agency-form", cfg.UserAgent)
}
