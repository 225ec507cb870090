package rule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSeverity(t *testing.T) {
	for name, want := range map[string]Severity{
		"hidden":  SeverityHidden,
		"Info":    SeverityInfo,
		"WARNING": SeverityWarning,
		"warn":    SeverityWarning,
		" error ": SeverityError,
	} {
		got, err := ParseSeverity(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseSeverity("fatal")
	assert.Error(t, err)
}

func TestSeverityOrder(t *testing.T) {
	assert.Less(t, SeverityHidden, SeverityInfo)
	assert.Less(t, SeverityInfo, SeverityWarning)
	assert.Less(t, SeverityWarning, SeverityError)
	assert.False(t, Severity(4).Valid())
	assert.Equal(t, "severity(4)", Severity(4).String())
}

func TestSeverityText(t *testing.T) {
	var cfg struct {
		Level Severity `yaml:"level" json:"level"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("level: warning\n"), &cfg))
	assert.Equal(t, SeverityWarning, cfg.Level)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"warning"}`, string(data))

	assert.Error(t, yaml.Unmarshal([]byte("level: loud\n"), &cfg))
}
