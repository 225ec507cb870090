package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    []string
		params  map[string]string
	}{
		{
			name:    "bare",
			comment: "// @RuleFamily",
			want:    []string{"RuleFamily"},
			params:  map[string]string{},
		},
		{
			name:    "plain params",
			comment: "@Rule(owner=mock, category=Mock, severity=error)",
			want:    []string{"Rule"},
			params:  map[string]string{"owner": "mock", "category": "Mock", "severity": "error"},
		},
		{
			name:    "quoted and backtick values",
			comment: "@Rule(Owner=\"two words\", category=`Style, Naming`)",
			want:    []string{"Rule"},
			params:  map[string]string{"owner": "two words", "category": "Style, Naming"},
		},
		{
			name:    "several lines",
			comment: "MOCK0001 reports panics.\n@Rule(owner=mock)\n/* @Deprecated */",
			want:    []string{"Rule", "Deprecated"},
			params:  map[string]string{"owner": "mock"},
		},
		{
			name:    "none",
			comment: "nothing to see here",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.comment)
			require.Len(t, got, len(tt.want))
			for i, name := range tt.want {
				assert.Equal(t, name, got[i].Name)
			}
			if len(got) > 0 {
				assert.Equal(t, tt.params, got[0].Params)
			}
		})
	}
}

func TestAnnotationParams(t *testing.T) {
	ann := Parse("@Rule(owner=mock, severity=)")[0]

	assert.Equal(t, "mock", ann.Param("OWNER"))
	assert.True(t, ann.HasParam("owner"))
	assert.False(t, ann.HasParam("category"))
	assert.Equal(t, "Default", ann.ParamOr("category", "Default"))
	assert.Equal(t, "mock", ann.ParamOr("owner", "x"))
	assert.Equal(t, "@Rule(owner=mock, severity=)", ann.Raw)
}

func TestFilterAndGet(t *testing.T) {
	anns := Parse("@Rule(owner=a)\n@Other\n@Rule(owner=b)")

	assert.Len(t, Filter(anns), 3)
	assert.Len(t, Filter(anns, "Rule"), 2)
	assert.Empty(t, Filter(anns, "Missing"))

	got := Get(anns, "Rule")
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Param("owner"))
	assert.Nil(t, Get(anns, "Missing"))
}
