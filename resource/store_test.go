package resource

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestStoreLookupFallback(t *testing.T) {
	s := NewStore(language.English)
	s.Set(language.English, "MOCK0001_Title", "Do not panic")
	s.Set(language.English, "MOCK0002_Title", "Empty body")
	s.Set(language.SimplifiedChinese, "MOCK0001_Title", "不要 panic")

	tests := []struct {
		name string
		key  string
		tag  language.Tag
		want string
		ok   bool
	}{
		{"exact default", "MOCK0001_Title", language.English, "Do not panic", true},
		{"exact other", "MOCK0001_Title", language.SimplifiedChinese, "不要 panic", true},
		{"matched language", "MOCK0001_Title", language.Chinese, "不要 panic", true},
		{"missing in language falls back", "MOCK0002_Title", language.SimplifiedChinese, "Empty body", true},
		{"unknown language falls back", "MOCK0001_Title", language.Japanese, "Do not panic", true},
		{"missing key", "MOCK0003_Title", language.English, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Lookup(tt.key, tt.tag)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreLanguages(t *testing.T) {
	s := NewStore(language.English)
	s.Set(language.German, "k", "v")
	s.Set(language.German, "k2", "v2")

	assert.Equal(t, []language.Tag{language.English, language.German}, s.Languages())
	assert.Equal(t, 2, s.Len(language.German))
	assert.Equal(t, 0, s.Len(language.English))
}

func TestLoadYAMLShapes(t *testing.T) {
	doc := `
MOCK0001_Title: Do not panic
MOCK0002:
  Title: Empty function body
  MessageFormat: function %s has an empty body
MOCK0003_Description: 42
`
	s := NewStore(language.English)
	require.NoError(t, s.LoadYAML(strings.NewReader(doc), language.English))

	for key, want := range map[string]string{
		"MOCK0001_Title":         "Do not panic",
		"MOCK0002_Title":         "Empty function body",
		"MOCK0002_MessageFormat": "function %s has an empty body",
		"MOCK0003_Description":   "42",
	} {
		got, ok := s.Lookup(key, language.English)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
}

func TestLoadYAMLEmpty(t *testing.T) {
	s := NewStore(language.English)
	require.NoError(t, s.LoadYAML(strings.NewReader(""), language.English))
}

func TestLoadJSON(t *testing.T) {
	s := NewStore(language.English)
	err := s.LoadJSON(strings.NewReader(`{"MOCK0001": {"Title": "Do not panic"}, "MOCK0001_Description": "long"}`), language.English)
	require.NoError(t, err)

	v, ok := s.Lookup("MOCK0001_Title", language.English)
	require.True(t, ok)
	assert.Equal(t, "Do not panic", v)

	v, ok = s.Lookup("MOCK0001_Description", language.English)
	require.True(t, ok)
	assert.Equal(t, "long", v)
}

func TestLoadJSONInvalid(t *testing.T) {
	s := NewStore(language.English)
	assert.Error(t, s.LoadJSON(strings.NewReader(`{"a":`), language.English))
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"res/rules.yaml":         {Data: []byte("MOCK0001_Title: Do not panic\n")},
		"res/rules.zh-Hans.yaml": {Data: []byte("MOCK0001_Title: 不要 panic\n")},
		"res/rules.de.json":      {Data: []byte(`{"MOCK0001_Title": "Keine Panik"}`)},
		"res/README.md":          {Data: []byte("ignored")},
	}
	s := NewStore(language.English)
	require.NoError(t, s.LoadFS(fsys, "res"))

	v, _ := s.Lookup("MOCK0001_Title", language.English)
	assert.Equal(t, "Do not panic", v)
	v, _ = s.Lookup("MOCK0001_Title", language.MustParse("zh-Hans"))
	assert.Equal(t, "不要 panic", v)
	v, _ = s.Lookup("MOCK0001_Title", language.German)
	assert.Equal(t, "Keine Panik", v)
}

func TestLoadFSBadLanguage(t *testing.T) {
	fsys := fstest.MapFS{
		"res/rules.not_a_language!.yaml": {Data: []byte("a: b\n")},
	}
	s := NewStore(language.English)
	assert.Error(t, s.LoadFS(fsys, "res"))
}
