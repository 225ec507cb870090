package rule

import (
	"testing"

	"github.com/donutnomad/rulekit/internal/mocks"
	"github.com/donutnomad/rulekit/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"
)

func TestFormatID(t *testing.T) {
	tests := []struct {
		prefix  string
		number  int
		want    string
		wantErr error
	}{
		{"MOCK", 1, "MOCK0001", nil},
		{"MOCK", 1002, "MOCK1002", nil},
		{"AB", 0, "AB0000", nil},
		{"AB", 9999, "AB9999", nil},
		{"AB", 10000, "", ErrNumberRange},
		{"AB", -1, "", ErrNumberRange},
		{"A1", 1, "", ErrPrefix},
		{"", 1, "", ErrPrefix},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := FormatID(tt.prefix, tt.number)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, ValidID(got))
		})
	}
}

func TestDeriveID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		decl   string
		id     string
		number int
		ok     bool
	}{
		{"exact", "MOCK", "MOCK0001", "MOCK0001", 1, true},
		{"with suffix", "MOCK", "MOCK1002_UnderscoreName", "MOCK1002", 1002, true},
		{"camel suffix", "MOCK", "MOCK0002EmptyBody", "MOCK0002", 2, true},
		{"too short", "MOCK", "MOCK01", "", 0, false},
		{"wrong prefix", "MOCK", "FAKE0001", "", 0, false},
		{"letters in number", "MOCK", "MOCK00A1", "", 0, false},
		{"lowercase prefix mismatch", "MOCK", "mock0001", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, number, err := DeriveID(tt.prefix, tt.decl)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.number, number)
		})
	}
}

func TestNewDescriptorResources(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	provider.EXPECT().Lookup("MOCK0001_Title", language.English).Return("Do not panic", true).AnyTimes()
	provider.EXPECT().Lookup("MOCK0001_MessageFormat", language.English).Return("call to %s", true).AnyTimes()
	provider.EXPECT().Lookup("MOCK0001_Description", language.English).Return("", false).AnyTimes()

	cfg := Config{Prefix: "MOCK", DocsBaseURI: "https://example.com/rules/", Resources: provider}
	d, err := cfg.NewDescriptor(1, "Mock", SeverityError)
	require.NoError(t, err)

	assert.Equal(t, "MOCK0001", d.ID)
	assert.Equal(t, "Mock", d.Category)
	assert.Equal(t, SeverityError, d.DefaultSeverity)
	assert.True(t, d.EnabledByDefault)
	assert.Equal(t, "https://example.com/rules/MOCK0001.md", d.HelpLinkURI)
	assert.Equal(t, "Do not panic", d.Title.String())
	assert.Equal(t, "MOCK0001_Title", d.Title.Key())
	assert.True(t, d.Description.IsZero())
	assert.Equal(t, "call to panic", d.Message("panic"))
}

func TestNewDescriptorSeverityDefaults(t *testing.T) {
	cfg := Config{
		Prefix:          "MOCK",
		DefaultSeverity: CategoryDefaults(map[string]Severity{"Mapped": SeverityWarning}),
	}

	d, err := cfg.NewDescriptor(1002, "Mapped")
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, d.DefaultSeverity)

	d, err = cfg.NewDescriptor(1003, "Mapped", SeverityHidden)
	require.NoError(t, err)
	assert.Equal(t, SeverityHidden, d.DefaultSeverity, "explicit severity wins over the category default")

	_, err = cfg.NewDescriptor(1, "Unmapped")
	assert.ErrorIs(t, err, ErrNoSeverity)

	_, err = (&Config{Prefix: "MOCK"}).NewDescriptor(1, "Mapped")
	assert.ErrorIs(t, err, ErrNoSeverity)

	_, err = cfg.NewDescriptor(1, "Mock", SeverityError, SeverityInfo)
	assert.ErrorIs(t, err, ErrSeverityArgs)

	_, err = cfg.NewDescriptor(1, "Mock", Severity(42))
	assert.Error(t, err)
}

func TestNewDescriptorNoResources(t *testing.T) {
	cfg := Config{Prefix: "MOCK"}
	d, err := cfg.NewDescriptor(7, "Mock", SeverityInfo)
	require.NoError(t, err)

	assert.True(t, d.Title.IsZero())
	assert.True(t, d.MessageFormat.IsZero())
	assert.Equal(t, "MOCK0007.md", d.HelpLinkURI)
	assert.Equal(t, "MOCK0007", d.Message("ignored"))
}

func TestDescriptorMessageFallsBackToTitle(t *testing.T) {
	d := &Descriptor{ID: "MOCK0001", Title: resource.Literal("Do not panic")}
	assert.Equal(t, "Do not panic", d.Message())

	d.MessageFormat = resource.Literal("100%")
	assert.Equal(t, "100%", d.Message(), "format without args is used verbatim")
}

func TestHelpLink(t *testing.T) {
	assert.Equal(t, "MOCK0001.md", HelpLink("", "MOCK0001"))
	assert.Equal(t, "https://x/docs/MOCK0001.md", HelpLink("https://x/docs", "MOCK0001"))
	assert.Equal(t, "https://x/docs/MOCK0001.md", HelpLink("https://x/docs//", "MOCK0001"))
}
