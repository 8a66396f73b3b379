package carrier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const agencyLogo = "https://i.imgur.com/uVVShPM.png"

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
		primary string
	}{
		{"exact", "nationwide", "nationwide", "#00659E"},
		{"mixed case substring", "Nationwide Mutual Insurance Co.", "nationwide", "#00659E"},
		{"national general", "Integon / National General", "national general", "#0078C8"},
		{"grange", "NC Grange Mutual", "grange", "#005A41"},
		{"alamance", "ALAMANCE FARMERS", "alamance", "#003A5D"},
		{"progressive", "progressive direct", "progressive", "#003F64"},
		{"dairyland", "Dairyland Auto", "dairyland", "#006699"},
		{"foremost", "Foremost Signature", "foremost", "#004B8E"},
		{"unknown", "Acme Mutual", "", DefaultTheme.Primary},
		{"empty", "", "", DefaultTheme.Primary},
		{"whitespace", "   ", "", DefaultTheme.Primary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Resolve(tt.input, agencyLogo)
			assert.Equal(t, tt.wantKey, b.Key)
			assert.Equal(t, tt.primary, b.Theme.Primary)
			if tt.wantKey == "" {
				assert.Equal(t, agencyLogo, b.LogoURL)
				assert.Equal(t, DefaultTheme, b.Theme)
			} else {
				assert.NotEqual(t, agencyLogo, b.LogoURL)
			}
		})
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	// Both keys are present; the earlier matcher takes priority.
	b := Resolve("progressive quote compared with nationwide", agencyLogo)
	assert.Equal(t, "nationwide", b.Key)

	keys := Keys()
	assert.Equal(t, "national general", keys[0])
	assert.Len(t, keys, 7)
}

func TestEveryKeyResolvesToItself(t *testing.T) {
	for _, key := range Keys() {
		assert.Equal(t, key, Resolve("The "+key+" company", agencyLogo).Key)
	}
}

func TestLookupContact(t *testing.T) {
	c := LookupContact("nc_grange", "336-835-1993")
	assert.Equal(t, "NC Grange", c.Name)
	assert.Equal(t, "800-662-7777", c.ServicePhone)

	c = LookupContact("Progressive Southeastern", "336-835-1993")
	assert.Equal(t, "progressive", c.ID)

	c = LookupContact("Acme Mutual", "336-835-1993")
	assert.Equal(t, "Acme Mutual", c.Name)
	assert.Equal(t, "#", c.PaymentLink)
	assert.Equal(t, "336-835-1993", c.ServicePhone)
	assert.Equal(t, "336-835-1993", c.ClaimsPhone)
}

func TestContactsCarryIDs(t *testing.T) {
	contacts := Contacts()
	assert.Len(t, contacts, 7)
	for _, c := range contacts {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.PaymentLink)
	}
}
