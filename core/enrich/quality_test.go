package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsSummary(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    bool
	}{
		{"empty", "", true},
		{"blank", "   ", true},
		{"short", "Une annonce importante.", true},
		{"ascii ellipsis", "Le constructeur a présenté sa nouvelle gamme de robots industriels lors du salon de Lyon...", true},
		{"unicode ellipsis", "Le constructeur a présenté sa nouvelle gamme de robots industriels lors du salon de Lyon…", true},
		{"few long words", "Anticonstitutionnellement-interconnectées superintelligences-artificielles hyperspécialisées multiplateformes", true},
		{"good", "Le constructeur a présenté sa nouvelle gamme de robots industriels lors du salon de Lyon cette semaine.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NeedsSummary(tt.description))
		})
	}
}
