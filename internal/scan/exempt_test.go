package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarningExempt(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		exempt bool
	}{
		{"env example", ".env.example", true},
		{"env example without dot", "env.example", true},
		{"scoped env example", ".env.local.example", true},
		{"prefixed env example", "local.env.example", true},
		{"nested env example", "apps/web/.env.example", true},
		{"uppercase env example", ".ENV.EXAMPLE", true},
		{"real env file", ".env", false},
		{"env production", ".env.production", false},
		{"unrelated example file", "config.example", false},

		{"readme markdown", "README.md", true},
		{"readme bare", "readme", true},
		{"readme rst", "docs/README.rst", true},
		{"readme lowercase", "readme.txt", true},
		{"readme-ish name", "README-first.md", false},
		{"localized readme", "readme.en.md", false},

		{"templates dir", "templates/invoice.html", true},
		{"nested templates dir", "emails/templates/welcome.tmpl", true},
		{"uppercase templates dir", "Templates/base.html", true},
		{"template singular", "template/base.html", false},
		{"templates as file suffix", "internal/templates.go", false},

		{"ordinary source file", "internal/server.go", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exempt, warningExempt(tt.path))
		})
	}
}
