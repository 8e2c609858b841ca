package scan

import (
	"path/filepath"
	"strings"
)

// warningExempt reports whether a file's name matches a documentation
// convention under which warning-tier findings are suppressed. Critical
// rules still apply to these files.
func warningExempt(name string) bool {
	return isExampleEnv(name) || isReadme(name) || underTemplates(name)
}

// isExampleEnv matches example environment files: .env.example,
// env.example, .env.local.example, local.env.example and friends.
// Matching is on the basename, case-insensitive.
func isExampleEnv(name string) bool {
	base := strings.ToLower(filepath.Base(name))
	if !strings.HasSuffix(base, ".example") {
		return false
	}
	stem := strings.TrimSuffix(base, ".example")
	return strings.HasPrefix(stem, ".env") ||
		strings.HasPrefix(stem, "env") ||
		strings.HasSuffix(stem, ".env")
}

// isReadme matches README files in any directory, any extension.
func isReadme(name string) bool {
	base := strings.ToLower(filepath.Base(name))
	return strings.TrimSuffix(base, filepath.Ext(base)) == "readme"
}

// underTemplates matches any path with a "templates" directory segment.
func underTemplates(name string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(name), "/") {
		if strings.EqualFold(seg, "templates") {
			return true
		}
	}
	return false
}
