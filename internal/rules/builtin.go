package rules

// Builtin returns the built-in detection rule table.
// Based on common secret patterns from gitleaks and industry standards.
//
// Declaration order is significant: findings are reported rule-major in this
// order within each tier, so the most specific, self-identifying patterns
// come first and loose assignment heuristics come last.
func Builtin() []Rule {
	return []Rule{
		// Cloud providers
		{
			ID:          "aws-access-key-id",
			Description: "AWS Access Key ID",
			Pattern:     `(?i)(A3T[A-Z0-9]|AKIA|AGPA|AIDA|AROA|AIPA|ANPA|ANVA|ASIA)[A-Z0-9]{16}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "aws-secret-access-key",
			Description: "AWS Secret Access Key",
			Pattern:     `(?i)(?:aws_secret_access_key|aws_secret_key|secret_access_key)\s*[:=]\s*['"]?([A-Za-z0-9/+=]{40})['"]?`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "google-api-key",
			Description: "Google API Key",
			Pattern:     `AIza[A-Za-z0-9_\-]{35}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "google-oauth",
			Description: "Google OAuth Client Secret",
			Pattern:     `(?i)client_secret['":\s]+[A-Za-z0-9_\-]{24}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "azure-storage-key",
			Description: "Azure Storage Account Key",
			Pattern:     `(?i)(?:account_?key|storage_?key)\s*[:=]\s*['"]?([A-Za-z0-9+/]{86}==)['"]?`,
			Severity:    SeverityCritical,
		},

		// Platform tokens (prefixes are self-identifying)
		{
			ID:          "github-token",
			Description: "GitHub Personal Access Token",
			Pattern:     `ghp_[A-Za-z0-9]{36}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "github-oauth",
			Description: "GitHub OAuth Access Token",
			Pattern:     `gho_[A-Za-z0-9]{36}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "github-app",
			Description: "GitHub App Token",
			Pattern:     `(?:ghu|ghs)_[A-Za-z0-9]{36}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "github-fine-grained",
			Description: "GitHub Fine-grained Personal Access Token",
			Pattern:     `github_pat_[A-Za-z0-9_]{22,}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "gitlab-token",
			Description: "GitLab Personal Access Token",
			Pattern:     `glpat-[A-Za-z0-9\-]{20,}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "slack-token",
			Description: "Slack Token",
			Pattern:     `xox[baprs]-[A-Za-z0-9\-]{10,}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "npm-token",
			Description: "npm Access Token",
			Pattern:     `npm_[A-Za-z0-9]{36}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "sendgrid-api-key",
			Description: "SendGrid API Key",
			Pattern:     `SG\.[A-Za-z0-9_\-]{22,}\.[A-Za-z0-9_\-]{43,}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "anthropic-api-key",
			Description: "Anthropic API Key",
			Pattern:     `sk-ant-[A-Za-z0-9_\-]{90,}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "openai-api-key",
			Description: "OpenAI API Key",
			Pattern:     `sk-[A-Za-z0-9]{48,}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "heroku-api-key",
			Description: "Heroku API Key",
			Pattern:     `(?i)heroku[_-]?api[_-]?key\s*[:=]\s*[A-Fa-f0-9]{8}-[A-Fa-f0-9]{4}-[A-Fa-f0-9]{4}-[A-Fa-f0-9]{4}-[A-Fa-f0-9]{12}`,
			Severity:    SeverityCritical,
		},

		// Payments
		{
			ID:          "stripe-live-key",
			Description: "Stripe Live Secret Key",
			Pattern:     `(?:sk|rk)_live_[A-Za-z0-9]{24,}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "stripe-webhook-secret",
			Description: "Stripe Webhook Signing Secret",
			Pattern:     `whsec_[A-Za-z0-9]{24,}`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "card-number",
			Description: "Payment Card Number",
			Pattern:     `\b\d{4}-\d{4}-\d{4}-\d{4}\b`,
			Severity:    SeverityCritical,
		},

		// Key material and connection strings
		{
			ID:          "private-key",
			Description: "Private Key",
			Pattern:     `-----BEGIN (?:RSA |DSA |EC |OPENSSH |PGP )?PRIVATE KEY(?:[- ]BLOCK)?-----`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "database-url",
			Description: "Database Connection URL with credentials",
			Pattern:     `(?i)(?:postgres|mysql|mongodb|redis|amqp)://[^:]+:[^@]+@[^\s]+`,
			Severity:    SeverityCritical,
		},

		// Assigned credentials (loose heuristics last)
		{
			ID:          "generic-api-key",
			Description: "Generic API Key",
			Pattern:     `(?i)(?:api[_-]?key|apikey)\s*[:=]\s*['"]?([A-Za-z0-9_\-]{16,64})['"]?`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "generic-secret",
			Description: "Generic Secret",
			Pattern:     `(?i)(?:secret|password|passwd|pwd)\s*[:=]\s*['"]?([^\s'"]{8,})['"]?`,
			Severity:    SeverityCritical,
		},
		{
			ID:          "env-credential",
			Description: "Environment Variable with Credential",
			Pattern:     `(?i)(?:^|[^A-Za-z0-9_])(?:DB_PASSWORD|DATABASE_PASSWORD|MYSQL_PASSWORD|POSTGRES_PASSWORD|REDIS_PASSWORD|MONGO_PASSWORD|API_SECRET|APP_SECRET|SECRET_KEY|ENCRYPTION_KEY|PRIVATE_KEY|AUTH_TOKEN|ACCESS_TOKEN|REFRESH_TOKEN)\s*[:=]\s*['"]?([^\s'"]{8,})['"]?`,
			Severity:    SeverityCritical,
		},

		// Test-mode material
		{
			ID:          "stripe-test-key",
			Description: "Stripe Test Secret Key",
			Pattern:     `sk_test_[A-Za-z0-9]{24,}`,
			Severity:    SeverityWarning,
		},

		// Tokens that are often doc examples
		{
			ID:          "jwt",
			Description: "JSON Web Token",
			Pattern:     `eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`,
			Severity:    SeverityWarning,
		},
		{
			ID:          "bearer-token",
			Description: "Bearer Token in Authorization Header",
			Pattern:     `(?i)(?:authorization|bearer)\s*[:=]\s*['"]?bearer\s+([A-Za-z0-9_\-\.]{20,})['"]?`,
			Severity:    SeverityWarning,
		},

		// Personal data
		{
			ID:          "email-address",
			Description: "Email Address",
			Pattern:     `\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`,
			Severity:    SeverityWarning,
		},
		{
			ID:          "us-ssn",
			Description: "US Social Security Number",
			Pattern:     `\b\d{3}-\d{2}-\d{4}\b`,
			Severity:    SeverityWarning,
		},
		{
			ID:          "us-phone",
			Description: "US Phone Number",
			Pattern:     `\b(?:\+1[-. ])?\(?\d{3}\)?[-. ]\d{3}[-. ]\d{4}\b`,
			Severity:    SeverityWarning,
		},
		{
			ID:          "card-number-unseparated",
			Description: "Possible Payment Card Number",
			Pattern:     `\b(?:4\d{15}|5[1-5]\d{14}|3[47]\d{13})\b`,
			Severity:    SeverityWarning,
		},
	}
}

// DefaultAllowlist returns the built-in match suppressions. These recognize
// placeholder values that credential-assignment rules would otherwise flag:
// shell and template substitutions, environment lookups, and conventional
// dummy words.
func DefaultAllowlist() Allowlist {
	return Allowlist{
		Regexes: []string{
			`\$\{[^}]*\}`,
			`\{\{[^}]*\}\}`,
			`(?i)process\.env\.`,
			`(?i)os\.getenv`,
			`<[^<>]{1,40}>`,
			`(?i)(?:^|[\s'"=:_\-])(?:your|sample|example|placeholder|dummy|changeme|change[_-]me|redacted|xxxx)`,
		},
	}
}
