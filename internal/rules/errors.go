package rules

import "errors"

var (
	// ErrInvalidRegex indicates a rule or allowlist pattern that does not compile.
	ErrInvalidRegex = errors.New("invalid regex pattern")

	// ErrInvalidTOML indicates a project rules file that is not valid TOML.
	ErrInvalidTOML = errors.New("invalid TOML format")
)
