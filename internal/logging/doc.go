// Package logging provides structured logging for leakgate.
//
// The package wraps Zap with a deliberately small surface: a Config
// validated at startup, console and JSON encoders with ISO8601
// timestamps, and a Sync that tolerates the EINVAL/ENOTTY errors
// Linux returns when flushing stderr.
//
// All log output goes to stderr. Findings and reports go to stdout,
// so anything parsing hook output never sees log lines. The default
// level is warn to keep ordinary pre-commit runs silent.
package logging
