// Package report renders scan results for people and for machines.
//
// The console renderer owns the block contract hook users see: a header
// line, one block per finding (file:line, rule label, truncated content),
// and a final status line. Styling is cosmetic and collapses to plain
// text when color is off; block presence and exit codes are the contract.
//
// The JSON writer produces the optional machine-readable run report.
// Findings carry the truncated display line only; raw matched values
// never leave the scanner.
package report
