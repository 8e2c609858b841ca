package hook

import "errors"

var (
	// ErrForeignHook indicates a pre-commit hook this tool did not write.
	ErrForeignHook = errors.New("existing pre-commit hook is not managed by leakgate")

	// ErrNotInstalled indicates no managed hook exists to remove.
	ErrNotInstalled = errors.New("no leakgate pre-commit hook installed")
)
