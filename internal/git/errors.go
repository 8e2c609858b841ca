package git

import "errors"

// ErrNotRepository indicates the path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")
