// Package git wraps the repository operations the scanner needs: locating
// the enclosing repository, enumerating files staged for commit, and
// resolving where hooks live. This package never writes to the repository.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// Repo is an opened git repository rooted at a worktree.
type Repo struct {
	repo *gogit.Repository
	root string
}

// Open locates the repository enclosing path, walking up parent directories
// the way git itself does. Bare repositories are rejected: there is nothing
// staged to scan without a worktree.
func Open(path string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree: %w", err)
	}

	return &Repo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the worktree root directory.
func (r *Repo) Root() string { return r.root }

// StagedFiles returns the repo-relative paths staged for the next commit,
// filtered to added, copied, and modified entries, sorted for deterministic
// downstream ordering. Deletions have no content to scan and worktree-only
// changes are not part of the commit.
func (r *Repo) StagedFiles() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading index status: %w", err)
	}

	var files []string
	for path, st := range status {
		switch st.Staging {
		case gogit.Added, gogit.Modified, gogit.Copied:
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Branch returns the checked-out branch name, "detached" when HEAD points
// at a bare commit, or "" when HEAD cannot be resolved (fresh repository).
func (r *Repo) Branch() string {
	head, err := r.repo.Head()
	if err != nil {
		return ""
	}
	if head.Name().IsBranch() {
		return head.Name().Short()
	}
	return "detached"
}

// GitDir resolves the repository's git directory. Linked worktrees and
// submodules keep a .git file containing a "gitdir:" pointer instead of a
// directory; both layouts are handled.
func (r *Repo) GitDir() (string, error) {
	dotGit := filepath.Join(r.root, ".git")
	fi, err := os.Stat(dotGit)
	if err != nil {
		return "", fmt.Errorf("locating git dir: %w", err)
	}
	if fi.IsDir() {
		return dotGit, nil
	}

	content, err := os.ReadFile(dotGit)
	if err != nil {
		return "", fmt.Errorf("reading .git file: %w", err)
	}
	line := strings.TrimSpace(string(content))
	const prefix = "gitdir:"
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("%w: unexpected .git file in %s", ErrNotRepository, r.root)
	}
	dir := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.root, dir)
	}
	return dir, nil
}

// HooksDir returns the directory git will look in for hooks, honoring a
// core.hooksPath override (absolute, ~-prefixed, or relative to the
// worktree root) before falling back to <gitdir>/hooks.
func (r *Repo) HooksDir() (string, error) {
	if cfg, err := r.repo.Config(); err == nil {
		if hp := cfg.Raw.Section("core").Option("hooksPath"); hp != "" {
			if strings.HasPrefix(hp, "~/") {
				if home, err := os.UserHomeDir(); err == nil {
					hp = filepath.Join(home, hp[2:])
				}
			}
			if !filepath.IsAbs(hp) {
				hp = filepath.Join(r.root, hp)
			}
			return hp, nil
		}
	}

	gitDir, err := r.GitDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks"), nil
}
