package git

import (
	stderrors "errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
)

// Head describes the checked-out commit of a repository.
type Head struct {
	Commit string
	// Branch is the short branch name, empty for a detached HEAD.
	Branch string
}

// ShortCommit returns the first 12 characters of the commit hash.
func (h Head) ShortCommit() string {
	if len(h.Commit) > 12 {
		return h.Commit[:12]
	}
	return h.Commit
}

// ReadHead returns HEAD of the repository containing dir, searching parent directories
// for .git. It reports false when dir is not inside a repository or the repository has
// no commits yet.
func ReadHead(dir string) (Head, bool, error) {
	_, ref, err := openHead(dir)
	if err != nil || ref == nil {
		return Head{}, false, err
	}
	head := Head{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		head.Branch = ref.Name().Short()
	}
	return head, true, nil
}

// LastChange returns the most recent commit reachable from HEAD that changed a file
// under dir, ignoring the paths in exclude, so committing generated files does not move
// it. Branch is left empty. It reports false when dir is not inside a repository, the
// repository has no commits, or no commit touched dir.
func LastChange(dir string, exclude ...string) (Head, bool, error) {
	repo, ref, err := openHead(dir)
	if err != nil || ref == nil {
		return Head{}, false, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return Head{}, false, errors.WrapError(err, errors.CategoryRuntime, "failed to open worktree").
			WithContext("path", dir).
			Build()
	}
	root := wt.Filesystem.Root()
	prefix, ok := repoRelative(root, dir)
	if !ok {
		return Head{}, false, nil
	}
	skip := make(map[string]bool, len(exclude))
	for _, p := range exclude {
		if rel, ok := repoRelative(root, p); ok {
			skip[rel] = true
		}
	}

	iter, err := repo.Log(&git.LogOptions{
		From: ref.Hash(),
		PathFilter: func(p string) bool {
			if skip[p] {
				return false
			}
			return prefix == "" || p == prefix || strings.HasPrefix(p, prefix+"/")
		},
	})
	if err != nil {
		return Head{}, false, errors.WrapError(err, errors.CategoryRuntime, "failed to read history").
			WithContext("path", dir).
			Build()
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return Head{}, false, nil
		}
		return Head{}, false, errors.WrapError(err, errors.CategoryRuntime, "failed to read history").
			WithContext("path", dir).
			Build()
	}
	return Head{Commit: commit.Hash.String()}, true, nil
}

// openHead opens the repository containing dir and resolves HEAD. A nil reference with a
// nil error means there is no repository or no commit.
func openHead(dir string) (*git.Repository, *plumbing.Reference, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil, nil
		}
		return nil, nil, errors.WrapError(err, errors.CategoryRuntime, "failed to open repository").
			WithContext("path", dir).
			Build()
	}

	ref, err := repo.Head()
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil, nil
		}
		return nil, nil, errors.WrapError(err, errors.CategoryRuntime, "failed to resolve HEAD").
			WithContext("path", dir).
			Build()
	}
	return repo, ref, nil
}

// repoRelative returns p relative to the worktree root in slash form, or false when p
// lies outside it.
func repoRelative(root, p string) (string, bool) {
	root, err := canonical(root)
	if err != nil {
		return "", false
	}
	p, err = canonical(p)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	return filepath.ToSlash(rel), true
}

// canonical resolves p to an absolute path with symlinks evaluated. A missing final
// element is kept as is so paths of files not yet written still resolve.
func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs, nil
	}
	return filepath.Join(parent, filepath.Base(abs)), nil
}
