// Package history records every flushed catalog document as a git commit so
// earlier versions can be listed, shown and diffed.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

const (
	authorName  = "exelaunch"
	authorEmail = "exelaunch@localhost"
)

// CommitInfo describes one recorded version.
type CommitInfo struct {
	Hash    string
	Message string
	Author  string
	When    time.Time
}

// ShortHash returns the abbreviated commit hash.
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// History is a git repository tracking a single document.
type History struct {
	dir  string
	file string
	repo *git.Repository
	now  func() time.Time
}

// Open opens the repository at dir, initialising it on first use. file is
// the tracked document's name relative to dir.
func Open(dir, file string) (*History, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("open history %s: %w", dir, err)
	}
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(dir, false)
	}
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", dir, err)
	}
	return &History{dir: dir, file: filepath.ToSlash(file), repo: repo, now: time.Now}, nil
}

// Dir returns the repository directory.
func (h *History) Dir() string {
	return h.dir
}

// Commit stages the document and records it with msg. It returns the new
// commit hash, or an empty string when the document is unchanged.
func (h *History) Commit(msg string) (string, error) {
	wt, err := h.repo.Worktree()
	if err != nil {
		return "", err
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("status: %w", err)
	}
	// Status omits files with no changes.
	fs, ok := status[h.file]
	if !ok || (fs.Worktree == git.Unmodified && fs.Staging == git.Unmodified) {
		return "", nil
	}

	if _, err := wt.Add(h.file); err != nil {
		return "", fmt.Errorf("stage %s: %w", h.file, err)
	}

	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: authorName, Email: authorEmail, When: h.now()},
	})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}

// Log returns up to count recent commits, newest first. An empty repository
// has no commits.
func (h *History) Log(count int) ([]CommitInfo, error) {
	head, err := h.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return []CommitInfo{}, nil
		}
		return nil, err
	}

	iter, err := h.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	commits := []CommitInfo{}
	err = iter.ForEach(func(c *object.Commit) error {
		if count > 0 && len(commits) >= count {
			return storer.ErrStop
		}
		commits = append(commits, CommitInfo{
			Hash:    c.Hash.String(),
			Message: strings.Split(c.Message, "\n")[0],
			Author:  c.Author.Name,
			When:    c.Author.When,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// Show returns the document as recorded at rev (a hash, abbreviated hash or
// revision such as HEAD~1).
func (h *History) Show(rev string) ([]byte, error) {
	hash, err := h.resolve(rev)
	if err != nil {
		return nil, err
	}
	commit, err := h.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", rev, err)
	}
	f, err := commit.File(h.file)
	if err != nil {
		return nil, fmt.Errorf("read %s at %s: %w", h.file, rev, err)
	}
	contents, err := f.Contents()
	if err != nil {
		return nil, err
	}
	return []byte(contents), nil
}

func (h *History) resolve(rev string) (plumbing.Hash, error) {
	hash, err := h.repo.ResolveRevision(plumbing.Revision(rev))
	if err == nil {
		return *hash, nil
	}

	// ResolveRevision does not expand abbreviated hashes.
	if isHex(rev) {
		commits, lerr := h.Log(0)
		if lerr == nil {
			for _, c := range commits {
				if strings.HasPrefix(c.Hash, rev) {
					return plumbing.NewHash(c.Hash), nil
				}
			}
		}
	}
	return plumbing.ZeroHash, fmt.Errorf("unknown revision %q: %w", rev, err)
}

func isHex(s string) bool {
	if len(s) < 4 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
