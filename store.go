package tsmedit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pmezard/go-difflib/difflib"
)

// Store binds the engine to one on-disk document. Both paths are explicit
// so tests can point it at temporary files; nothing here falls back to a
// baked-in default location.
type Store struct {
	// Path is the SavedVariables file to edit.
	Path string

	// BackupDir receives a timestamped full copy of the file before every
	// mutating write. Defaults to a "backups" directory next to Path.
	BackupDir string

	now func() time.Time
}

func NewStore(path string) *Store {
	return &Store{
		Path:      path,
		BackupDir: filepath.Join(filepath.Dir(path), "backups"),
		now:       time.Now,
	}
}

// Options apply to every mutating operation.
type Options struct {
	// DryRun performs the full computation and fills in the result,
	// including a unified diff of the would-be change, without backing up
	// or writing anything.
	DryRun bool
}

// OpResult is the part every operation result shares. Partial success is
// explicit: counts, errors and warnings coexist in one result.
type OpResult struct {
	Errors   []string
	Warnings []string

	// Diff holds a unified diff of the proposed change in dry-run mode.
	Diff string
}

func (r *OpResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (s *Store) load() (*Document, error) {
	return LoadDocument(s.Path)
}

// backup copies the current file into BackupDir with a timestamp suffix.
// The write must not proceed when this fails.
func (s *Store) backup() (string, error) {
	src, err := os.Open(s.Path)
	if err != nil {
		return "", fmt.Errorf("tsmedit: open for backup: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.BackupDir, 0o755); err != nil {
		return "", fmt.Errorf("tsmedit: create backup dir: %w", err)
	}

	now := s.now
	if now == nil {
		now = time.Now
	}
	stamp := now().Format("20060102_150405")
	base := filepath.Base(s.Path)
	name := base[:len(base)-len(filepath.Ext(base))] + "_" + stamp + filepath.Ext(base)
	dstPath := filepath.Join(s.BackupDir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("tsmedit: create backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("tsmedit: write backup: %w", err)
	}
	return dstPath, nil
}

// persist finishes a mutating operation: in dry-run mode it renders the
// diff into res; otherwise it backs the file up and replaces it with the
// whole new buffer. The on-disk file is never left half-written.
func (s *Store) persist(res *OpResult, oldText, newText string, opts Options) error {
	if newText == oldText {
		return nil
	}
	if opts.DryRun {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(oldText),
			B:        difflib.SplitLines(newText),
			FromFile: s.Path,
			ToFile:   s.Path + " (proposed)",
			Context:  2,
		})
		if err == nil {
			res.Diff = diff
		}
		return nil
	}

	if _, err := s.backup(); err != nil {
		res.addError("backup failed: %v", err)
		return err
	}
	if err := os.WriteFile(s.Path, []byte(newText), 0o644); err != nil {
		res.addError("write failed: %v", err)
		return fmt.Errorf("tsmedit: write document: %w", err)
	}
	return nil
}
