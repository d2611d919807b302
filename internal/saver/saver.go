// Package saver implements the validate-sanitize-write core behind the
// save_text tool: filename sanitization, path containment, size limits
// and atomic writes into a single configured base directory.
package saver

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"textsaver/internal/utils"
)

// DefaultMaxTextSize is the default payload limit in bytes (10 MiB).
const DefaultMaxTextSize = 10 * 1024 * 1024

// Config holds the explicit configuration for a Saver. Nothing is read
// from ambient globals; the operation is a function of (config, request).
type Config struct {
	// BaseDir is the only directory files are written into. It must
	// exist and be writable; the saver never creates it.
	BaseDir string

	// MaxTextSize is the payload limit in bytes. Zero or negative
	// selects DefaultMaxTextSize.
	MaxTextSize int64
}

// Result is the structured outcome of one save call.
type Result struct {
	Success  bool   `json:"success"`
	Path     string `json:"path,omitempty"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// Saver performs validated text writes into a fixed base directory.
type Saver struct {
	baseDir     string // canonical absolute path
	maxTextSize int64
	logger      *utils.Logger
	now         func() time.Time
}

// New creates a Saver from explicit configuration. The base directory
// is canonicalized once here (absolute, symlinks resolved) so every
// containment check later compares against the real directory.
func New(cfg Config) (*Saver, error) {
	if strings.TrimSpace(cfg.BaseDir) == "" {
		return nil, NewError(KindInvalidInput, "base directory is required")
	}

	abs, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, wrapError(KindInvalidInput, err, "cannot resolve base directory %q", cfg.BaseDir)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, wrapError(KindInvalidInput, err, "base directory %q does not exist", cfg.BaseDir)
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return nil, wrapError(KindInvalidInput, err, "cannot stat base directory %q", canonical)
	}
	if !info.IsDir() {
		return nil, NewError(KindInvalidInput, "base path %q is not a directory", canonical)
	}

	max := cfg.MaxTextSize
	if max <= 0 {
		max = DefaultMaxTextSize
	}

	return &Saver{
		baseDir:     canonical,
		maxTextSize: max,
		logger:      utils.NewComponentLogger("Saver"),
		now:         time.Now,
	}, nil
}

// BaseDir returns the canonical base directory files are written into.
func (s *Saver) BaseDir() string {
	return s.baseDir
}

// MaxTextSize returns the configured payload limit in bytes.
func (s *Saver) MaxTextSize() int64 {
	return s.maxTextSize
}

// Save validates text and filename, resolves a safe target path inside
// the base directory and writes the text atomically. Every failure is
// returned as a structured Result; nothing panics or propagates.
func (s *Saver) Save(text string, filename string) Result {
	if size := int64(len(text)); size > s.maxTextSize {
		return s.failure(NewError(KindSizeLimitExceeded,
			"text size %d bytes exceeds the maximum allowed size of %d bytes", size, s.maxTextSize))
	}

	name := s.resolveFilename(filename)
	target := filepath.Join(s.baseDir, name)

	// The sanitized name is a single path component, so the join cannot
	// escape; re-verify anyway so an encoding trick that slips a
	// separator through sanitization still cannot reach outside.
	if strings.ContainsRune(name, os.PathSeparator) || filepath.Dir(target) != s.baseDir {
		return s.failure(NewError(KindPathTraversalRejected,
			"filename %q resolves outside the allowed directory", filename))
	}

	if err := s.write(target, text); err != nil {
		return s.failure(err)
	}

	s.logger.Info("saved %d bytes to %s", len(text), target)
	return Result{
		Success:  true,
		Path:     target,
		Filename: name,
		Size:     int64(len(text)),
	}
}

// resolveFilename turns the optional caller-supplied filename into a
// safe single-component name. Empty input, or input that sanitizes down
// to nothing, falls back to a generated timestamp name.
func (s *Saver) resolveFilename(filename string) string {
	trimmed := strings.TrimSpace(filename)
	if trimmed == "" {
		return s.generateName()
	}

	safe := sanitizeFilename(trimmed)
	if safe == "" {
		s.logger.Warn("filename %q sanitized to nothing, using generated name", filename)
		return s.generateName()
	}
	if safe != trimmed {
		s.logger.Warn("unsafe filename %q sanitized to %q", filename, safe)
	}
	return ensureExtension(safe)
}

// generateName produces saved_text_<timestamp>.txt, appending _1, _2, …
// before the extension when the name is already taken. Auto-generated
// names never silently overwrite an existing file; explicitly supplied
// names keep overwrite semantics.
func (s *Saver) generateName() string {
	now := s.now()
	for seq := 0; ; seq++ {
		name := generatedName(now, seq)
		if _, err := os.Stat(filepath.Join(s.baseDir, name)); os.IsNotExist(err) {
			return name
		}
	}
}

// write stores text at target via a temp file in the same directory and
// an atomic rename, so a crash or timeout mid-write never leaves a
// partial file, and a symlink planted at the target name is replaced
// rather than followed.
func (s *Saver) write(target, text string) *SaveError {
	tmp, err := os.CreateTemp(s.baseDir, ".textsaver-*.tmp")
	if err != nil {
		return wrapError(KindWriteFailed, err, "cannot create file in %s", s.baseDir)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return wrapError(KindWriteFailed, err, "cannot write file %s", target)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return wrapError(KindWriteFailed, err, "cannot flush file %s", target)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return wrapError(KindWriteFailed, err, "cannot close file %s", target)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return wrapError(KindWriteFailed, err, "cannot set permissions on %s", target)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return wrapError(KindWriteFailed, err, "cannot move file into place at %s", target)
	}
	return nil
}

// failure logs and converts a SaveError into a Result.
func (s *Saver) failure(err *SaveError) Result {
	s.logger.Error("save failed (%s): %s", err.Kind, err.Error())
	return Result{
		Success: false,
		Error:   err.Error(),
		Kind:    string(err.Kind),
	}
}

// FailureResult converts an error into a failed Result. Used by the
// tool layer for validation errors raised before a Saver method runs.
func FailureResult(err *SaveError) Result {
	return Result{
		Success: false,
		Error:   err.Error(),
		Kind:    string(err.Kind),
	}
}
