// Package syncer runs the periodic token sync loop: check whether a sync is
// due, extract a fresh token set, compare it against the previous artifacts,
// write when something changed, and optionally commit and rebuild. Each cycle
// walks a fixed state machine and a failure in any step logs, records the
// failure, and returns the syncer to idle instead of killing the process.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hellenic-development/figma-tokens/pkg/tokens"
)

// Logger is the subset of logging the syncer needs. A nil Logger silences it.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// State names one step of the sync cycle.
type State string

const (
	StateIdle       State = "idle"
	StateChecking   State = "checking"
	StateExtracting State = "extracting"
	StateWriting    State = "writing"
	StateCommitting State = "committing"
	StateBuilding   State = "building"
	StateFailed     State = "failed"
)

// Default cadence of the sync loop.
const (
	DefaultMinSyncInterval = 60 * time.Second
	DefaultWatchInterval   = 30 * time.Second
)

// ExtractFunc produces a fresh token set and its categorized palette.
type ExtractFunc func(ctx context.Context) (*tokens.Set, *tokens.Palette, error)

// WriteFunc persists the artifacts of a set and returns the written paths.
type WriteFunc func(set *tokens.Set, palette *tokens.Palette) ([]string, error)

// Options configures a Syncer.
type Options struct {
	// MetadataPath is where sync state persists. Defaults to
	// DefaultMetadataFile in the working directory.
	MetadataPath string

	// JSONPath is the previous JSON artifact, used to decide whether the
	// freshly extracted set actually changed.
	JSONPath string

	// Source labels history entries, e.g. "figma-api:ABC123".
	Source string

	// MinSyncInterval gates how soon after a completed sync the next one may
	// start. Zero means DefaultMinSyncInterval.
	MinSyncInterval time.Duration

	// WatchInterval is the polling cadence of Watch. Zero means
	// DefaultWatchInterval.
	WatchInterval time.Duration

	// AutoCommit stages and commits the written artifacts after each
	// changed sync. RepoDir is the repository to commit in; empty means the
	// working directory.
	AutoCommit bool
	RepoDir    string

	// BuildCommand, when set, runs after a changed sync (argv form).
	BuildCommand []string

	Logger Logger

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

// Report summarizes one sync cycle.
type Report struct {
	Skipped bool
	Changed bool
	Version int
	Files   []string
}

type commandRunner func(ctx context.Context, dir, name string, args ...string) (string, error)

// Syncer drives repeated sync cycles over an extract/write pair.
type Syncer struct {
	opts    Options
	extract ExtractFunc
	write   WriteFunc
	runCmd  commandRunner

	mu    sync.Mutex
	state State
}

// New returns a Syncer with defaults applied.
func New(opts Options, extract ExtractFunc, write WriteFunc) *Syncer {
	if opts.MetadataPath == "" {
		opts.MetadataPath = DefaultMetadataFile
	}
	if opts.MinSyncInterval <= 0 {
		opts.MinSyncInterval = DefaultMinSyncInterval
	}
	if opts.WatchInterval <= 0 {
		opts.WatchInterval = DefaultWatchInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Syncer{
		opts:    opts,
		extract: extract,
		write:   write,
		runCmd:  execRunner,
		state:   StateIdle,
	}
}

// State reports the current step of the cycle.
func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Syncer) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// RunOnce executes a single sync cycle. A cycle that is gated by the minimum
// sync interval returns a skipped report. A cycle that fails leaves the
// syncer idle again and returns the error; the caller decides whether that
// ends the process.
func (s *Syncer) RunOnce(ctx context.Context) (*Report, error) {
	s.setState(StateChecking)

	meta, err := LoadMetadata(s.opts.MetadataPath)
	if err != nil {
		s.warnf("sync metadata unreadable, starting fresh: %v", err)
		meta = &Metadata{}
	}

	now := s.opts.Now()
	if !meta.LastSync.IsZero() {
		if since := now.Sub(meta.LastSync); since < s.opts.MinSyncInterval {
			s.infof("last sync %s ago, below the %s minimum, skipping",
				since.Round(time.Second), s.opts.MinSyncInterval)
			s.setState(StateIdle)
			return &Report{Skipped: true, Version: meta.Version}, nil
		}
	}

	s.setState(StateExtracting)
	set, palette, err := s.extract(ctx)
	if err != nil {
		return nil, s.fail(fmt.Errorf("extract tokens: %w", err))
	}

	changed := s.changedSince(set)
	entry := HistoryEntry{
		ID:         uuid.NewString(),
		Timestamp:  now,
		Source:     s.opts.Source,
		Colors:     len(set.Colors),
		Typography: len(set.Typography),
		Spacing:    len(set.Spacing),
		Changed:    changed,
	}

	if !changed {
		s.infof("no token changes detected")
		meta.LastSync = now
		entry.Version = meta.Version
		meta.Record(entry)
		if err := SaveMetadata(s.opts.MetadataPath, meta); err != nil {
			return nil, s.fail(err)
		}
		s.setState(StateIdle)
		return &Report{Version: meta.Version}, nil
	}

	meta.Version++
	set.Metadata.Version = meta.Version
	entry.Version = meta.Version

	s.setState(StateWriting)
	files, err := s.write(set, palette)
	if err != nil {
		return nil, s.fail(fmt.Errorf("write artifacts: %w", err))
	}
	s.infof("wrote %d artifacts at version %d", len(files), meta.Version)

	if s.opts.AutoCommit {
		s.setState(StateCommitting)
		if err := s.commit(ctx, files, meta.Version); err != nil {
			return nil, s.fail(err)
		}
	}

	if len(s.opts.BuildCommand) > 0 {
		s.setState(StateBuilding)
		if err := s.build(ctx); err != nil {
			return nil, s.fail(err)
		}
	}

	meta.LastSync = now
	meta.Record(entry)
	if err := SaveMetadata(s.opts.MetadataPath, meta); err != nil {
		return nil, s.fail(err)
	}

	s.setState(StateIdle)
	return &Report{Changed: true, Version: meta.Version, Files: files}, nil
}

// Watch loops RunOnce on a ticker until the context is cancelled. An extra
// trigger channel (may be nil) forces an immediate cycle, which the minimum
// sync interval still gates. Per-cycle failures are logged and the loop goes
// on; only cancellation ends it.
func (s *Syncer) Watch(ctx context.Context, trigger <-chan struct{}) error {
	ticker := time.NewTicker(s.opts.WatchInterval)
	defer ticker.Stop()

	s.infof("watching, polling every %s", s.opts.WatchInterval)
	if _, err := s.RunOnce(ctx); err != nil {
		s.errorf("sync cycle failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.infof("watch stopped")
			return nil
		case <-ticker.C:
		case <-trigger:
			s.infof("change notification received")
		}

		if ctx.Err() != nil {
			s.infof("watch stopped")
			return nil
		}
		if _, err := s.RunOnce(ctx); err != nil {
			s.errorf("sync cycle failed: %v", err)
		}
	}
}

// changedSince compares the fresh set against the previous JSON artifact,
// ignoring metadata so that timestamps and version counters alone never count
// as a change. A missing or unreadable previous artifact counts as changed.
func (s *Syncer) changedSince(set *tokens.Set) bool {
	if s.opts.JSONPath == "" {
		return true
	}
	data, err := os.ReadFile(s.opts.JSONPath)
	if err != nil {
		return true
	}

	var prev tokens.Set
	if err := json.Unmarshal(data, &prev); err != nil {
		s.warnf("previous artifact %s unreadable: %v", s.opts.JSONPath, err)
		return true
	}

	return !bytes.Equal(canonical(&prev), canonical(set))
}

func canonical(set *tokens.Set) []byte {
	clone := *set
	clone.Metadata = tokens.Metadata{}
	data, _ := json.Marshal(&clone)
	return data
}

func (s *Syncer) commit(ctx context.Context, files []string, version int) error {
	addArgs := append([]string{"add", "--"}, files...)
	if out, err := s.runCmd(ctx, s.opts.RepoDir, "git", addArgs...); err != nil {
		return fmt.Errorf("git add: %w: %s", err, strings.TrimSpace(out))
	}

	msg := fmt.Sprintf("chore: sync design tokens (v%d)", version)
	out, err := s.runCmd(ctx, s.opts.RepoDir, "git", "commit", "-m", msg)
	if err != nil {
		if strings.Contains(out, "nothing to commit") {
			s.infof("artifacts already committed")
			return nil
		}
		return fmt.Errorf("git commit: %w: %s", err, strings.TrimSpace(out))
	}
	s.infof("committed artifacts: %s", msg)
	return nil
}

func (s *Syncer) build(ctx context.Context) error {
	cmd := s.opts.BuildCommand
	s.infof("running build command: %s", strings.Join(cmd, " "))
	if out, err := s.runCmd(ctx, s.opts.RepoDir, cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf("build command %q: %w: %s", strings.Join(cmd, " "), err, strings.TrimSpace(out))
	}
	return nil
}

// fail logs the error and returns the syncer to idle. The failed state is
// observable only during the transition; the machine never sticks there.
func (s *Syncer) fail(err error) error {
	s.setState(StateFailed)
	s.errorf("%v", err)
	s.setState(StateIdle)
	return err
}

func execRunner(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (s *Syncer) infof(format string, args ...interface{}) {
	if s.opts.Logger != nil {
		s.opts.Logger.Infof(format, args...)
	}
}

func (s *Syncer) warnf(format string, args ...interface{}) {
	if s.opts.Logger != nil {
		s.opts.Logger.Warnf(format, args...)
	}
}

func (s *Syncer) errorf(format string, args ...interface{}) {
	if s.opts.Logger != nil {
		s.opts.Logger.Errorf(format, args...)
	}
}
