package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hellenic-development/figma-tokens/pkg/figma"
)

// localExport is the on-disk document format of the file source: a design
// document exported once from the API (or authored by hand in tests) plus the
// secondary maps already resolved.
type localExport struct {
	Name      string                 `json:"name"`
	Document  figma.Node             `json:"document"`
	Styles    map[string]figma.Paint `json:"styles,omitempty"`
	Variables map[string]string      `json:"variables,omitempty"`
}

// File reads design data from a local export JSON. It serves offline runs and
// tests, and can notify on file changes for watch mode.
type File struct {
	path string

	mu     sync.Mutex
	cached *localExport
}

// NewFile creates a file source for the given export path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Describe() string {
	return "file:" + filepath.Base(f.path)
}

func (f *File) load() (*localExport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached != nil {
		return f.cached, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", f.path, err)
	}

	var export localExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse export %s: %w", f.path, err)
	}

	f.cached = &export
	return f.cached, nil
}

// Invalidate drops the cached export so the next read hits the disk again.
func (f *File) Invalidate() {
	f.mu.Lock()
	f.cached = nil
	f.mu.Unlock()
}

func (f *File) Document(ctx context.Context) (*figma.Node, error) {
	export, err := f.load()
	if err != nil {
		return nil, err
	}
	if err := figma.ValidateDocument(&export.Document); err != nil {
		return nil, err
	}
	return &export.Document, nil
}

func (f *File) PublishedColors(ctx context.Context) (map[string]figma.Paint, error) {
	export, err := f.load()
	if err != nil {
		return nil, err
	}
	if export.Styles == nil {
		return map[string]figma.Paint{}, nil
	}
	return export.Styles, nil
}

func (f *File) Variables(ctx context.Context) (map[string]string, error) {
	export, err := f.load()
	if err != nil {
		return nil, err
	}
	if export.Variables == nil {
		return map[string]string{}, nil
	}
	return export.Variables, nil
}

// Watch invalidates the cache and invokes onChange (debounced) whenever the
// export file is written. It blocks until the context is cancelled.
func (f *File) Watch(ctx context.Context, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}

	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(f.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			f.Invalidate()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, onChange)

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
