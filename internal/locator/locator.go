// Package locator resolves which on-disk session log belongs to an execution
// context. Resolution retries with backoff because logs appear asynchronously
// with the session that writes them; results are cached with a TTL.
package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kvit-s/tracediff/internal/diff"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 50 * time.Millisecond
)

// Locator finds session logs under a root directory laid out as
// <root>/<project-slug>/<session-id>.jsonl.
type Locator struct {
	root     string
	cache    *Cache
	attempts int
	backoff  time.Duration
	sleep    func(time.Duration)
}

// Option configures a Locator.
type Option func(*Locator)

// WithRetry overrides the attempt count and linear backoff step.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(l *Locator) {
		if attempts > 0 {
			l.attempts = attempts
		}
		l.backoff = backoff
	}
}

// WithSleep replaces the retry sleep, letting tests run without waiting.
func WithSleep(sleep func(time.Duration)) Option {
	return func(l *Locator) { l.sleep = sleep }
}

// New creates a Locator over root with the given cache.
func New(root string, cache *Cache, opts ...Option) *Locator {
	l := &Locator{
		root:     root,
		cache:    cache,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ProjectSlug flattens a working directory into the directory name session
// logs are grouped under: path separators and dots become dashes.
func ProjectSlug(workDir string) string {
	slug := strings.ReplaceAll(workDir, string(filepath.Separator), "-")
	slug = strings.ReplaceAll(slug, ".", "-")
	return slug
}

// Resolve returns the log path for a session of the project rooted at
// workDir. Missing logs are retried with linear backoff before giving up;
// hits are cached under workDir+sessionID for the cache's TTL.
func (l *Locator) Resolve(workDir, sessionID string) (string, error) {
	if sessionID == "" {
		return "", &diff.ValidationError{Field: "session_id", Message: "session id must not be empty"}
	}

	key := workDir + "\x00" + sessionID
	if path, ok := l.cache.Get(key); ok {
		return path, nil
	}

	path := filepath.Join(l.root, ProjectSlug(workDir), sessionID+".jsonl")

	var lastErr error
	for attempt := 1; attempt <= l.attempts; attempt++ {
		if _, err := os.Stat(path); err == nil {
			l.cache.Put(key, path)
			return path, nil
		} else {
			lastErr = err
		}
		if attempt < l.attempts {
			l.sleep(time.Duration(attempt) * l.backoff)
		}
	}

	return "", diff.FileSystemErrorf(path, lastErr, "session log not found after %d attempts", l.attempts)
}

// Sessions lists the session ids that have logs for the project rooted at
// workDir, newest first.
func (l *Locator) Sessions(workDir string) ([]string, error) {
	dir := filepath.Join(l.root, ProjectSlug(workDir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, diff.FileSystemErrorf(dir, err, "list session logs: %v", err)
	}

	type stamped struct {
		id  string
		mod time.Time
	}
	var found []stamped
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, stamped{
			id:  strings.TrimSuffix(entry.Name(), ".jsonl"),
			mod: info.ModTime(),
		})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].mod.After(found[j].mod) })

	ids := make([]string, len(found))
	for i, s := range found {
		ids[i] = s.id
	}
	return ids, nil
}

// String describes the locator's root for log lines.
func (l *Locator) String() string {
	return fmt.Sprintf("locator(root=%s)", l.root)
}
