// Package symbols resolves kernel module names to on-disk symbol files.
//
// Resolution consults a static name-to-path table first and falls back to a
// filesystem search under a version-scoped directory, where the version
// string comes from running the debugged kernel binary with --version. Every
// failure path degrades to "not found": an unresolved module means the
// session skips symbol reloading for it, never that the session aborts.
package symbols

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSearchRoot is where versioned module trees live.
const DefaultSearchRoot = "/lib/modules"

// versionTimeout bounds the --version query so a wedged target binary cannot
// stall the module-load sequence.
const versionTimeout = 5 * time.Second

var errNoVersion = errors.New("target reported an empty version")

// Resolver maps a kernel module name to its symbol file.
type Resolver struct {
	table      map[string]string
	searchRoot string
	version    func(context.Context) (string, error)
	cached     string
	haveCached bool
	logger     *slog.Logger
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithSearchRoot overrides the default /lib/modules search root.
func WithSearchRoot(root string) Option {
	return func(r *Resolver) {
		if root != "" {
			r.searchRoot = root
		}
	}
}

// WithVersionFunc replaces the target --version query, mainly for tests.
func WithVersionFunc(fn func(context.Context) (string, error)) Option {
	return func(r *Resolver) {
		r.version = fn
	}
}

// WithLogger configures a logger for resolution decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver builds a resolver for the given target binary. The table is
// copied, so later mutation by the caller cannot leak into the session.
func NewResolver(target string, table map[string]string, opts ...Option) *Resolver {
	r := &Resolver{
		table:      make(map[string]string, len(table)),
		searchRoot: DefaultSearchRoot,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for name, path := range table {
		r.table[name] = path
	}
	r.version = func(ctx context.Context) (string, error) {
		return queryVersion(ctx, target)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the symbol file path for the named module, or ok=false when
// no path is known. The static table wins; the filesystem search under
// <searchRoot>/<version> is only reached on a table miss.
func (r *Resolver) Resolve(ctx context.Context, module string) (string, bool) {
	if path, ok := r.table[module]; ok {
		r.logger.Debug("module path from table", "module", module, "path", path)
		return path, true
	}

	version, err := r.versionString(ctx)
	if err != nil {
		r.logger.Debug("module path search unavailable", "module", module, "err", err)
		return "", false
	}

	dir := filepath.Join(r.searchRoot, version)
	path, err := findObject(dir, module+".o")
	if err != nil {
		r.logger.Debug("module path search failed", "module", module, "dir", dir, "err", err)
		return "", false
	}

	r.logger.Debug("module path from search", "module", module, "path", path)
	return path, true
}

// versionString queries and caches the target's version. The target binary
// does not change mid-session, so one successful answer is enough.
func (r *Resolver) versionString(ctx context.Context) (string, error) {
	if r.haveCached {
		return r.cached, nil
	}
	version, err := r.version(ctx)
	if err != nil {
		return "", err
	}
	if version == "" {
		return "", errNoVersion
	}
	r.cached = version
	r.haveCached = true
	return version, nil
}

// queryVersion runs `<target> --version` and returns the first output line.
func queryVersion(ctx context.Context, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, target, "--version").Output()
	if err != nil {
		return "", err
	}
	version, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(version), nil
}

// findObject walks dir for the first file with the given base name. WalkDir
// visits entries in lexical order, so the answer is deterministic.
func findObject(dir, base string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == base {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fs.ErrNotExist
	}
	return found, nil
}
