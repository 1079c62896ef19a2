package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mayowa/hookbind"
)

// fileResult is the outcome of one file
type fileResult struct {
	path     string
	code     string
	changed  bool
	bindings []hookbind.Binding
	err      error
}

// Run processes every component found under opts.Paths. Per-file failures
// are logged and reported as a single ExitError once all files are done.
func Run(ctx context.Context, opts *Options, cfg hookbind.Config, stdout io.Writer, logger *zap.Logger) error {
	hb, err := hookbind.New(hookbind.WithConfig(cfg), hookbind.WithLogger(logger))
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	files, err := collectFiles(opts.Paths)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	logger.Debug("components found", zap.Int("count", len(files)))

	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = processFile(hb, opts, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			logger.Error("component failed",
				zap.String("file", r.path),
				zap.String("class", string(hookbind.Classify(r.err))),
				zap.Error(r.err),
			)
		}
	}

	if opts.List {
		fmt.Fprint(stdout, renderBindings(results))
	} else if !opts.Write {
		printChanged(stdout, results)
	}

	if failed > 0 {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d components failed", failed, len(files))}
	}

	return nil
}

func processFile(hb *hookbind.HookBind, opts *Options, path string) fileResult {
	r := fileResult{path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		r.err = err
		return r
	}
	code := string(content)

	if opts.List {
		if !strings.Contains(code, hb.Config().Prefix) {
			return r
		}
		r.bindings, r.err = hb.Bindings(code)
		return r
	}

	r.code, r.err = hb.Transform(code, path)
	if r.err != nil {
		return r
	}
	r.changed = r.code != code

	if r.changed && opts.Write {
		info, err := os.Stat(path)
		if err != nil {
			r.err = err
			return r
		}
		r.err = os.WriteFile(path, []byte(r.code), info.Mode().Perm())
	}

	return r
}

// collectFiles expands directories into the .vue files below them.
// Files named explicitly are kept whatever their extension.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == hookbind.FileExt {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return nil, errors.New("no components found")
	}

	return files, nil
}

func skipDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}

// printChanged writes the rewritten components. Headers are only added
// when more than one file changed.
func printChanged(w io.Writer, results []fileResult) {
	changed := 0
	for _, r := range results {
		if r.changed {
			changed++
		}
	}

	for _, r := range results {
		if !r.changed {
			continue
		}
		if changed > 1 {
			fmt.Fprintf(w, "==> %s <==\n", r.path)
		}
		fmt.Fprint(w, r.code)
	}
}
