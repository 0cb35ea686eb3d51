// Package walker implements adaptive file discovery for the check engine.
//
// Traversal is sequential or parallel depending on the shape of the tree:
// the number of direct entries under the root is a cheap proxy for tree
// size, and explicit overrides bypass the heuristic for deterministic runs.
// Both modes produce the identical file set.
package walker

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/quenchcheck/quench/internal/core/domain"
	"github.com/quenchcheck/quench/internal/core/ports"
)

// defaultParallelThreshold is the heuristic base when the config leaves it
// unset; parallel mode engages above threshold/10 direct root entries.
const defaultParallelThreshold = 1000

// Stats aggregates what happened during one walk. Degraded conditions are
// counted here rather than raised as errors.
type Stats struct {
	FilesFound       int
	Errors           int
	SymlinkLoops     int
	FilesSkippedSize int
}

// Walker enumerates project files honoring ignore rules and depth limits.
type Walker struct {
	cfg domain.WalkerConfig
	fs  afero.Fs
	log ports.Logger

	gitIgnore *ignore.GitIgnore
}

// New creates a Walker over the given filesystem.
func New(cfg domain.WalkerConfig, fs afero.Fs, log ports.Logger) *Walker {
	return &Walker{cfg: cfg, fs: fs, log: log}
}

// Walk discovers all regular files under root. The returned slice is sorted
// by path so downstream output is deterministic regardless of traversal
// mode. Only an unusable root is a hard error; everything else degrades
// into Stats counters.
func (w *Walker) Walk(root string) ([]domain.WalkedFile, Stats, error) {
	info, err := w.fs.Stat(root)
	if err != nil {
		return nil, Stats{}, zerr.With(zerr.Wrap(domain.ErrRootNotFound, "cannot stat scan root"), "root", root)
	}
	if !info.IsDir() {
		return nil, Stats{}, zerr.With(zerr.New("scan root is not a directory"), "root", root)
	}

	w.gitIgnore = w.loadGitIgnore(root)

	st := &walkState{}
	parallel := w.ShouldUseParallel(root)
	w.log.Debug("traversal mode selected", "parallel", parallel, "root", root)

	if parallel {
		w.walkParallel(st, root)
	} else {
		w.walkDir(st, root, "", 0)
	}

	sort.Slice(st.files, func(i, j int) bool { return st.files[i].Path < st.files[j].Path })

	stats := Stats{
		FilesFound:       len(st.files),
		Errors:           int(st.errors.Load()),
		SymlinkLoops:     int(st.symlinkLoops.Load()),
		FilesSkippedSize: int(st.skippedSize.Load()),
	}
	return st.files, stats, nil
}

// ShouldUseParallel reports whether the adaptive heuristic (or an explicit
// override) selects parallel traversal for root.
func (w *Walker) ShouldUseParallel(root string) bool {
	if w.cfg.ForceParallel {
		return true
	}
	if w.cfg.ForceSequential {
		return false
	}
	entries, err := afero.ReadDir(w.fs, root)
	if err != nil {
		return false
	}
	threshold := w.cfg.ParallelThreshold
	if threshold <= 0 {
		threshold = defaultParallelThreshold
	}
	return len(entries) > threshold/10
}

// walkState is the shared mutable state of one walk. The file slice is
// mutex-guarded; counters are atomic so both modes share one code path.
type walkState struct {
	mu    sync.Mutex
	files []domain.WalkedFile

	errors       atomic.Int64
	symlinkLoops atomic.Int64
	skippedSize  atomic.Int64
}

func (st *walkState) add(f domain.WalkedFile) {
	st.mu.Lock()
	st.files = append(st.files, f)
	st.mu.Unlock()
}

// walkDir is the sequential traversal over one directory subtree.
func (w *Walker) walkDir(st *walkState, abs, rel string, depth int) {
	entries, err := afero.ReadDir(w.fs, abs)
	if err != nil {
		st.errors.Add(1)
		return
	}
	for _, entry := range entries {
		w.processEntry(st, entry, abs, rel, depth, func(a, r string, d int) {
			w.walkDir(st, a, r, d)
		})
	}
}

// walkParallel distributes the root's direct subtrees over a bounded
// work pool. Each subtree is then walked sequentially, so the set of files
// produced is identical to a fully sequential walk.
func (w *Walker) walkParallel(st *walkState, root string) {
	entries, err := afero.ReadDir(w.fs, root)
	if err != nil {
		st.errors.Add(1)
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, entry := range entries {
		w.processEntry(st, entry, root, "", 0, func(a, r string, d int) {
			g.Go(func() error {
				w.walkDir(st, a, r, d)
				return nil
			})
		})
	}
	_ = g.Wait()
}

// processEntry applies the ignore rules to one directory entry and either
// records it as a file, prunes it, or hands the subtree to descend.
func (w *Walker) processEntry(st *walkState, entry os.FileInfo, parentAbs, parentRel string, parentDepth int, descend func(abs, rel string, depth int)) {
	name := entry.Name()
	rel := name
	if parentRel != "" {
		rel = path.Join(parentRel, name)
	}
	abs := filepath.Join(parentAbs, name)
	depth := parentDepth + 1

	if !w.cfg.Hidden && strings.HasPrefix(name, ".") {
		return
	}

	if entry.IsDir() {
		if name == ".git" || name == ".jj" {
			return
		}
		// Directory-level excludes prune the subtree: no I/O happens below.
		if w.excluded(name, rel) || w.gitIgnored(rel, true) {
			return
		}
		if w.cfg.MaxDepth > 0 && depth >= w.cfg.MaxDepth {
			// Files below this directory would exceed the inclusive limit.
			return
		}
		descend(abs, rel, depth)
		return
	}

	if entry.Mode()&os.ModeSymlink != 0 {
		w.processSymlink(st, abs, rel, depth, parentAbs)
		return
	}
	if !entry.Mode().IsRegular() {
		return
	}

	w.recordFile(st, rel, depth, entry.Size(), entry.ModTime().UnixNano(), false)
}

func (w *Walker) recordFile(st *walkState, rel string, depth int, size, modTime int64, symlinkLoop bool) {
	if w.excluded(path.Base(rel), rel) || w.gitIgnored(rel, false) {
		return
	}
	if w.cfg.MaxFileSize > 0 && size > w.cfg.MaxFileSize {
		st.skippedSize.Add(1)
		return
	}
	st.add(domain.WalkedFile{
		Path:          rel,
		Size:          size,
		ModTime:       modTime,
		Depth:         depth,
		IsSymlinkLoop: symlinkLoop,
	})
}

// processSymlink resolves a symlink entry. Links whose target is one of
// their own ancestors are counted as loops; links to regular files are
// recorded with the target's metadata; symlinked directories are never
// followed.
func (w *Walker) processSymlink(st *walkState, abs, rel string, depth int, parentAbs string) {
	if lr, ok := w.fs.(afero.LinkReader); ok {
		if target, err := lr.ReadlinkIfPossible(abs); err == nil {
			if !filepath.IsAbs(target) {
				target = filepath.Join(parentAbs, target)
			}
			target = filepath.Clean(target)
			sep := string(filepath.Separator)
			if parentAbs == target || strings.HasPrefix(parentAbs+sep, target+sep) {
				st.symlinkLoops.Add(1)
				return
			}
		}
	}

	info, err := w.fs.Stat(abs) // follows the link
	if err != nil {
		// Broken symlink.
		st.errors.Add(1)
		return
	}
	if info.IsDir() {
		return
	}
	w.recordFile(st, rel, depth, info.Size(), info.ModTime().UnixNano(), false)
}

// excluded reports whether an entry name or relative path matches any
// exclude glob. Rules compose by union with the other ignore sources.
func (w *Walker) excluded(name, rel string) bool {
	for _, pat := range w.cfg.Exclude {
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

func (w *Walker) gitIgnored(rel string, dir bool) bool {
	if w.gitIgnore == nil {
		return false
	}
	if w.gitIgnore.MatchesPath(rel) {
		return true
	}
	return dir && w.gitIgnore.MatchesPath(rel+"/")
}

// loadGitIgnore compiles the root .gitignore, but only when the root is
// actually a repository; outside one the rules do not apply.
func (w *Walker) loadGitIgnore(root string) *ignore.GitIgnore {
	if !w.cfg.GitIgnore {
		return nil
	}
	if ok, _ := afero.DirExists(w.fs, filepath.Join(root, ".git")); !ok {
		return nil
	}
	data, err := afero.ReadFile(w.fs, filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}
