package traverse

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gobwas/glob"

	"duview/internal/log"
)

// Options configure a Walk.
type Options struct {
	// Workers bounds how many subtrees are sized concurrently. Zero or
	// negative picks one worker per CPU.
	Workers int
	// Excludes holds glob patterns matched against entry base names.
	// Matching entries and everything below them are skipped.
	Excludes []string
}

// Progress exposes live counters a running Walk keeps updating. All
// methods are safe to call from other goroutines while the walk runs.
type Progress struct {
	files atomic.Uint64
	dirs  atomic.Uint64
	bytes atomic.Uint64
}

// Files reports how many file entries have been seen so far.
func (p *Progress) Files() uint64 { return p.files.Load() }

// Dirs reports how many directory entries have been seen so far.
func (p *Progress) Dirs() uint64 { return p.dirs.Load() }

// Bytes reports the byte total accumulated so far.
func (p *Progress) Bytes() uint64 { return p.bytes.Load() }

// Entries reports files and directories seen so far combined.
func (p *Progress) Entries() uint64 { return p.Files() + p.Dirs() }

// Traversal is the outcome of walking a set of input paths.
type Traversal struct {
	Tree             *Tree
	TotalBytes       uint64
	EntriesTraversed uint64
	IOErrors         uint64
	Elapsed          time.Duration
}

// Walk scans every input path and assembles the results into one tree.
// File sizes come from Lstat, so symlinks count at their own size and
// are never followed. Unreadable entries are counted as IO errors and
// skipped rather than aborting the walk. prog may be nil.
func Walk(paths []string, opts Options, prog *Progress) (*Traversal, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("traverse: no paths to walk")
	}
	if prog == nil {
		prog = &Progress{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	globs := make([]glob.Glob, 0, len(opts.Excludes))
	for _, pat := range opts.Excludes {
		g, err := glob.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("traverse: bad exclude pattern %q: %w", pat, err)
		}
		globs = append(globs, g)
	}

	start := time.Now()
	w := &walker{
		tree:  NewTree(),
		prog:  prog,
		globs: globs,
		sem:   make(chan struct{}, workers),
	}
	for _, p := range paths {
		w.walkInput(p)
	}

	total := w.tree.aggregate()
	return &Traversal{
		Tree:             w.tree,
		TotalBytes:       total,
		EntriesTraversed: prog.Entries(),
		IOErrors:         w.ioErrors.Load(),
		Elapsed:          time.Since(start),
	}, nil
}

type walker struct {
	mu       sync.Mutex
	tree     *Tree
	prog     *Progress
	globs    []glob.Glob
	sem      chan struct{}
	ioErrors atomic.Uint64
}

// walkInput handles one user-supplied path. Stat follows a symlink here
// so that an explicitly named link to a directory still gets scanned.
func (w *walker) walkInput(path string) {
	info, err := os.Stat(path)
	if err != nil {
		w.ioError(path, err)
		return
	}
	if !info.IsDir() {
		w.addFile(w.tree.Top(), path, uint64(info.Size()))
		return
	}
	idx := w.addDir(w.tree.Top(), path)
	w.walkFanOut(idx, path)
}

// walkFanOut reads one directory and hands each child directory to its
// own goroutine, bounded by the worker semaphore. Below that first level
// every subtree is walked sequentially, which keeps goroutine counts
// proportional to the branching factor at the roots.
func (w *walker) walkFanOut(parent NodeIndex, dir string) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		w.ioError(dir, err)
		return
	}
	var wg sync.WaitGroup
	for _, de := range dirents {
		name := de.Name()
		if w.excluded(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if de.IsDir() {
			idx := w.addDir(parent, name)
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.sem <- struct{}{}
				defer func() { <-w.sem }()
				w.walkSubtree(idx, path)
			}()
		} else {
			w.statFile(parent, de, path)
		}
	}
	wg.Wait()
}

// walkSubtree recurses through one directory sequentially.
func (w *walker) walkSubtree(parent NodeIndex, dir string) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		w.ioError(dir, err)
		return
	}
	for _, de := range dirents {
		name := de.Name()
		if w.excluded(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if de.IsDir() {
			idx := w.addDir(parent, name)
			w.walkSubtree(idx, path)
		} else {
			w.statFile(parent, de, path)
		}
	}
}

func (w *walker) statFile(parent NodeIndex, de os.DirEntry, path string) {
	info, err := de.Info()
	if err != nil {
		w.ioError(path, err)
		return
	}
	w.addFile(parent, de.Name(), uint64(info.Size()))
}

func (w *walker) addFile(parent NodeIndex, name string, size uint64) {
	w.mu.Lock()
	w.tree.AddNode(parent, EntryData{Name: name, Size: size})
	w.mu.Unlock()
	w.prog.files.Add(1)
	w.prog.bytes.Add(size)
}

func (w *walker) addDir(parent NodeIndex, name string) NodeIndex {
	w.mu.Lock()
	idx := w.tree.AddNode(parent, EntryData{Name: name, IsDir: true})
	w.mu.Unlock()
	w.prog.dirs.Add(1)
	return idx
}

func (w *walker) excluded(name string) bool {
	for _, g := range w.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func (w *walker) ioError(path string, err error) {
	w.ioErrors.Add(1)
	log.Debugf("skipping %s: %v", path, err)
}
