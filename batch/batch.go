// Package batch walks a directory of SDTID provisioning files and generates
// a passcode for every token it finds, concurrently. It adapts the
// teacher's chunk-level worker pool (see the root package's DESIGN.md) from
// "chunks of one file" to "one token per file", exercising spec §5's claim
// that Generate calls on disjoint RSAToken values need no coordination.
package batch

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/absfs/absfs"

	sdtoken "github.com/sdtid/sdtoken"
)

// Config controls concurrent directory processing.
type Config struct {
	// MaxWorkers caps the number of goroutines walking files concurrently.
	// Zero means runtime.NumCPU().
	MaxWorkers int

	// MinFilesForParallel is the smallest file count worth the goroutine
	// fan-out; below it, files are processed sequentially on the caller's
	// goroutine. Mirrors the teacher's MinChunksForParallel threshold.
	MinFilesForParallel int
}

// Validate checks that the config's thresholds are non-negative and
// within a sane range, following the teacher's ParallelConfig.Validate
// shape.
func (c *Config) Validate() error {
	if c.MaxWorkers < 0 {
		return fmt.Errorf("batch: max workers cannot be negative")
	}
	if c.MaxWorkers > 1024 {
		return fmt.Errorf("batch: max workers must not exceed 1024")
	}
	if c.MinFilesForParallel < 0 {
		return fmt.Errorf("batch: min files threshold cannot be negative")
	}
	return nil
}

// DefaultConfig returns the default concurrency configuration.
func DefaultConfig() Config {
	return Config{
		MaxWorkers:          runtime.NumCPU(),
		MinFilesForParallel: 4,
	}
}

// Result is one file's outcome: either a passcode, or the error that
// prevented producing one. Exactly one of Code/Err is set.
type Result struct {
	Path  string
	Login string
	Code  string
	Err   error
}

// Generate reads every path in paths as an SDTID file (through fs), builds
// an RSAToken with pin, and generates its passcode at t. Results are
// returned in the same order as paths regardless of how many goroutines
// processed them.
func Generate(fs absfs.FileSystem, paths []string, pin string, t time.Time, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	process := func(i int) {
		path := paths[i]
		batch, err := sdtoken.ReadFS(fs, path)
		if err != nil {
			results[i] = Result{Path: path, Err: fmt.Errorf("read: %w", err)}
			return
		}

		token, err := sdtoken.FromXML(batch, pin)
		if err != nil {
			results[i] = Result{Path: path, Err: fmt.Errorf("build token: %w", err)}
			return
		}
		defer token.Zero()

		code, err := sdtoken.Generate(token, t)
		if err != nil {
			results[i] = Result{Path: path, Err: fmt.Errorf("generate: %w", err)}
			return
		}

		results[i] = Result{Path: path, Login: batch.Token.UserLogin, Code: code}
	}

	numWorkers := cfg.MaxWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	if len(paths) < cfg.MinFilesForParallel {
		for i := range paths {
			process(i)
		}
		return results, nil
	}

	var wg sync.WaitGroup
	jobs := make(chan int, len(paths))
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				process(idx)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// ListSDTIDFiles walks dir (non-recursively) through fs and returns the
// paths of every entry whose name ends in ".sdtid", sorted for
// deterministic ordering.
func ListSDTIDFiles(fs absfs.FileSystem, dir string) ([]string, error) {
	f, err := fs.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: failed to open directory %s: %w", dir, err)
	}
	defer f.Close()

	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, fmt.Errorf("batch: failed to list directory %s: %w", dir, err)
	}

	var paths []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		name := info.Name()
		if len(name) > len(".sdtid") && name[len(name)-len(".sdtid"):] == ".sdtid" {
			paths = append(paths, dir+"/"+name)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
