package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
)

// initialScanBuffer and maxScanBuffer size the bufio.Scanner used for each
// session file; session lines can carry large tool outputs, so the
// default 64KiB token limit is too small. Matches the 10MB ceiling the
// adapter this tool is modeled on uses.
const (
	initialScanBuffer = 64 * 1024
	maxScanBuffer      = 10 * 1024 * 1024
)

// Stats accumulates scan-wide counters. Safe for concurrent use; read
// after the Scan channel closes for a final value.
type Stats struct {
	FilesScanned int64
	LinesRead    int64
	Skipped      int64 // lines that failed to parse as a known record
}

func (s *Stats) addSkipped(n int64)      { atomic.AddInt64(&s.Skipped, n) }
func (s *Stats) addLinesRead(n int64)    { atomic.AddInt64(&s.LinesRead, n) }
func (s *Stats) addFilesScanned(n int64) { atomic.AddInt64(&s.FilesScanned, n) }

// Scan streams every Record found in files matching pattern, rooted under
// dir. Malformed lines are skipped and counted in Stats rather than
// aborting the scan. A file that cannot be opened is skipped, and a read
// error ends that file's scan early; neither is reported to the caller,
// and neither stops the rest of the walk. Only an error resolving the
// pattern is returned. The returned channel is closed once every
// matching file has been read or ctx is done.
func Scan(ctx context.Context, dir, pattern string) (<-chan Record, *Stats, error) {
	if pattern == "" {
		pattern = "**/*.jsonl"
	}
	files, err := matchFiles(dir, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("corpus: resolving pattern %q under %q: %w", pattern, dir, err)
	}

	stats := &Stats{}
	out := make(chan Record, 64)

	go func() {
		defer close(out)
		var wg sync.WaitGroup
		sem := make(chan struct{}, scanConcurrency())
		for _, f := range files {
			if ctx.Err() != nil {
				break
			}
			f := f
			sem <- struct{}{}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				scanFile(ctx, f, out, stats)
			}()
		}
		wg.Wait()
	}()

	return out, stats, nil
}

func scanConcurrency() int {
	n := 4
	if cpu := numCPU(); cpu > n {
		n = cpu
	}
	if n > 16 {
		n = 16
	}
	return n
}

func scanFile(ctx context.Context, path string, out chan<- Record, stats *Stats) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	stats.addFilesScanned(1)

	scanner := bufio.NewScanner(f)
	buf := make([]byte, initialScanBuffer)
	scanner.Buffer(buf, maxScanBuffer)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Bytes()
		if len(bytesTrimSpace(line)) == 0 {
			continue
		}
		stats.addLinesRead(1)
		rec, ok := ParseLine(path, line)
		if !ok {
			stats.addSkipped(1)
			continue
		}
		select {
		case out <- rec:
		case <-ctx.Done():
			return
		}
	}
}

func bytesTrimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isSpaceByte(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isSpaceByte(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// matchFiles resolves a glob pattern that may contain a "**" segment
// (matching any number of path components) against the directory tree
// rooted at dir. Patterns without "**" are handled by filepath.Glob.
func matchFiles(dir, pattern string) ([]string, error) {
	if !strings.Contains(pattern, "**") {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		return matches, nil
	}

	parts := strings.Split(filepath.ToSlash(pattern), "/")
	var results []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, don't abort the walk
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		if matchDoublestar(strings.Split(filepath.ToSlash(rel), "/"), parts) {
			results = append(results, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// matchDoublestar matches path segments against pattern segments where a
// "**" pattern segment consumes zero or more path segments.
func matchDoublestar(path, pattern []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		if matchDoublestar(path, pattern[1:]) {
			return true
		}
		if len(path) == 0 {
			return false
		}
		return matchDoublestar(path[1:], pattern)
	}
	if len(path) == 0 {
		return false
	}
	ok, err := filepath.Match(pattern[0], path[0])
	if err != nil || !ok {
		return false
	}
	return matchDoublestar(path[1:], pattern[1:])
}

// LoadSessionLines reads the raw lines of a single session file, used by
// the session viewer. Lines are returned in file order, newline stripped.
func LoadSessionLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: opening session file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, initialScanBuffer)
	scanner.Buffer(buf, maxScanBuffer)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return lines, fmt.Errorf("corpus: reading session file: %w", err)
	}
	return lines, nil
}
