package main

// Notes:
// - Test doubles shared by the convert, batch, and main tests.
// - newTestEnv builds a real markup.Converter from the options it receives, so
//   option errors (unknown style, bad template) surface exactly as in
//   production, then hands out the mock converter for the actual work.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	markup "github.com/alnah/go-markup"
)

// ---------------------------------------------------------------------------
// mockConverter - CLIConverter test double
// ---------------------------------------------------------------------------

type mockConverter struct {
	mu          sync.Mutex
	calls       []markup.Input
	convertFunc func(ctx context.Context, input markup.Input) (*markup.ConvertResult, error)
}

func newMockConverter() *mockConverter {
	return &mockConverter{}
}

func (m *mockConverter) Convert(ctx context.Context, input markup.Input) (*markup.ConvertResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if m.convertFunc != nil {
		return m.convertFunc(ctx, input)
	}

	// Default: echo the source so tests can check which file was written where
	result := &markup.ConvertResult{
		HTML:  []byte("<html>" + input.Source + "</html>"),
		Lines: strings.Count(input.Source, "\n") + 1,
	}
	if input.PDF {
		result.PDF = []byte("%PDF-1.4 mock")
	}
	return result, nil
}

func (m *mockConverter) getCalls() []markup.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]markup.Input{}, m.calls...)
}

// ---------------------------------------------------------------------------
// testPool - Pool test double handing out one shared mock
// ---------------------------------------------------------------------------

type testPool struct {
	mock       CLIConverter
	sem        chan CLIConverter
	size       int
	acquireErr error

	mu     sync.Mutex
	closed bool
}

func newTestPool(mock CLIConverter, size int) *testPool {
	if size < 1 {
		size = 1
	}
	p := &testPool{
		mock: mock,
		sem:  make(chan CLIConverter, size),
		size: size,
	}
	for i := 0; i < size; i++ {
		p.sem <- mock
	}
	return p
}

func (p *testPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return <-p.sem, nil
}

func (p *testPool) Release(c CLIConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.sem <- c
	}
}

func (p *testPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.sem)
	}
	return nil
}

func (p *testPool) Size() int {
	return p.size
}

func (p *testPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// ---------------------------------------------------------------------------
// Environment and filesystem helpers
// ---------------------------------------------------------------------------

// testEnv bundles an Environment with its captured output and created pools.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer

	mu    sync.Mutex
	pools []*testPool
	sizes []int
}

func newTestEnv(mock CLIConverter) *testEnv {
	te := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	te.Environment = &Environment{
		Now:    time.Now,
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewPool: func(size int, opts ...markup.Option) (Pool, error) {
			conv, err := markup.NewConverter(opts...)
			if err != nil {
				return nil, err
			}
			_ = conv.Close()

			pool := newTestPool(mock, size)
			te.mu.Lock()
			te.pools = append(te.pools, pool)
			te.sizes = append(te.sizes, size)
			te.mu.Unlock()
			return pool, nil
		},
	}
	return te
}

// runWithTestPool parses convert args and runs them against mock.
func runWithTestPool(t *testing.T, args []string, mock *mockConverter) (*testEnv, error) {
	t.Helper()
	te := newTestEnv(mock)
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return te, err
	}
	return te, runConvert(context.Background(), positional, flags, te.Environment)
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
