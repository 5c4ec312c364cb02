// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"

	"github.com/myflix/myflix/internal/models"
)

// MockService is a configurable test double for [services.Service].
//
// Zero value returns empty results. Set SearchFunc or DetailFunc to script
// responses; call counters track upstream traffic.
type MockService struct {
	SearchFunc  func(ctx context.Context, query string) (*models.SearchResult, error)
	DetailFunc  func(ctx context.Context, id string) (*models.MovieDetail, error)
	SearchCalls atomic.Int64
	DetailCalls atomic.Int64
}

func (m *MockService) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	m.SearchCalls.Add(1)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return &models.SearchResult{Movies: []models.Movie{}}, nil
}

func (m *MockService) Detail(ctx context.Context, id string) (*models.MovieDetail, error) {
	m.DetailCalls.Add(1)
	if m.DetailFunc != nil {
		return m.DetailFunc(ctx, id)
	}
	return &models.MovieDetail{ID: id}, nil
}

func (m *MockService) Name() string { return "mock" }

// MockStore is an in-memory test double for [session.Store].
type MockStore struct {
	Data      map[string]string
	SaveErr   error
	LoadErr   error
	RemoveErr error
}

func NewMockStore() *MockStore {
	return &MockStore{Data: map[string]string{}}
}

func (m *MockStore) Save(key, value string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Data[key] = value
	return nil
}

func (m *MockStore) Load(key string) (string, bool, error) {
	if m.LoadErr != nil {
		return "", false, m.LoadErr
	}
	value, ok := m.Data[key]
	return value, ok, nil
}

func (m *MockStore) Remove(key string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.Data, key)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
