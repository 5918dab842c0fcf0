package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fakeCapturer returns a blank PNG of a fixed size after checking the selector like Chrome would.
type fakeCapturer struct {
	png   []byte
	err   error
	block chan struct{}

	mu      sync.Mutex
	calls   int
	running int
	peak    int
	html    string
}

func (f *fakeCapturer) Capture(ctx context.Context, html, selector string) (*Snapshot, error) {
	f.mu.Lock()
	f.calls++
	f.running++
	if f.running > f.peak {
		f.peak = f.running
	}
	f.html = html
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.running--
		f.mu.Unlock()
	}()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if err := checkTarget(html, selector); err != nil {
		return nil, err
	}
	if !strings.Contains(html, "cv-content") {
		return nil, errors.New("unexpected html")
	}
	return NewSnapshot(f.png)
}

type failingStore struct{ err error }

func (s failingStore) Put(context.Context, string, []byte) (string, error) {
	return "", s.err
}

type memoryStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func (s *memoryStore) Put(_ context.Context, name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		s.items = make(map[string][]byte)
	}
	s.items[name] = data
	return "mem://" + name, nil
}
