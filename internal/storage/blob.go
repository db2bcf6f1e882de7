package storage

import (
	"context"
	"io"
	"sync/atomic"
)

// BlobStore abstracts the object store holding profile images.
type BlobStore interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Progress is one element of an upload progress stream. Non-terminal
// elements carry only Fraction; the final element has Done set and either
// URL or Err.
type Progress struct {
	Fraction float64
	URL      string
	Err      error
	Done     bool
}

// ProgressReader wraps a reader and reports the fraction of the expected
// size consumed so far. onProgress is called from whatever goroutine is
// draining the reader.
type ProgressReader struct {
	r          io.Reader
	total      int64
	read       atomic.Int64
	onProgress func(fraction float64)
}

// NewProgressReader wraps r. A non-positive total disables fraction
// reporting (every callback reports 0).
func NewProgressReader(r io.Reader, total int64, onProgress func(fraction float64)) *ProgressReader {
	return &ProgressReader{r: r, total: total, onProgress: onProgress}
}

func (p *ProgressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 && p.onProgress != nil {
		read := p.read.Add(int64(n))
		if p.total > 0 {
			p.onProgress(float64(read) / float64(p.total))
		} else {
			p.onProgress(0)
		}
	}
	return n, err
}
