package main_test

import (
	"bytes"
	"strings"
	"sync"
)

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// After returns the text following the first occurrence of prefix, or ""
// when prefix has not been written yet.
func (b *syncBuffer) After(prefix string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, after, ok := strings.Cut(b.buf.String(), prefix)
	if !ok {
		return ""
	}
	return after
}
