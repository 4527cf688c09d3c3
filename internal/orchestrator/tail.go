package orchestrator

import "sync"

const tailCap = 4096

// tailBuffer is an io.Writer keeping only the last tailCap bytes written.
// It feeds the diagnostic tail attached to StageError.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if n := len(t.buf); n > tailCap {
		t.buf = append(t.buf[:0], t.buf[n-tailCap:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
