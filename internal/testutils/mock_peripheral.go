package testutils

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"
)

// MockPeripheral is an [io.Reader] and [io.Writer] standing in for a device.
// Reads drain Source; writes append to the sink.
type MockPeripheral struct {
	// Gate, when set, makes every Read and Write wait for a receive first.
	Gate chan struct{}
	// Err, when set, is returned by Read and Write once Source is drained.
	Err error

	mu     sync.Mutex
	source []byte
	sink   bytes.Buffer

	readCalls  atomic.Int64
	writeCalls atomic.Int64
}

func NewMockPeripheral(source []byte) *MockPeripheral {
	return &MockPeripheral{source: source}
}

func (p *MockPeripheral) Read(b []byte) (int, error) {
	p.readCalls.Add(1)
	p.wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.source) == 0 {
		if p.Err != nil {
			return 0, p.Err
		}
		return 0, io.EOF
	}
	n := copy(b, p.source)
	p.source = p.source[n:]
	return n, nil
}

func (p *MockPeripheral) Write(b []byte) (int, error) {
	p.writeCalls.Add(1)
	p.wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return 0, p.Err
	}
	return p.sink.Write(b)
}

// Written returns a copy of everything written so far.
func (p *MockPeripheral) Written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return bytes.Clone(p.sink.Bytes())
}

func (p *MockPeripheral) ReadCalls() int64 {
	return p.readCalls.Load()
}

func (p *MockPeripheral) WriteCalls() int64 {
	return p.writeCalls.Load()
}

func (p *MockPeripheral) wait() {
	if p.Gate != nil {
		<-p.Gate
	}
}

// Pattern returns n bytes filled with a repeating a-z pattern.
func Pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte('a' + (i % 26))
	}
	return data
}
