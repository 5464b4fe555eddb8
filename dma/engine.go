package dma

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/holmberd/go-slicer"
)

// ErrClosed is returned for transfers submitted to, or still queued on, a closed engine.
var ErrClosed = errors.New("engine is closed")

type job struct {
	run  func()
	fail func(err error)
}

// Engine moves bytes between peripherals ([io.Reader] and [io.Writer]) and
// stable buffers on a fixed number of channels, without blocking the caller.
type Engine struct {
	logger  *slog.Logger
	metrics *Metrics
	burst   int

	jobs chan job
	quit chan struct{}

	// mu guards closed; submitters hold it shared while queueing.
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewEngine validates the config and starts the engine's channels.
// A nil logger uses [slog.Default]; nil metrics are not registered anywhere.
func NewEngine(cfg Config, logger *slog.Logger, metrics *Metrics) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	e := &Engine{
		logger:  logger,
		metrics: metrics,
		burst:   cfg.BurstSize,
		jobs:    make(chan job, cfg.QueueDepth),
		quit:    make(chan struct{}),
	}
	e.wg.Add(cfg.Channels)
	for range cfg.Channels {
		go e.channel()
	}
	return e, nil
}

// Receive starts a peripheral-to-memory transfer that fills dst from src.
//
// The transfer ends when dst is full or src returns [io.EOF]; a short fill
// at EOF is not an error. The engine owns dst until the transfer completes.
func Receive[B WriteBuffer](ctx context.Context, e *Engine, src io.Reader, dst B) (*Transfer[B], error) {
	t := newTransfer(ToMemory, dst)
	err := e.submit(ctx, job{
		run: func() {
			p := dst.AsMutSlice()
			n, err := e.receive(ctx, src, p)
			e.finish(&t.transferState, n, slicer.Sum64[byte](slicer.Slice[byte](p[:n])), err)
		},
		fail: func(err error) {
			e.finish(&t.transferState, 0, 0, err)
		},
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Send starts a memory-to-peripheral transfer that writes all of src to dst.
// The engine owns src until the transfer completes.
func Send[B ReadBuffer](ctx context.Context, e *Engine, src B, dst io.Writer) (*Transfer[B], error) {
	t := newTransfer(FromMemory, src)
	err := e.submit(ctx, job{
		run: func() {
			v := src.AsSlice()
			n, err := e.send(ctx, v, dst)
			e.finish(&t.transferState, n, slicer.Sum64[byte](v.Slice(0, n)), err)
		},
		fail: func(err error) {
			e.finish(&t.transferState, 0, 0, err)
		},
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Close stops the engine. Running transfers finish their current burst;
// queued transfers fail with ErrClosed. Close is idempotent.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		close(e.quit) // Unblock submitters waiting for queue space.

		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()

		e.wg.Wait()
		for {
			select {
			case j := <-e.jobs:
				j.fail(ErrClosed)
			default:
				return
			}
		}
	})
	return nil
}

func (e *Engine) submit(ctx context.Context, j job) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrClosed
	}

	e.metrics.inflight.Inc()
	select {
	case e.jobs <- j:
		return nil
	case <-ctx.Done():
		e.metrics.inflight.Dec()
		return ctx.Err()
	case <-e.quit:
		e.metrics.inflight.Dec()
		return ErrClosed
	}
}

// channel runs queued jobs until the engine is closed.
func (e *Engine) channel() {
	defer e.wg.Done()
	for {
		select {
		case <-e.quit:
			return
		case j := <-e.jobs:
			// Both cases may be ready at once; queued jobs never start after Close.
			select {
			case <-e.quit:
				j.fail(ErrClosed)
				return
			default:
				j.run()
			}
		}
	}
}

func (e *Engine) receive(ctx context.Context, src io.Reader, dst []byte) (n int, err error) {
	for n < len(dst) {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		end := min(n+e.burst, len(dst))
		m, err := readBurst(src, dst[n:end])
		n += m
		if err == io.EOF {
			return n, nil // Peripheral has no more data.
		}
		if err != nil {
			return n, fmt.Errorf("receive burst at offset %d: %w", n, err)
		}
	}
	return n, nil
}

// readBurst reads from r until p is full. Unlike [io.ReadFull] it returns
// [io.EOF] as is on a short read, so any [io.ErrUnexpectedEOF] came from r.
func readBurst(r io.Reader, p []byte) (n int, err error) {
	for n < len(p) && err == nil {
		var m int
		m, err = r.Read(p[n:])
		n += m
	}
	if n == len(p) {
		err = nil
	}
	return n, err
}

func (e *Engine) send(ctx context.Context, src slicer.View[byte], dst io.Writer) (n int, err error) {
	var r slicer.Reader
	for n < src.Len() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		end := min(n+e.burst, src.Len())
		m, err := r.Reset(src.Slice(n, end)).WriteTo(dst)
		n += int(m)
		if err != nil {
			return n, fmt.Errorf("send burst at offset %d: %w", n, err)
		}
	}
	return n, nil
}

// finish records the outcome and releases waiters.
func (e *Engine) finish(t *transferState, n int, sum uint64, err error) {
	t.n, t.sum, t.err = n, sum, err

	dir := t.dir.String()
	status := "success"
	if err != nil {
		status = "failure"
		e.logger.Warn("transfer failed", "direction", dir, "bytes", n, "error", err)
	} else {
		e.logger.Debug("transfer complete", "direction", dir, "bytes", n)
	}
	e.metrics.transfers.WithLabelValues(dir, status).Inc()
	e.metrics.bytes.WithLabelValues(dir).Add(float64(n))
	e.metrics.inflight.Dec()
	close(t.done)
}
