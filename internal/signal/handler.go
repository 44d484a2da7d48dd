// Package signal turns SIGINT and SIGTERM into context cancellation so that
// a command waiting on the storage lock or an interactive prompt stops promptly.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Interrupt cancels its context on the first SIGINT or SIGTERM and records
// that the process was interrupted.
type Interrupt struct {
	ctx      context.Context //nolint:containedctx // the interrupt owns the context lifecycle
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	done     chan struct{}
	fired    atomic.Bool
	stopOnce sync.Once
}

// Notify starts listening for interrupt signals.
// Always call Stop when the command finishes.
func Notify(parent context.Context) *Interrupt {
	ctx, cancel := context.WithCancel(parent)
	i := &Interrupt{
		ctx:    ctx,
		cancel: cancel,
		// Buffer of 1 so signal.Notify never drops the first signal.
		sigChan: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}

	signal.Notify(i.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go i.listen()

	return i
}

// Context returns the context canceled on interrupt.
func (i *Interrupt) Context() context.Context {
	return i.ctx
}

// Fired reports whether a signal was received.
func (i *Interrupt) Fired() bool {
	return i.fired.Load()
}

// Stop releases the signal subscription and cancels the context. It is idempotent.
func (i *Interrupt) Stop() {
	i.stopOnce.Do(func() {
		signal.Stop(i.sigChan)
		close(i.done)
		i.cancel()
	})
}

func (i *Interrupt) trigger() {
	if i.fired.CompareAndSwap(false, true) {
		i.cancel()
	}
}

func (i *Interrupt) listen() {
	for {
		select {
		case <-i.ctx.Done():
			return
		case <-i.done:
			return
		case <-i.sigChan:
			i.trigger()
		}
	}
}
