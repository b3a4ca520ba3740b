package dashboard

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopClosed is returned once the loop has stopped.
var ErrLoopClosed = errors.New("dashboard loop closed")

// loop runs callbacks one at a time on a single goroutine. Every mutation of
// the document goes through it, so callbacks never overlap.
type loop struct {
	tasks    chan func()
	quit     chan struct{}
	done     chan struct{}
	quitOnce sync.Once
}

func newLoop() *loop {
	l := &loop{
		tasks: make(chan func(), 64),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.quit:
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}

// do runs fn on the loop and waits for it to return.
func (l *loop) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.quit:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *loop) close() {
	l.quitOnce.Do(func() { close(l.quit) })
	<-l.done
}
