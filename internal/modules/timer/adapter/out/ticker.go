package out

import (
	"sync"
	"time"
)

// IntervalTicker drives a countdown from a time.Ticker on its own goroutine.
type IntervalTicker struct{}

func NewIntervalTicker() IntervalTicker {
	return IntervalTicker{}
}

func (IntervalTicker) Start(interval time.Duration, fn func()) func() {
	t := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			t.Stop()
			close(done)
		})
	}
}
