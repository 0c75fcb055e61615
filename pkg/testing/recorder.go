package testing

import (
	"sync"

	"github.com/go-drift/modalsheet/pkg/sheet"
)

// Recorder counts sheet notification callbacks.
type Recorder struct {
	mu     sync.Mutex
	opens  int
	closes int
	snaps  []int
}

// wrap returns cfg with callbacks that record before calling the originals.
func (r *Recorder) wrap(cfg sheet.Config) sheet.Config {
	onOpen, onClose, onSnap := cfg.OnOpen, cfg.OnClose, cfg.OnSnapPointChange
	cfg.OnOpen = func() {
		r.mu.Lock()
		r.opens++
		r.mu.Unlock()
		if onOpen != nil {
			onOpen()
		}
	}
	cfg.OnClose = func() {
		r.mu.Lock()
		r.closes++
		r.mu.Unlock()
		if onClose != nil {
			onClose()
		}
	}
	cfg.OnSnapPointChange = func(i int) {
		r.mu.Lock()
		r.snaps = append(r.snaps, i)
		r.mu.Unlock()
		if onSnap != nil {
			onSnap(i)
		}
	}
	return cfg
}

// Opens returns how many times OnOpen ran.
func (r *Recorder) Opens() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opens
}

// Closes returns how many times OnClose ran.
func (r *Recorder) Closes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closes
}

// Snaps returns the indices passed to OnSnapPointChange, in order.
func (r *Recorder) Snaps() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.snaps...)
}

// LastSnap returns the most recent snap index, or -1 if none.
func (r *Recorder) LastSnap() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snaps) == 0 {
		return -1
	}
	return r.snaps[len(r.snaps)-1]
}
