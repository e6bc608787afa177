package clock

import (
	"sync/atomic"
	"time"
)

// Clock yields unix seconds. Only stats bookkeeping and creation stamps read it.
type Clock interface {
	Now() uint64
}

type System struct{}

func (System) Now() uint64 {
	return uint64(time.Now().Unix())
}

// Manual is a settable clock for tests.
type Manual struct {
	now atomic.Uint64
}

func NewManual(start uint64) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

func (m *Manual) Now() uint64 {
	return m.now.Load()
}

func (m *Manual) Advance(seconds uint64) {
	m.now.Add(seconds)
}
