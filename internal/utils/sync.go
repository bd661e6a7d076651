package utils

import (
	"sync"
	"sync/atomic"
)

type OptionalRWMutex struct {
	Mutex    sync.RWMutex
	UseMutex bool
}

func (m *OptionalRWMutex) Lock() {
	if m.UseMutex {
		m.Mutex.Lock()
	}
}

func (m *OptionalRWMutex) Unlock() {
	if m.UseMutex {
		m.Mutex.Unlock()
	}
}

func (m *OptionalRWMutex) RLock() {
	if m.UseMutex {
		m.Mutex.RLock()
	}
}

func (m *OptionalRWMutex) RUnlock() {
	if m.UseMutex {
		m.Mutex.RUnlock()
	}
}

// RefCount is a reference counter whose increments and decrements are plain
// integer arithmetic by default, or atomic read-modify-write operations when
// UseAtomic is set. The flavor is chosen once, when the counter's owner is
// created, and must not change while the counter is live.
type RefCount struct {
	value     int64
	UseAtomic bool
}

// Init sets the counter to an initial value. Init is not synchronized even
// when UseAtomic is set and must happen before the counter is shared.
func (c *RefCount) Init(value int64) {
	c.value = value
}

// Increment adds 1 to the counter and returns the new value.
func (c *RefCount) Increment() int64 {
	if c.UseAtomic {
		return atomic.AddInt64(&c.value, 1)
	}
	c.value++
	return c.value
}

// Decrement subtracts 1 from the counter and returns the new value.
func (c *RefCount) Decrement() int64 {
	if c.UseAtomic {
		return atomic.AddInt64(&c.value, -1)
	}
	c.value--
	return c.value
}

// Load returns the current value of the counter.
func (c *RefCount) Load() int64 {
	if c.UseAtomic {
		return atomic.LoadInt64(&c.value)
	}
	return c.value
}
