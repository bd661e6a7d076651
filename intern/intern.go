// Package intern provides a content-addressed pool of dstring handles.
// Interning equal strings collapses them onto one reference-counted block,
// so that equality checks become identity checks and repeated content is
// stored once.
package intern

import (
	"sync/atomic"

	"github.com/dolthub/swiss"

	"github.com/vkngwrapper/arsenal/dstring"
	"github.com/vkngwrapper/arsenal/dstring/internal/utils"
)

// Pool maps string content to a shared dstring.String. The pool holds one
// reference to every pooled block; each Intern call hands the caller one
// more, which the caller releases as usual.
type Pool struct {
	mutex   utils.OptionalRWMutex
	strings *swiss.Map[string, dstring.String]

	parentAllocator *dstring.Allocator

	hits   atomic.Int64
	misses atomic.Int64
}

// NewPool creates a Pool allocating from the provided allocator (nil selects
// dstring.Default). When threadSafe is set, the pool's table is guarded by a
// mutex; the allocator should then use atomic reference counts as well, or
// the handles the pool shares out will race on their counts.
func NewPool(allocator *dstring.Allocator, threadSafe bool) *Pool {
	if allocator == nil {
		allocator = dstring.Default
	}

	return &Pool{
		mutex:           utils.OptionalRWMutex{UseMutex: threadSafe},
		strings:         swiss.NewMap[string, dstring.String](64),
		parentAllocator: allocator,
	}
}

// Intern returns a retained handle whose payload equals text. All callers
// interning equal text receive handles aliasing the same block for as long
// as the pool lives.
func (p *Pool) Intern(text string) dstring.String {
	p.mutex.RLock()
	pooled, found := p.strings.Get(text)
	p.mutex.RUnlock()

	if found {
		p.hits.Add(1)
		return pooled.Retain()
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Another goroutine may have interned text between the two lock scopes.
	pooled, found = p.strings.Get(text)
	if found {
		p.hits.Add(1)
		return pooled.Retain()
	}

	p.misses.Add(1)
	pooled = p.parentAllocator.NewString(text)
	p.strings.Put(text, pooled)
	return pooled.Retain()
}

// Contains reports whether text is currently pooled, without interning it.
func (p *Pool) Contains(text string) bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	_, found := p.strings.Get(text)
	return found
}

// Len returns the number of pooled strings.
func (p *Pool) Len() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return p.strings.Count()
}

// Hits returns the number of Intern calls served from the pool.
func (p *Pool) Hits() int64 {
	return p.hits.Load()
}

// Misses returns the number of Intern calls that had to allocate.
func (p *Pool) Misses() int64 {
	return p.misses.Load()
}

// Destroy releases the pool's reference to every pooled block and empties
// the table. Handles previously returned by Intern stay valid; they hold
// their own references.
func (p *Pool) Destroy() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.strings.Iter(func(key string, pooled dstring.String) bool {
		pooled.Release()
		return false
	})
	p.strings = swiss.NewMap[string, dstring.String](64)
}
