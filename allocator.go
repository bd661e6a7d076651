package dstring

import (
	"context"

	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific allocator behaviors to activate or deactivate
type CreateFlags int32

const (
	// CreateAtomicRefCounts makes every reference count owned by this
	// allocator use atomic read-modify-write operations, so that Retain and
	// Release may be called concurrently from multiple goroutines on handles
	// to the same block. This is the only cross-goroutine guarantee the
	// library offers: payload reads and writes, and all Builder operations,
	// remain unsynchronized.
	CreateAtomicRefCounts CreateFlags = 1 << iota
)

func (f CreateFlags) String() string {
	if f&CreateAtomicRefCounts != 0 {
		return "CreateAtomicRefCounts"
	}
	return "0"
}

const (
	// defaultBuilderCapacity is the payload capacity used for Builders when
	// none is requested
	defaultBuilderCapacity = 32
	// defaultGrowthFactor is the geometric factor Builders grow capacity by
	defaultGrowthFactor = 2
)

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// Flags indicates specific allocator behaviors to activate or deactivate
	Flags CreateFlags

	// BuilderCapacity is the initial payload capacity of Builders created
	// without an explicit capacity. Values below 1 select the default of 32.
	BuilderCapacity int

	// BuilderGrowthFactor is the geometric factor by which Builder capacity
	// grows when exhausted. Values below 2 select the default of 2.
	BuilderGrowthFactor int
}

// Allocator owns all blocks created through it and tracks their statistics.
// Strings and Builders remember their parent allocator, so all derived
// allocations are attributed to it as well.
type Allocator struct {
	logger *slog.Logger
	flags  CreateFlags

	atomicRefs      bool
	builderCapacity int
	growthFactor    int

	stats allocatorStatistics
}

// NewAllocator creates a new Allocator
//
// logger - Destination for diagnostics such as the Destroy leak report. May
// be nil, in which case slog.Default() is used.
//
// options - Optional parameters: it is valid to leave all the fields blank
func NewAllocator(logger *slog.Logger, options CreateOptions) *Allocator {
	if logger == nil {
		logger = slog.Default()
	}

	a := &Allocator{
		logger: logger,
		flags:  options.Flags,

		atomicRefs:      options.Flags&CreateAtomicRefCounts != 0,
		builderCapacity: options.BuilderCapacity,
		growthFactor:    options.BuilderGrowthFactor,
	}

	if a.builderCapacity < 1 {
		a.builderCapacity = defaultBuilderCapacity
	}
	if a.growthFactor < 2 {
		a.growthFactor = defaultGrowthFactor
	}

	return a
}

// Default is the allocator behind the zero String value, zero Builder value,
// and the package-level constructors. It uses atomic reference counts, since
// the package cannot know which goroutines its handles will travel between.
var Default = NewAllocator(nil, CreateOptions{Flags: CreateAtomicRefCounts})

// Destroy verifies that every block allocated through this allocator has been
// released. If live blocks remain, a leak report is logged and an error is
// returned. The allocator itself holds no resources beyond its counters, so
// Destroy may be skipped by programs that do not track string lifetimes.
func (a *Allocator) Destroy() error {
	var stats Statistics
	stats.Clear()
	a.AddStatistics(&stats)

	if stats.BlockCount > 0 {
		a.logger.LogAttrs(context.Background(),
			slog.LevelError,
			"[UNRELEASED STRINGS] blocks still alive at allocator teardown",
			slog.Int("blocks", stats.BlockCount),
			slog.Int("bytes", stats.BlockBytes),
			slog.Int("handles", stats.HandleCount))
		return cerrors.Newf("dstring: destroyed allocator still owns %d live blocks (%d bytes, %d handles)",
			stats.BlockCount, stats.BlockBytes, stats.HandleCount)
	}

	return nil
}
