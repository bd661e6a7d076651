package dstring

import (
	"sync/atomic"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// Statistics describes the memory currently owned by an Allocator.
type Statistics struct {
	// BlockCount is the number of live blocks
	BlockCount int
	// BlockBytes is the number of backing bytes held by live blocks, including
	// terminators and unused Builder capacity
	BlockBytes int
	// HandleCount is the number of outstanding references across all live
	// blocks (String handles plus Builder-internal references)
	HandleCount int
}

func (s *Statistics) Clear() {
	s.BlockCount = 0
	s.BlockBytes = 0
	s.HandleCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.BlockCount += other.BlockCount
	s.BlockBytes += other.BlockBytes
	s.HandleCount += other.HandleCount
}

// DetailedStatistics extends Statistics with cumulative counters describing
// the Allocator's behavior over its whole lifetime.
type DetailedStatistics struct {
	Statistics
	// AllocationCount is the total number of blocks ever allocated
	AllocationCount int
	// AllocationBytes is the total payload size of blocks ever allocated
	AllocationBytes int
	// CopyOnWriteCount is the number of times a Builder mutation found its
	// block shared and had to clone the payload first
	CopyOnWriteCount int
	// GrowCount is the number of capacity growths performed by Builders
	GrowCount int
	// ShrinkCount is the number of shrink-to-fit operations performed when
	// freezing Builders
	ShrinkCount int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.AllocationCount = 0
	s.AllocationBytes = 0
	s.CopyOnWriteCount = 0
	s.GrowCount = 0
	s.ShrinkCount = 0
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.AllocationCount += other.AllocationCount
	s.AllocationBytes += other.AllocationBytes
	s.CopyOnWriteCount += other.CopyOnWriteCount
	s.GrowCount += other.GrowCount
	s.ShrinkCount += other.ShrinkCount
}

// allocatorStatistics is the live counter set behind an Allocator. Counters
// are always atomic so that statistics stay coherent even when the allocator
// itself runs with atomic reference counts and is shared between goroutines.
type allocatorStatistics struct {
	blockCount  atomic.Int64
	blockBytes  atomic.Int64
	handleCount atomic.Int64

	allocationCount  atomic.Int64
	allocationBytes  atomic.Int64
	copyOnWriteCount atomic.Int64
	growCount        atomic.Int64
	shrinkCount      atomic.Int64
}

// AddStatistics sums the allocator's current memory statistics into the
// statistics currently present in the provided Statistics object.
func (a *Allocator) AddStatistics(stats *Statistics) {
	stats.BlockCount += int(a.stats.blockCount.Load())
	stats.BlockBytes += int(a.stats.blockBytes.Load())
	stats.HandleCount += int(a.stats.handleCount.Load())
}

// AddDetailedStatistics sums the allocator's current memory statistics and
// lifetime counters into the statistics currently present in the provided
// DetailedStatistics object.
func (a *Allocator) AddDetailedStatistics(stats *DetailedStatistics) {
	a.AddStatistics(&stats.Statistics)
	stats.AllocationCount += int(a.stats.allocationCount.Load())
	stats.AllocationBytes += int(a.stats.allocationBytes.Load())
	stats.CopyOnWriteCount += int(a.stats.copyOnWriteCount.Load())
	stats.GrowCount += int(a.stats.growCount.Load())
	stats.ShrinkCount += int(a.stats.shrinkCount.Load())
}

// BuildStatsString builds a JSON string detailing the current state of this
// allocator. If detailed is true, lifetime counters are included alongside
// the live memory numbers.
func (a *Allocator) BuildStatsString(detailed bool) string {
	writer := jwriter.NewWriter()
	obj := writer.Object()

	var stats DetailedStatistics
	stats.Clear()
	a.AddDetailedStatistics(&stats)

	obj.Name("BlockCount").Int(stats.BlockCount)
	obj.Name("BlockBytes").Int(stats.BlockBytes)
	obj.Name("HandleCount").Int(stats.HandleCount)

	if detailed {
		obj.Name("AllocationCount").Int(stats.AllocationCount)
		obj.Name("AllocationBytes").Int(stats.AllocationBytes)
		obj.Name("CopyOnWriteCount").Int(stats.CopyOnWriteCount)
		obj.Name("GrowCount").Int(stats.GrowCount)
		obj.Name("ShrinkCount").Int(stats.ShrinkCount)
	}

	obj.End()
	return string(writer.Bytes())
}
