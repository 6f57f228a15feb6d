package trace

import (
	"fmt"
	"strings"

	"github.com/chazu/blockrt/block"
)

// Report holds aggregate statistics for one recorded session.
type Report struct {
	SessionID string
	Events    int
	Dropped   uint64

	BlockPromotions int
	BlockRetains    int
	BlockReleases   int
	BlocksFreed     int

	ByrefPromotions int
	ByrefRetains    int
	ByrefReleases   int
	ByrefsFreed     int

	LiveBlocks int // promoted but never freed
	LiveByrefs int
	PeakLive   int // maximum simultaneously live blocks+cells
	PeakBytes  uint64
}

// BuildReport aggregates a session's event stream.
func BuildReport(s Session) Report {
	r := Report{SessionID: s.ID, Events: len(s.Events), Dropped: s.Dropped}

	live := 0
	var liveBytes uint64
	for _, e := range s.Events {
		switch block.TraceEventKind(e.Kind) {
		case block.TraceBlockPromoted:
			r.BlockPromotions++
			live++
			liveBytes += e.Size
		case block.TraceBlockRetained:
			r.BlockRetains++
		case block.TraceBlockReleased:
			r.BlockReleases++
		case block.TraceBlockFreed:
			r.BlocksFreed++
			live--
			liveBytes -= e.Size
		case block.TraceByrefPromoted:
			r.ByrefPromotions++
			live++
			liveBytes += e.Size
		case block.TraceByrefRetained:
			r.ByrefRetains++
		case block.TraceByrefReleased:
			r.ByrefReleases++
		case block.TraceByrefFreed:
			r.ByrefsFreed++
			live--
			liveBytes -= e.Size
		}
		if live > r.PeakLive {
			r.PeakLive = live
		}
		if liveBytes > r.PeakBytes {
			r.PeakBytes = liveBytes
		}
	}
	r.LiveBlocks = r.BlockPromotions - r.BlocksFreed
	r.LiveByrefs = r.ByrefPromotions - r.ByrefsFreed
	return r
}

// String renders the report as a human-readable summary.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "session %s: %d events", r.SessionID, r.Events)
	if r.Dropped > 0 {
		fmt.Fprintf(&b, " (%d dropped)", r.Dropped)
	}
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "  blocks: %d promoted, %d retained, %d released, %d freed, %d live\n",
		r.BlockPromotions, r.BlockRetains, r.BlockReleases, r.BlocksFreed, r.LiveBlocks)
	fmt.Fprintf(&b, "  byrefs: %d promoted, %d retained, %d released, %d freed, %d live\n",
		r.ByrefPromotions, r.ByrefRetains, r.ByrefReleases, r.ByrefsFreed, r.LiveByrefs)
	fmt.Fprintf(&b, "  peak: %d live instances, %d bytes\n", r.PeakLive, r.PeakBytes)
	return b.String()
}
