package lattice

import (
	"fmt"
	"os"
	"time"
)

// Debug enables stderr diagnostics for export runs. Off by default; the
// evaluation core itself never logs.
var Debug bool

// exportStats holds per-run timing metrics for a matte export.
// Only populated when Debug is true.
type exportStats struct {
	evalTime   time.Duration
	rasterTime time.Duration
	encodeTime time.Duration
	frames     int
}

// debugLog prints export timing stats to stderr.
func (st exportStats) debugLog() {
	if !Debug {
		return
	}
	total := st.evalTime + st.rasterTime + st.encodeTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[lattice] frames: %d | eval: %v | raster: %v | encode: %v | total: %v\n",
		st.frames, st.evalTime, st.rasterTime, st.encodeTime, total)
}
