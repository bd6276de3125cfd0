package delivery

import (
	"math/rand"
	"sync"
)

// PartnerTracker holds the courier's last reported position. Until the
// courier app reports in, Location answers with a simulated position that
// drifts a little on every read so the tracking page shows movement.
type PartnerTracker struct {
	mu       sync.Mutex
	reported Coord
	hasFix   bool
	sim      Coord
	rnd      *rand.Rand
}

func NewPartnerTracker(seed int64) *PartnerTracker {
	return &PartnerTracker{
		sim: Coord{Lat: 20.5937, Lon: 78.9629},
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Update records a position reported by the courier app. A (0,0) report is
// treated as "no fix" and ignored.
func (t *PartnerTracker) Update(lat, lon float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if lat == 0 && lon == 0 {
		return
	}
	t.reported = Coord{Lat: lat, Lon: lon}
	t.hasFix = true
}

// Location returns the courier position shown on the tracking page.
func (t *PartnerTracker) Location() Coord {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hasFix {
		return t.reported
	}
	t.sim.Lat += (t.rnd.Float64() - 0.5) * 0.001
	t.sim.Lon += (t.rnd.Float64() - 0.5) * 0.001
	return t.sim
}
