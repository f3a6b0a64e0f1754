package bearrun

import (
	"math"

	"github.com/vovakirdan/bear-run/internal/config"
)

// spawner creates obstacles just past the right edge of the surface.
// All sizes are pre-scaled.
type spawner struct {
	kinds      []obstacleKind
	rightEdge  float64
	ground     float64
	jitter     float64
	gapMin     float64
	gapSpan    float64
	pairChance float64

	lastPaired bool // Whether the previous spawn emitted a pair
	spawned    int  // Obstacles created this session
	pairs      int
}

// newSpawner scales the catalog and spawn geometry.
func newSpawner(cfg config.ObstacleConfig, scale, rightEdge, ground float64) spawner {
	kinds := make([]obstacleKind, len(cfg.Catalog))
	for i, k := range cfg.Catalog {
		kinds[i] = obstacleKind{
			name:   k.Name,
			width:  k.Width * scale,
			height: k.Height * scale,
		}
	}

	return spawner{
		kinds:      kinds,
		rightEdge:  rightEdge,
		ground:     ground,
		jitter:     cfg.SpawnJitter * scale,
		gapMin:     cfg.PairGapMin * scale,
		gapSpan:    (cfg.PairGapMax - cfg.PairGapMin) * scale,
		pairChance: cfg.PairChance,
	}
}

// spawn creates one obstacle, or two of the same kind when a pair is rolled
// and the previous spawn was not already a pair.
//
// Random draws, in order: kind, x jitter, phase, pair roll, then gap and
// second phase when a pair is emitted. The pair roll is drawn even when a
// pair is not allowed. An empty catalog spawns nothing and draws nothing.
func (sp *spawner) spawn(rng Source) []Obstacle {
	if len(sp.kinds) == 0 {
		return nil
	}
	idx := pickIndex(rng.Float64(), len(sp.kinds))
	kind := sp.kinds[idx]

	first := Obstacle{
		X:      sp.rightEdge + rng.Float64()*sp.jitter,
		BaseY:  sp.ground - kind.height,
		Phase:  rng.Float64() * 2 * math.Pi,
		Width:  kind.width,
		Height: kind.height,
		Kind:   idx,
	}
	out := []Obstacle{first}

	if rng.Float64() < sp.pairChance && !sp.lastPaired {
		second := first
		second.X = first.X + sp.gapMin + rng.Float64()*sp.gapSpan
		second.Phase = rng.Float64() * 2 * math.Pi
		out = append(out, second)
		sp.lastPaired = true
		sp.pairs++
	} else {
		sp.lastPaired = false
	}

	sp.spawned += len(out)
	return out
}

// kindName returns the catalog name for an obstacle kind.
func (sp *spawner) kindName(idx int) string {
	if idx < 0 || idx >= len(sp.kinds) {
		return ""
	}
	return sp.kinds[idx].name
}

// pickIndex maps r in [0, 1) uniformly onto [0, n).
func pickIndex(r float64, n int) int {
	idx := int(math.Floor(r * float64(n)))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
