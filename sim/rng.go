package sim

import (
	"hash/fnv"
	"math/rand"
)

// PartitionedRNG hands out an isolated *rand.Rand per subsystem name,
// deterministically derived from a single master seed, so a given seed
// always reproduces the same run regardless of which components happen to
// draw random numbers first (spec §9 "Randomness"). Grounded on
// cluster.PartitionedRNG (sim/cluster/rng.go) in the teacher repo.
type PartitionedRNG struct {
	masterSeed int64
	streams    map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG seeded from masterSeed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{masterSeed: masterSeed, streams: make(map[string]*rand.Rand)}
}

// ForComponent returns the RNG stream dedicated to the component uid.
// Repeated calls with the same uid return the same *rand.Rand instance.
func (p *PartitionedRNG) ForComponent(uid string) *rand.Rand {
	return p.forSubsystem("component_" + uid)
}

func (p *PartitionedRNG) forSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	r := rand.New(rand.NewSource(p.deriveSeed(name)))
	p.streams[name] = r
	return r
}

// deriveSeed combines the master seed with a subsystem name so stream
// derivation is order-independent: masterSeed XOR fnv1a64(name).
func (p *PartitionedRNG) deriveSeed(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return p.masterSeed ^ int64(h.Sum64())
}
