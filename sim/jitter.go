package sim

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Jitter is a stochastic perturbation strategy added to otherwise
// deterministic component durations (spec §2, §8).
type Jitter interface {
	Sample() int
}

// NoJitter always returns zero, matching spec §8's testable property for
// the no-op strategy.
type NoJitter struct{}

func (NoJitter) Sample() int { return 0 }

// UniformJitter draws an integer uniformly from [min, max]. Samples are
// generated from a continuous distuv.Uniform draw and floored, which keeps
// every integer in range equally likely to be the containing bucket.
type UniformJitter struct {
	min, max int
	dist     distuv.Uniform
}

// NewUniformJitter creates a UniformJitter over [min, max]. min must be <=
// max.
func NewUniformJitter(rng *rand.Rand, min, max int) *UniformJitter {
	if min > max {
		panicInvariant("uniform jitter min (%d) must be <= max (%d)", min, max)
	}
	return &UniformJitter{
		min: min, max: max,
		dist: distuv.Uniform{Min: float64(min), Max: float64(max) + 1, Src: rng},
	}
}

func (j *UniformJitter) Sample() int {
	v := int(math.Floor(j.dist.Rand()))
	if v > j.max {
		v = j.max
	}
	return v
}

// GaussianJitter draws from a Normal(mean, stdDev) distribution and rounds
// to the nearest integer.
type GaussianJitter struct {
	dist distuv.Normal
}

// NewGaussianJitter creates a GaussianJitter with the given mean and
// standard deviation.
func NewGaussianJitter(rng *rand.Rand, mean, stdDev float64) *GaussianJitter {
	return &GaussianJitter{dist: distuv.Normal{Mu: mean, Sigma: stdDev, Src: rng}}
}

func (j *GaussianJitter) Sample() int {
	return roundToInt(j.dist.Rand())
}

// LogNormalJitter draws from a LogNormal(mu, sigma) distribution (in
// log-space parameters) and rounds to the nearest integer.
type LogNormalJitter struct {
	dist distuv.LogNormal
}

// NewLogNormalJitter creates a LogNormalJitter with the given log-space mu
// and sigma.
func NewLogNormalJitter(rng *rand.Rand, mu, sigma float64) *LogNormalJitter {
	return &LogNormalJitter{dist: distuv.LogNormal{Mu: mu, Sigma: sigma, Src: rng}}
}

func (j *LogNormalJitter) Sample() int {
	return roundToInt(j.dist.Rand())
}

// DisruptionJitter models an infrequent large perturbation: with
// probability p it returns magnitude, otherwise 0. p must be in [0, 1].
type DisruptionJitter struct {
	rng       *rand.Rand
	p         float64
	magnitude int
}

// NewDisruptionJitter creates a DisruptionJitter. p is the probability of a
// disruption firing on any given sample and must be in [0, 1].
func NewDisruptionJitter(rng *rand.Rand, p float64, magnitude int) (*DisruptionJitter, error) {
	if p < 0 || p > 1 {
		return nil, wrapNotAProbability("disruption probability must be in [0, 1], got %v", p)
	}
	return &DisruptionJitter{rng: rng, p: p, magnitude: magnitude}, nil
}

func (j *DisruptionJitter) Sample() int {
	if j.rng.Float64() < j.p {
		return j.magnitude
	}
	return 0
}

func roundToInt(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}
