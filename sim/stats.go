package sim

import (
	"math"
	"math/rand"
)

// burrRVS draws a sample from a Burr Type XII distribution with shape
// parameters c, d, location loc and scale, via inverse-CDF sampling:
//
//	F(x) = 1 - (1 + ((x-loc)/scale)^c)^(-d),  x >= loc
//	F^-1(u) = loc + scale * ((1-u)^(-1/d) - 1)^(1/c)
//
// No library in the retrieval pack (including gonum's stat/distuv, which
// covers Normal/LogNormal/Uniform/Beta/Gamma but not Burr XII) implements
// this distribution, so it is hand-rolled against math/rand — the one
// deliberate stdlib-only exception in this package; see DESIGN.md.
func burrRVS(rng *rand.Rand, c, d, loc, scale float64) float64 {
	u := rng.Float64()
	inner := math.Pow(1-u, -1/d) - 1
	return loc + scale*math.Pow(inner, 1/c)
}
