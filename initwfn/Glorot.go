package initwfn

import G "gorgonia.org/gorgonia"

// GlorotUConfig describes Glorot (Xavier) initialization drawing
// weights from a uniform distribution scaled by a gain multiplier.
type GlorotUConfig struct {
	Gain float64
}

// NewGlorotU returns a Glorot uniform weight initializer with the
// argument gain.
func NewGlorotU(gain float64) (*InitWFn, error) {
	return newInitWFn(GlorotUConfig{Gain: gain})
}

// Type returns the type of initialization algorithm the configuration
// describes.
func (g GlorotUConfig) Type() Type {
	return GlorotU
}

// Create returns the Gorgonia InitWFn the configuration describes
func (g GlorotUConfig) Create() G.InitWFn {
	return G.GlorotU(g.Gain)
}

// GlorotNConfig describes Glorot (Xavier) initialization drawing
// weights from a normal distribution scaled by a gain multiplier.
type GlorotNConfig struct {
	Gain float64
}

// NewGlorotN returns a Glorot normal weight initializer with the
// argument gain.
func NewGlorotN(gain float64) (*InitWFn, error) {
	return newInitWFn(GlorotNConfig{Gain: gain})
}

// Type returns the type of initialization algorithm the configuration
// describes.
func (g GlorotNConfig) Type() Type {
	return GlorotN
}

// Create returns the Gorgonia InitWFn the configuration describes
func (g GlorotNConfig) Create() G.InitWFn {
	return G.GlorotN(g.Gain)
}
