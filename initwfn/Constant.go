package initwfn

import G "gorgonia.org/gorgonia"

// ZeroesConfig describes an initializer that sets all weights to 0
type ZeroesConfig struct{}

// NewZeroes returns a new all-zero weight initializer
func NewZeroes() (*InitWFn, error) {
	return newInitWFn(ZeroesConfig{})
}

func (z ZeroesConfig) Type() Type {
	return Zeroes
}

func (z ZeroesConfig) Create() G.InitWFn {
	return G.Zeroes()
}

// OnesConfig describes an initializer that sets all weights to 1
type OnesConfig struct{}

// NewOnes returns a new all-one weight initializer
func NewOnes() (*InitWFn, error) {
	return newInitWFn(OnesConfig{})
}

func (o OnesConfig) Type() Type {
	return Ones
}

func (o OnesConfig) Create() G.InitWFn {
	return G.Ones()
}
