package lookup3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/lookup3/pkg/alg/lookup3"
)

func TestReferenceVectors_AllStrategiesPass(t *testing.T) {
	t.Parallel()

	strategies := append([]lookup3.Strategy{lookup3.StrategyAuto}, lookup3.Strategies()...)

	for _, v := range lookup3.ReferenceVectors() {
		for _, s := range strategies {
			c, b, ok := v.Check(s)
			assert.True(t, ok, "%s under %s: got (%#08x, %#08x)", v.Name, s, c, b)
		}
	}
}

func TestReferenceVectors_FreshSlice(t *testing.T) {
	t.Parallel()

	first := lookup3.ReferenceVectors()
	first[0].Want = 0

	assert.Equal(t, uint32(0xdeadbeef), lookup3.ReferenceVectors()[0].Want)
}

func TestVectorCheck_DetectsMismatch(t *testing.T) {
	t.Parallel()

	v := lookup3.Vector{Name: "wrong", Input: []byte("abc"), Want: 1}

	_, _, ok := v.Check(lookup3.StrategyByte)
	assert.False(t, ok)

	dual := lookup3.ReferenceVectors()[4]
	dual.WantB++

	c, _, ok := dual.Check(lookup3.StrategyWord)
	assert.False(t, ok)
	assert.Equal(t, dual.Want, c)
}
