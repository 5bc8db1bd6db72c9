package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/deltagreen-api/internal/pkg/idgen"
)

func TestPrefixedGenerator(t *testing.T) {
	gen := idgen.NewPrefixed(idgen.PrefixRoll)

	first := gen.Generate()
	second := gen.Generate()

	assert.True(t, strings.HasPrefix(first, "roll_"))
	assert.Len(t, first, len("roll_")+32)
	assert.NotEqual(t, first, second)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("msg")
	assert.Equal(t, "msg_1", gen.Generate())
	assert.Equal(t, "msg_2", gen.Generate())

	gen.Reset()
	assert.Equal(t, "msg_1", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}
