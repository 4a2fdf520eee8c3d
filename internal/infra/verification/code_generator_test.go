package verification

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_Generate(t *testing.T) {
	gen := NewCodeGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)

		assert.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)

		seen[code] = true
	}

	// 100 draws from 900k values collapsing to a handful would mean a
	// broken source.
	assert.Greater(t, len(seen), 90)
}
