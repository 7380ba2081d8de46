package abstraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClusters(t *testing.T) {
	t.Parallel()

	c, err := ParseClusters(strings.NewReader("0 1 2\n2\t1\n\n0\n"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 0}, c.Assignment)
	assert.Equal(t, 3, c.K())
	assert.NoError(t, c.Validate(6))
	assert.ErrorContains(t, c.Validate(7), "covers 6 hole classes")
}

func TestParseClustersRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseClusters(strings.NewReader("0 1 x"))
	assert.ErrorContains(t, err, "cluster id 2")

	_, err = ParseClusters(strings.NewReader("-1"))
	assert.Error(t, err)
}

func TestClustersValidateGaps(t *testing.T) {
	t.Parallel()

	c := &Clusters{Assignment: []uint32{0, 2, 0}}
	assert.Equal(t, 3, c.K())
	assert.ErrorContains(t, c.Validate(3), "cluster 1 has no hole classes")
}

func TestClustersValidateRejectsLargeIDs(t *testing.T) {
	t.Parallel()

	c, err := ParseClusters(strings.NewReader("0 4294967295 1"))
	require.NoError(t, err)
	assert.ErrorContains(t, c.Validate(3), "hole class 1: cluster id 4294967295")

	c = &Clusters{Assignment: []uint32{0, 3, 1}}
	assert.ErrorContains(t, c.Validate(3), "cluster id 3")
}
