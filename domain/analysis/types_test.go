package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySkewnessBoundary(t *testing.T) {
	// The 0.5 boundary is inclusive on both sides.
	assert.Equal(t, SkewRight, ClassifySkewness(0.5))
	assert.Equal(t, SkewSymmetric, ClassifySkewness(0.4999))
	assert.Equal(t, SkewLeft, ClassifySkewness(-0.5))
	assert.Equal(t, SkewSymmetric, ClassifySkewness(-0.4999))
	assert.Equal(t, SkewSymmetric, ClassifySkewness(0))
	assert.Equal(t, SkewRight, ClassifySkewness(3.2))
	assert.Equal(t, SkewLeft, ClassifySkewness(-1.1))
}
