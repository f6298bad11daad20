package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelerIsMonotonic(t *testing.T) {
	var l Labeler
	assert.Equal(t, ".L0", l.Next())
	assert.Equal(t, ".L1", l.Next())
	assert.Equal(t, ".L2", l.Next())
}
