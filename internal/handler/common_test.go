package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowLabel(t *testing.T) {
	assert.Equal(t, "A", rowLabel(0))
	assert.Equal(t, "B", rowLabel(1))
	assert.Equal(t, "Z", rowLabel(25))
	assert.Equal(t, "AA", rowLabel(26))
	assert.Equal(t, "AB", rowLabel(27))
	assert.Equal(t, "", rowLabel(-1))
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "front-row,outlet", joinTags([]string{" Front-Row ", "outlet", ""}))
	assert.Equal(t, "", joinTags(nil))
	assert.Equal(t, "", joinTags([]string{"  ", ""}))
}
