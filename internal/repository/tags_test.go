package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagsToList(t *testing.T) {
	assert.Equal(t, []string{"front-row", "outlet"}, TagsToList("front-row,outlet"))
	assert.Equal(t, []string{"front-row"}, TagsToList(" front-row , "))
	assert.Empty(t, TagsToList(""))
	assert.Empty(t, TagsToList(" , ,"))
}
