package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "aviator", Coalesce("", "aviator", "sea"))
	assert.Equal(t, 3, Coalesce(0, 0, 3))
	assert.Equal(t, "", Coalesce[string]())
	assert.Zero(t, Coalesce(0, 0))
}
