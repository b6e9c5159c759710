package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider("sea")

	assert.Equal(t, "sea", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.VertexCount())
	assert.Zero(t, p.IndexCount())
}

func TestSetMeshCounts(t *testing.T) {
	p := NewBindGroupProvider("cube")
	p.SetVertexBuffer(nil, 24)
	p.SetIndexBuffer(nil, 36)

	assert.Equal(t, 24, p.VertexCount())
	assert.Equal(t, 36, p.IndexCount())

	p.Release()
	assert.Zero(t, p.VertexCount())
	assert.Zero(t, p.IndexCount())
}
