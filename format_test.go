package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedArea(a, b, c [2]float32) float32 {
	return ((b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])) / 2
}

func TestQuadIndicesCoverQuad(t *testing.T) {
	require.Len(t, TexIndices, 6)

	used := map[uint16]bool{}
	var total float32
	var winding []bool
	for i := 0; i < len(TexIndices); i += 3 {
		a := TexQuad[TexIndices[i]].Position
		b := TexQuad[TexIndices[i+1]].Position
		c := TexQuad[TexIndices[i+2]].Position
		area := signedArea(a, b, c)
		assert.NotZero(t, area, "degenerate triangle %d", i/3)
		total += area
		winding = append(winding, area > 0)
		for _, idx := range TexIndices[i : i+3] {
			used[idx] = true
		}
	}

	// Both triangles share a winding, so the summed signed area equals the
	// quad's area only when they do not overlap and leave no gap.
	assert.Equal(t, winding[0], winding[1])
	assert.InDelta(t, 1.0, total, 1e-6)
	assert.Len(t, used, 4)
}

func TestQuadTexCoords(t *testing.T) {
	for _, v := range TexQuad {
		assert.Equal(t, v.Position[0]+0.5, v.TexCoord[0])
		assert.Equal(t, v.Position[1]+0.5, v.TexCoord[1])
	}
	assert.Equal(t, [2]float32{1, 1}, TexQuad[0].TexCoord)
	assert.Equal(t, [2]float32{0, 0}, TexQuad[2].TexCoord)
}

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, 16, VertexStride)
	assert.Len(t, VertexBytes(TexQuad[:]), 64)
	assert.Len(t, IndexBytes(TexIndices[:]), 12)
	assert.Nil(t, VertexBytes(nil))

	f := SpriteVertexFormat()
	require.Len(t, f.Attributes, 2)
	assert.Equal(t, Attribute{Name: "position", Offset: 0, Format: Float32x2}, f.Attributes[0])
	assert.Equal(t, Attribute{Name: "texCoord", Offset: 8, Format: Float32x2}, f.Attributes[1])
}

func TestSliceCount(t *testing.T) {
	assert.Equal(t, uint32(6), Slice{Start: 0, End: 6}.Count())
	assert.Equal(t, uint32(0), Slice{Start: 4, End: 2}.Count())
}
