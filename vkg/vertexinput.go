package vkg

import (
	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

func vertexFormat(f gfx.AttributeFormat) (vk.Format, error) {
	switch f {
	case gfx.Float32x2:
		return vk.FormatR32g32Sfloat, nil
	case gfx.Float32x3:
		return vk.FormatR32g32b32Sfloat, nil
	case gfx.Float32x4:
		return vk.FormatR32g32b32a32Sfloat, nil
	}
	return vk.FormatUndefined, errors.Errorf("unsupported attribute format %d", f)
}

// vertexInput describes an interleaved vertex buffer at binding 0. SPIR-V
// has no attribute names, attribute i is read from location i.
func vertexInput(vf gfx.VertexFormat) (vk.VertexInputBindingDescription, []vk.VertexInputAttributeDescription, error) {
	binding := vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    uint32(vf.Stride),
		InputRate: vk.VertexInputRateVertex,
	}

	attrs := make([]vk.VertexInputAttributeDescription, len(vf.Attributes))
	for i, a := range vf.Attributes {
		format, err := vertexFormat(a.Format)
		if err != nil {
			return binding, nil, errors.Wrapf(err, "attribute %q", a.Name)
		}
		attrs[i] = vk.VertexInputAttributeDescription{
			Location: uint32(i),
			Binding:  0,
			Format:   format,
			Offset:   uint32(a.Offset),
		}
	}
	return binding, attrs, nil
}
