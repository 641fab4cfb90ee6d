/*
Package gfx draws a single textured sprite through a small, backend neutral rendering
interface modelled on command encoders and pipeline state objects.

A backend (see the opengl and vkg packages) registers itself by name and, when
initialized, hands back a Context made of three parts:

	Window	the native window, it delivers input events and presents finished frames
	Device	executes recorded commands and destroys released resources
	Factory	creates GPU resources (buffers, textures, samplers, pipelines) and encoders

Resources are referred to through typed handles (Buffer, ShaderResourceView, Sampler,
RenderTargetView, PipelineState) which index into a backend owned Arena. Handles are
reference counted, releasing the last reference moves the resource onto the arena's garbage
list which the device drains on Cleanup.

Drawing a frame looks like:

	enc := factory.CreateCommandBuffer()
	enc.Clear(target, color)
	enc.Draw(slice, pso, data)
	enc.Flush(device)
	window.SwapBuffers()
	device.Cleanup()

Loop implements exactly that sequence, together with the exit handling for window close
and the Escape key.
*/
package gfx
