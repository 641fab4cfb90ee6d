/*
Package vkg renders gfx commands with Vulkan. Importing it registers the
"vulkan" backend, which draws into the swapchain of a GLFW window created
without a GL context.

Vulkan leaves most of what OpenGL managed to the application: where data
lives, how it reaches the GPU and when it is safe to reuse. This package keeps
the amount of that bookkeeping small by drawing one frame at a time and
sub-allocating every resource from a handful of memory pools.

Native Vulkan terms
	Instance	the vulkan runtime instance
	PhysicalDevice	the physical hardware device
	Device		the logical device, the target of most of the vulkan apis
	Queue		a queue which command buffers are submitted to
	DeviceMemory	an allocation of host or device memory, buffers and images are bound into it
	DescriptorSet	the uniform buffer and texture a draw reads
	Swapchain	the images presented to the window

Frame sequence

	1. AcquireImage waits for the previous frame's fence and acquires a swapchain image
	2. the commands are recorded into that image's command buffer, the render pass
	   clears to the color of a leading clear command
	3. each draw writes its model and projection matrices into its own slot of the
	   image's uniform buffer and binds it with a dynamic offset
	4. SubmitImage submits the buffer, PresentImage queues the image once rendering finished

Pools

	staging		host visible, texture pixels are copied through it
	geometry	host visible, vertex and index buffers
	uniforms	host visible, one uniform buffer per swapchain image
	textures	device local, sampled RGBA8 images

Native vulkan structures are exposed in the objects prefixed with 'VK' so
callers are not limited to what the wrappers provide.
*/
package vkg
