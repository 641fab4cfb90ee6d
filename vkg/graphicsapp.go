package vkg

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// GraphicsApp is a utility object which implements many of the core requirements to
// get to a functioning Vulkan app. It will setup the appropriate devices and do many
// of the necissary preprations to begin drawing.
//
// Frames are drawn one at a time. AcquireImage waits for the previous frame to
// retire before handing out the next swapchain image, so resources used while
// recording are never in use by the GPU.
//
// See https://vulkan-tutorial.com/ for a good walkthrough of what this code does.
type GraphicsApp struct {
	Instance *Instance
	App      *App

	Window    *glfw.Window
	VKSurface vk.Surface

	Device         *Device
	PhysicalDevice *PhysicalDevice

	ResourceManager *ResourceManager

	GraphicsQueue *Queue
	PresentQueue  *Queue
	PipelineCache *PipelineCache

	GraphicsCommandPool    *CommandPool
	GraphicsCommandBuffers []*CommandBuffer

	DefaultNumSwapchainImages int
	// VSync selects FIFO presentation, it must be set before PrepareToDraw
	VSync bool

	Swapchain           *Swapchain
	SwapchainImages     []*Image
	SwapchainImageViews []*ImageView
	Framebuffers        []vk.Framebuffer

	VKRenderPass vk.RenderPass

	imageAvailable vk.Semaphore
	renderFinished vk.Semaphore
	inFlight       *Fence

	screenExtent vk.Extent2D
	log          *slog.Logger
}

// NewGraphicsApp creates a new graphics app with the given name and version
func NewGraphicsApp(name string, version Version, log *slog.Logger) (*GraphicsApp, error) {
	if log == nil {
		log = slog.Default()
	}
	app := &App{Name: name, EngineName: name, Version: version}
	return &GraphicsApp{App: app, log: log}, nil
}

// PhysicalDevices returns a list of physical devices
func (p *GraphicsApp) PhysicalDevices() ([]*PhysicalDevice, error) {
	if p.Instance == nil {
		return nil, errors.New("platform hasn't been initialized yet")
	}
	return p.Instance.PhysicalDevices()
}

// EnableExtension enables a specific extension if the loader supports it
func (p *GraphicsApp) EnableExtension(extension string) bool {
	supported, err := SupportedExtensions()
	if err != nil {
		return false
	}
	for _, s := range supported {
		if extension == s {
			p.App.EnableExtension(extension)
			return true
		}
	}
	return false
}

// EnableDebugging enables the validation layer, it must be called before Init
func (p *GraphicsApp) EnableDebugging() error {
	if p.Instance != nil {
		return errors.New("debugging must be enabled prior to initialization")
	}
	return p.App.EnableDebugging()
}

// Debugging reports whether validation messages are forwarded to the log
func (p *GraphicsApp) Debugging() bool {
	return p.Instance != nil && p.Instance.hasDebugCallback
}

// SetWindow sets the GLFW window for the graphics app
func (p *GraphicsApp) SetWindow(window *glfw.Window) error {
	if p.Instance != nil {
		return errors.New("window must be set prior to initialization")
	}

	p.Window = window

	for _, ext := range window.GetRequiredInstanceExtensions() {
		if !p.EnableExtension(ext) {
			return errors.Errorf("extension '%s' required to enable glfw is not supported by vulkan", ext)
		}
	}

	width, height := window.GetFramebufferSize()
	p.screenExtent = vk.Extent2D{Width: uint32(width), Height: uint32(height)}
	return nil
}

// Init creates the instance, surface, logical device, queues and command pool
func (p *GraphicsApp) Init() error {
	if p.Window == nil {
		return errors.New("no window has been set")
	}

	var err error
	p.Instance, err = p.App.CreateInstance()
	if err != nil {
		return err
	}

	for _, e := range p.App.EnabledExtensions {
		if e == "VK_EXT_debug_report" {
			if err := p.Instance.SetDebugCallback(p.log); err != nil {
				return err
			}
		}
	}

	surface, err := p.Window.CreateWindowSurface(p.Instance.VKInstance, nil)
	if err != nil {
		return errors.Wrap(err, "create window surface")
	}
	p.VKSurface = vk.SurfaceFromPointer(surface)

	physicalDevices, err := p.Instance.PhysicalDevices()
	if err != nil {
		return errors.Wrap(err, "error getting devices")
	}

	var gqueues QueueFamilySlice
	for _, pd := range physicalDevices {
		gqueues = pd.QueueFamilies().FilterGraphicsAndPresent(p.VKSurface)
		if len(gqueues) > 0 {
			p.PhysicalDevice = pd
			break
		}
	}
	if p.PhysicalDevice == nil {
		return errors.Errorf("none of %d devices can draw to the window", len(physicalDevices))
	}

	p.Device, err = p.PhysicalDevice.CreateLogicalDeviceWithOptions(gqueues, &CreateDeviceOptions{
		EnabledExtensions: []string{"VK_KHR_swapchain"},
	})
	if err != nil {
		return errors.Wrap(err, "unable to create device")
	}

	if len(gqueues) == 1 {
		// Single graphics and present queue
		queue := p.Device.GetQueue(gqueues[0])
		p.GraphicsQueue = queue
		p.PresentQueue = queue
	} else {
		//Seperate graphics and present queue
		pq := gqueues.FilterPresent(p.VKSurface)
		gq := gqueues.FilterGraphics()
		if len(pq) == 0 || len(gq) == 0 {
			return errors.Errorf("no graphics or present queue on device %s", p.PhysicalDevice)
		}
		p.GraphicsQueue = p.Device.GetQueue(gq[0])
		p.PresentQueue = p.Device.GetQueue(pq[0])
	}

	p.DefaultNumSwapchainImages, err = p.Device.DefaultNumSwapchainImages(p.VKSurface)
	if err != nil {
		return err
	}

	p.GraphicsCommandPool, err = p.Device.CreateCommandPool(p.GraphicsQueue.QueueFamily)
	if err != nil {
		return err
	}

	p.ResourceManager = p.Device.CreateResourceManager(p.log)
	return nil
}

// PrepareToDraw creates the swapchain, render pass, framebuffers, command
// buffers and frame synchronization, it must be called after Init
func (p *GraphicsApp) PrepareToDraw() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"swapchain", p.createSwapchainAndImages},
		{"render pass", p.createRenderPass},
		{"pipeline cache", p.createPipelineCache},
		{"framebuffers", p.createFramebuffers},
		{"command buffers", p.createCommandBuffers},
		{"sync objects", p.createSyncObjects},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return errors.Wrapf(err, "prepare %s", s.name)
		}
	}

	p.log.Debug("prepared to draw",
		"images", len(p.SwapchainImages),
		"format", p.Swapchain.Format,
		"presentMode", p.Swapchain.PresentMode,
		"extent", fmt.Sprintf("%dx%d", p.Swapchain.Extent.Width, p.Swapchain.Extent.Height))
	return nil
}

// GetScreenExtent gets the extent of the swapchain images
func (p *GraphicsApp) GetScreenExtent() vk.Extent2D {
	if p.Swapchain != nil {
		return p.Swapchain.Extent
	}
	return p.screenExtent
}

// AcquireImage waits for the previous frame to finish and returns the index
// of the swapchain image to render the next one into
func (p *GraphicsApp) AcquireImage() (uint32, error) {
	if err := p.inFlight.Wait(-1); err != nil {
		return 0, err
	}

	var imageIndex uint32
	res := vk.AcquireNextImage(p.Device.VKDevice, p.Swapchain.VKSwapchain, vk.MaxUint64, p.imageAvailable, vk.NullFence, &imageIndex)
	if res == vk.Suboptimal {
		return imageIndex, nil
	}
	if err := checkResult(res, "acquire next image"); err != nil {
		return 0, err
	}
	return imageIndex, nil
}

// SubmitImage submits the command buffer recorded for imageIndex. It waits
// for the image to be available and signals the frame's completion.
func (p *GraphicsApp) SubmitImage(imageIndex uint32) error {
	if err := p.inFlight.Reset(); err != nil {
		return err
	}
	return p.GraphicsQueue.Submit(p.inFlight.VKFence,
		[]vk.Semaphore{p.imageAvailable},
		[]vk.Semaphore{p.renderFinished},
		p.GraphicsCommandBuffers[imageIndex])
}

// PresentImage presents imageIndex once its rendering has finished
func (p *GraphicsApp) PresentImage(imageIndex uint32) error {
	return p.PresentQueue.Present(p.Swapchain, imageIndex, p.renderFinished)
}

// BeginRenderPass starts the render pass on the framebuffer of imageIndex,
// clearing it to color
func (p *GraphicsApp) BeginRenderPass(cb *CommandBuffer, imageIndex uint32, color [4]float32) {
	clearValues := []vk.ClearValue{vk.NewClearValue(color[:])}
	vk.CmdBeginRenderPass(cb.VK(), &vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  p.VKRenderPass,
		Framebuffer: p.Framebuffers[imageIndex],
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: p.Swapchain.Extent,
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}, vk.SubpassContentsInline)
}

// Destroy tears down the graphics application
func (p *GraphicsApp) Destroy() {
	if p.Device != nil {
		p.Device.WaitIdle()

		p.destroySyncObjects()
		p.destroyCommandBuffers()
		p.destroyFramebuffers()
		if p.PipelineCache != nil {
			p.PipelineCache.Destroy()
			p.PipelineCache = nil
		}
		p.destroyRenderPass()
		p.destroySwapchainAndImages()

		if p.ResourceManager != nil {
			p.ResourceManager.Destroy()
		}
		if p.GraphicsCommandPool != nil {
			p.GraphicsCommandPool.Destroy()
		}
		p.Device.Destroy()
		p.Device = nil
	}

	if p.Instance != nil {
		if p.VKSurface != vk.NullSurface {
			vk.DestroySurface(p.Instance.VKInstance, p.VKSurface, nil)
			p.VKSurface = vk.NullSurface
		}
		p.Instance.Destroy()
		p.Instance = nil
	}
}

// VKRenderPassCreateInfo describes a single subpass writing the swapchain
// image, which is cleared on load and left ready for presentation
func (p *GraphicsApp) VKRenderPassCreateInfo() vk.RenderPassCreateInfo {
	attachmentDescriptions := []vk.AttachmentDescription{{
		Format:         p.Swapchain.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	colorAttachments := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpassDescriptions := []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    colorAttachments,
	}}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}

	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachmentDescriptions)),
		PAttachments:    attachmentDescriptions,
		SubpassCount:    1,
		PSubpasses:      subpassDescriptions,
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
}

func (p *GraphicsApp) createRenderPass() error {
	createInfo := p.VKRenderPassCreateInfo()
	var renderPass vk.RenderPass
	if err := checkResult(vk.CreateRenderPass(p.Device.VKDevice, &createInfo, nil, &renderPass), "create render pass"); err != nil {
		return err
	}
	p.VKRenderPass = renderPass
	return nil
}

func (p *GraphicsApp) destroyRenderPass() {
	if p.VKRenderPass != vk.NullRenderPass {
		vk.DestroyRenderPass(p.Device.VKDevice, p.VKRenderPass, nil)
		p.VKRenderPass = vk.NullRenderPass
	}
}

func (p *GraphicsApp) createPipelineCache() error {
	var err error
	p.PipelineCache, err = p.Device.CreatePipelineCache()
	return err
}

func (p *GraphicsApp) createSwapchainAndImages() error {
	swapchain, err := p.Device.CreateSwapchain(p.VKSurface, p.GraphicsQueue, p.PresentQueue, CreateSwapchainOptions{
		ActualSize:                p.screenExtent,
		DesiredNumSwapchainImages: p.DefaultNumSwapchainImages,
		VSync:                     p.VSync,
	})
	if err != nil {
		return err
	}
	p.Swapchain = swapchain

	images, err := swapchain.GetImages()
	if err != nil {
		return err
	}
	p.SwapchainImages = images

	p.SwapchainImageViews = make([]*ImageView, 0, len(images))
	for _, image := range images {
		view, err := image.CreateImageView()
		if err != nil {
			return err
		}
		p.SwapchainImageViews = append(p.SwapchainImageViews, view)
	}
	return nil
}

func (p *GraphicsApp) destroySwapchainAndImages() {
	for _, view := range p.SwapchainImageViews {
		view.Destroy()
	}
	p.SwapchainImageViews = nil
	// swapchain images are owned by the swapchain
	p.SwapchainImages = nil

	if p.Swapchain != nil {
		p.Swapchain.Destroy()
		p.Swapchain = nil
	}
}

func (p *GraphicsApp) createFramebuffers() error {
	p.Framebuffers = make([]vk.Framebuffer, 0, len(p.SwapchainImageViews))
	for _, view := range p.SwapchainImageViews {
		attachments := []vk.ImageView{view.VKImageView}
		fbCreateInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      p.VKRenderPass,
			Layers:          1,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           p.Swapchain.Extent.Width,
			Height:          p.Swapchain.Extent.Height,
		}
		var fb vk.Framebuffer
		if err := checkResult(vk.CreateFramebuffer(p.Device.VKDevice, &fbCreateInfo, nil, &fb), "create framebuffer"); err != nil {
			return err
		}
		p.Framebuffers = append(p.Framebuffers, fb)
	}
	return nil
}

func (p *GraphicsApp) destroyFramebuffers() {
	for _, fb := range p.Framebuffers {
		vk.DestroyFramebuffer(p.Device.VKDevice, fb, nil)
	}
	p.Framebuffers = nil
}

func (p *GraphicsApp) createCommandBuffers() error {
	var err error
	p.GraphicsCommandBuffers, err = p.GraphicsCommandPool.AllocateBuffers(vk.CommandBufferLevelPrimary, len(p.SwapchainImages))
	return err
}

func (p *GraphicsApp) destroyCommandBuffers() {
	if len(p.GraphicsCommandBuffers) > 0 {
		p.GraphicsCommandPool.FreeBuffers(p.GraphicsCommandBuffers)
		p.GraphicsCommandBuffers = nil
	}
}

func (p *GraphicsApp) createSyncObjects() error {
	var err error
	// signaled so the first frame does not wait
	if p.inFlight, err = p.Device.CreateFence(true); err != nil {
		return err
	}
	if p.imageAvailable, err = p.Device.VKCreateSemaphore(); err != nil {
		return err
	}
	p.renderFinished, err = p.Device.VKCreateSemaphore()
	return err
}

// destroySyncObjects relies on destroying a null semaphore being a no-op
func (p *GraphicsApp) destroySyncObjects() {
	if p.inFlight == nil {
		return
	}
	p.inFlight.Destroy()
	p.inFlight = nil
	p.Device.VKDestroySemaphore(p.imageAvailable)
	p.Device.VKDestroySemaphore(p.renderFinished)
}
