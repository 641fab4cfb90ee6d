package vkg

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Version is used to specify versions of components
type Version struct {
	Major int
	Minor int
	Patch int
}

// VKVersion returns a Vulkan compatible version representation
func (v Version) VKVersion() uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// App describes the application to Vulkan and collects the layers and
// extensions the instance is created with.
type App struct {
	Name       string
	EngineName string
	Version    Version
	// APIVersion is the minimum Vulkan API version, 1.0.0 when unset
	APIVersion Version

	EnabledLayers     []string
	EnabledExtensions []string
}

// SupportedLayers returns the instance layers the loader knows about. Vulkan
// must have been initialized with vk.Init first.
func SupportedLayers() ([]string, error) {
	var count uint32
	if err := checkResult(vk.EnumerateInstanceLayerProperties(&count, nil), "enumerate instance layers"); err != nil {
		return nil, err
	}
	props := make([]vk.LayerProperties, count)
	if err := checkResult(vk.EnumerateInstanceLayerProperties(&count, props), "enumerate instance layers"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(props))
	for _, p := range props {
		p.Deref()
		names = append(names, vk.ToString(p.LayerName[:]))
	}
	return names, nil
}

// SupportedExtensions returns the instance extensions the loader knows about
func SupportedExtensions() ([]string, error) {
	var count uint32
	if err := checkResult(vk.EnumerateInstanceExtensionProperties("", &count, nil), "enumerate instance extensions"); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := checkResult(vk.EnumerateInstanceExtensionProperties("", &count, props), "enumerate instance extensions"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(props))
	for _, p := range props {
		p.Deref()
		names = append(names, vk.ToString(p.ExtensionName[:]))
	}
	return names, nil
}

/*
EnableDebugging turns on the Khronos validation layer and the debug report
extension used to forward validation messages to the log.

	VK_LAYER_KHRONOS_validation - the comprehensive validation layer, it replaces
	the older VK_LAYER_LUNARG_* and VK_LAYER_GOOGLE_* layers

see: https://vulkan.lunarg.com/doc/sdk/latest/windows/khronos_validation_layer.html
*/
func (a *App) EnableDebugging() error {
	if _, err := a.EnableLayer("VK_LAYER_KHRONOS_validation"); err != nil {
		return err
	}
	a.EnableExtension("VK_EXT_debug_report")
	return nil
}

// EnableLayer enables layer if the loader supports it
func (a *App) EnableLayer(layer string) (*App, error) {
	layers, err := SupportedLayers()
	if err != nil {
		return a, fmt.Errorf("error getting supported layers: %w", err)
	}
	for _, l := range layers {
		if l == layer {
			a.EnabledLayers = append(a.EnabledLayers, layer)
			return a, nil
		}
	}
	return a, fmt.Errorf("validation layer '%s' not found", layer)
}

// EnableExtension enables an instance extension
func (a *App) EnableExtension(extension string) *App {
	for _, e := range a.EnabledExtensions {
		if e == extension {
			return a
		}
	}
	a.EnabledExtensions = append(a.EnabledExtensions, extension)
	return a
}

// VKApplicationInfo creates a structure representing this application in a Vulkan friendly format
func (a *App) VKApplicationInfo() vk.ApplicationInfo {
	api := a.APIVersion
	if api.Major < 1 {
		api = Version{Major: 1}
	}
	return vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         api.VKVersion(),
		ApplicationVersion: a.Version.VKVersion(),
		PApplicationName:   safeString(a.Name),
		PEngineName:        safeString(a.EngineName),
	}
}

// CreateInstance creates the Vulkan instance
func (a *App) CreateInstance() (*Instance, error) {
	appInfo := a.VKApplicationInfo()

	extensions := safeStrings(a.EnabledExtensions)
	layers := safeStrings(a.EnabledLayers)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	instance := &Instance{}
	if err := checkResult(vk.CreateInstance(&createInfo, nil, &instance.VKInstance), "create instance"); err != nil {
		return nil, err
	}
	vk.InitInstance(instance.VKInstance)

	return instance, nil
}

// Instance is an instance of the Vulkan subsystem
type Instance struct {
	VKInstance vk.Instance

	debugCallback    vk.DebugReportCallback
	hasDebugCallback bool
}

// PhysicalDevices returns the physical devices known to Vulkan
func (i *Instance) PhysicalDevices() ([]*PhysicalDevice, error) {
	var count uint32
	if err := checkResult(vk.EnumeratePhysicalDevices(i.VKInstance, &count, nil), "enumerate physical devices"); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	devices := make([]vk.PhysicalDevice, count)
	if err := checkResult(vk.EnumeratePhysicalDevices(i.VKInstance, &count, devices), "enumerate physical devices"); err != nil {
		return nil, err
	}

	ret := make([]*PhysicalDevice, count)
	for j, device := range devices {
		pd := &PhysicalDevice{VKPhysicalDevice: device}
		vk.GetPhysicalDeviceProperties(device, &pd.VKPhysicalDeviceProperties)
		pd.VKPhysicalDeviceProperties.Deref()
		pd.VKPhysicalDeviceProperties.Limits.Deref()
		pd.DeviceName = vk.ToString(pd.VKPhysicalDeviceProperties.DeviceName[:])
		ret[j] = pd
	}
	return ret, nil
}

// SetDebugCallback installs a debug report callback which forwards errors
// and warnings raised by the validation layers to log.
func (i *Instance) SetDebugCallback(log *slog.Logger) error {
	if i.hasDebugCallback {
		return errors.New("debug callback already installed")
	}
	var cb vk.DebugReportCallback
	res := vk.CreateDebugReportCallback(i.VKInstance, &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit),
		PfnCallback: debugReporter(log),
	}, nil, &cb)
	if err := checkResult(res, "create debug report callback"); err != nil {
		return err
	}
	i.debugCallback = cb
	i.hasDebugCallback = true
	return nil
}

// debugReporter returns a debug report callback logging onto log, the level
// follows the report flags
func debugReporter(log *slog.Logger) vk.DebugReportCallbackFunc {
	return func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
		object uint64, location uint, messageCode int32, pLayerPrefix string,
		pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

		log.Log(context.Background(), debugReportLevel(flags), pMessage,
			"layer", pLayerPrefix, "code", messageCode, "object", object)
		return vk.Bool32(vk.False)
	}
}

func debugReportLevel(flags vk.DebugReportFlags) slog.Level {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return slog.LevelError
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit|vk.DebugReportPerformanceWarningBit) != 0:
		return slog.LevelWarn
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Destroy removes the debug callback, if any, and destroys the instance
func (i *Instance) Destroy() {
	if i.hasDebugCallback {
		vk.DestroyDebugReportCallback(i.VKInstance, i.debugCallback, nil)
		i.hasDebugCallback = false
	}
	vk.DestroyInstance(i.VKInstance, nil)
}
