// Package platform hosts the visualizer in a desktop window: GLFW for the
// window and input, WebGPU to present the composed frame.
package platform

import (
	_ "embed"
	"fmt"
	"image"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

//go:embed blit.wgsl
var blitWGSL string

func init() {
	// GLFW must stay on the main thread.
	runtime.LockOSThread()
}

// Window is a GLFW window with a WebGPU surface that shows one RGBA image
// stretched over the framebuffer.
type Window struct {
	win *glfw.Window

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration

	pipeline *wgpu.RenderPipeline
	sampler  *wgpu.Sampler

	texture   *wgpu.Texture
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup
	texSize   image.Point
}

// Open creates the window and brings up the GPU. Errors name the step that
// failed.
func Open(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w := &Window{win: win}
	if err := w.initGPU(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *Window) initGPU() error {
	w.instance = wgpu.CreateInstance(nil)
	w.surface = w.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w.win))

	adapter, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: w.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("requesting adapter: %w", err)
	}
	w.adapter = adapter

	w.device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("requesting device: %w", err)
	}
	w.queue = w.device.GetQueue()

	fbw, fbh := w.win.GetFramebufferSize()
	caps := w.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return fmt.Errorf("surface reports no formats")
	}
	w.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      pickFormat(caps.Formats),
		Width:       uint32(max(fbw, 1)),
		Height:      uint32(max(fbh, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	w.surface.Configure(adapter, w.device, w.config)

	module, err := w.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Blit VS/FS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: blitWGSL},
	})
	if err != nil {
		return fmt.Errorf("compiling blit shader: %w", err)
	}
	defer module.Release()

	w.pipeline, err = w.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Blit Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    w.config.Format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("creating blit pipeline: %w", err)
	}

	w.sampler, err = w.device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeNearest,
		MagFilter:     wgpu.FilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("creating sampler: %w", err)
	}
	return nil
}

// pickFormat prefers a non-sRGB 8-bit format; the frame is already
// gamma-encoded.
func pickFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			return f
		}
	}
	return formats[0]
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// resizeSurface reconfigures the swapchain. Zero sizes (minimized) are
// skipped.
func (w *Window) resizeSurface(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.config.Width = uint32(width)
	w.config.Height = uint32(height)
	w.surface.Configure(w.adapter, w.device, w.config)
}

// ensureTexture makes the frame texture match size.
func (w *Window) ensureTexture(size image.Point) error {
	if w.texture != nil && w.texSize == size {
		return nil
	}
	w.releaseTexture()

	var err error
	w.texture, err = w.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Frame",
		Size:          wgpu.Extent3D{Width: uint32(size.X), Height: uint32(size.Y), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("creating frame texture: %w", err)
	}
	w.view, err = w.texture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("creating frame view: %w", err)
	}
	w.bindGroup, err = w.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: w.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: w.view},
			{Binding: 1, Sampler: w.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("creating frame bind group: %w", err)
	}
	w.texSize = size
	return nil
}

func (w *Window) releaseTexture() {
	if w.bindGroup != nil {
		w.bindGroup.Release()
		w.bindGroup = nil
	}
	if w.view != nil {
		w.view.Release()
		w.view = nil
	}
	if w.texture != nil {
		w.texture.Release()
		w.texture = nil
	}
}

// Present uploads img and draws it over the whole surface.
func (w *Window) Present(img *image.RGBA) error {
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	if err := w.ensureTexture(size); err != nil {
		return err
	}
	w.queue.WriteTexture(w.texture.AsImageCopy(), img.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(img.Stride),
		RowsPerImage: uint32(size.Y),
	}, &wgpu.Extent3D{Width: uint32(size.X), Height: uint32(size.Y), DepthOrArrayLayers: 1})

	next, err := w.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquiring surface texture: %w", err)
	}
	defer next.Release()

	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("creating surface view: %w", err)
	}
	defer view.Release()

	encoder, err := w.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("creating command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(w.pipeline)
	pass.SetBindGroup(0, w.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	if err := pass.End(); err != nil {
		return fmt.Errorf("ending blit pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finishing encoder: %w", err)
	}
	defer cmd.Release()
	w.queue.Submit(cmd)
	w.surface.Present()
	return nil
}

func (w *Window) Close() {
	w.releaseTexture()
	if w.sampler != nil {
		w.sampler.Release()
	}
	if w.pipeline != nil {
		w.pipeline.Release()
	}
	if w.queue != nil {
		w.queue.Release()
	}
	if w.device != nil {
		w.device.Release()
	}
	if w.adapter != nil {
		w.adapter.Release()
	}
	if w.surface != nil {
		w.surface.Release()
	}
	if w.instance != nil {
		w.instance.Release()
	}
	if w.win != nil {
		w.win.Destroy()
	}
	glfw.Terminate()
}
