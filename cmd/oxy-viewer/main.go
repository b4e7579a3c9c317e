// oxy-viewer shows a glTF or GLB scene under a pan-orbit camera.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/viewer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
)

const controls = `Controls:
  Right mouse drag          - Orbit around the focus point
  Shift + right mouse drag  - Pan the focus point
  Scroll                    - Zoom in/out
  L                         - Toggle light animation
  5/6                       - Shrink/grow shadow width
  7/8                       - Shrink/grow shadow height
  9/0                       - Shrink/grow shadow depth
  U                         - Toggle shadows
  Space                     - Pause/resume animation
  Enter                     - Next animation
  Esc                       - Quit`

func main() {
	cmd := &cobra.Command{
		Use:   "oxy-viewer [path]",
		Short: "glTF scene viewer",
		Long: `oxy-viewer - glTF scene viewer

Shows a .gltf or .glb scene. Relative paths resolve against $` + config.EnvAssetFolder + `;
without a path the default scene is shown. Settings may be read from the TOML file
named by $` + config.EnvConfigFile + `.

` + controls,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return run(cfg, cfg.ResolveScenePath(args))
		},
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "oxy-viewer:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, scenePath string) error {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	fmt.Println(controls)

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	defer win.Close()

	presentMode := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.ParseMSAA(cfg.Render.MSAA)),
		renderer.WithClearColor(mgl32.Vec4(cfg.Render.ClearColor)),
	)
	defer r.Release()

	ldr := loader.NewLoader(loader.BackendTypeGLTF)
	defer ldr.Close()

	sampler := input.NewSampler()
	window.BindSampler(win, sampler)

	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cfg.Camera.FovDegrees)),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithWindowSize(float32(win.Width()), float32(win.Height())),
	)

	v := viewer.NewViewer(r, sampler, ldr, viewer.WithCamera(cam))
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithProfiling(cfg.Profiling),
	)
	v.Attach(eng)
	v.Load(scenePath)

	return eng.Run()
}
