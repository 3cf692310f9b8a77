// Command stage opens a window and renders the orbitable 3D stage until the window is closed.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-stage/engine"
	"github.com/Carmen-Shannon/oxy-stage/internal/config"
	"github.com/charmbracelet/log"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
	defaultTitle  = "oxy-stage"
)

func main() {
	width := flag.Int("width", config.GetEnvInt("STAGE_WIDTH", defaultWidth), "initial window width in screen coordinates")
	height := flag.Int("height", config.GetEnvInt("STAGE_HEIGHT", defaultHeight), "initial window height in screen coordinates")
	title := flag.String("title", config.GetEnv("STAGE_TITLE", defaultTitle), "window title")
	presetName := flag.String("preset", config.GetEnv("STAGE_PRESET", string(engine.PresetFloor)), "stage content: floor or cube")
	vsync := flag.Bool("vsync", config.GetEnvBool("STAGE_VSYNC", true), "pace frames to the display refresh")
	profile := flag.Bool("profile", config.GetEnvBool("STAGE_PROFILE", false), "log FPS and memory once per second")
	software := flag.Bool("software", config.GetEnvBool("STAGE_SOFTWARE", false), "force a CPU fallback GPU adapter")
	levelName := flag.String("log-level", config.GetEnv("STAGE_LOG_LEVEL", "info"), "debug, info, warn or error")
	cubeMap := flag.String("cubemap", config.GetEnv("STAGE_CUBEMAP", ""), "skybox face prefix, e.g. textures/sky_ for textures/sky_FRONT.jpg")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "stage",
	})
	level, err := log.ParseLevel(*levelName)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", *levelName)
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	preset, err := engine.ParsePreset(*presetName)
	if err != nil {
		logger.Error("invalid preset", "err", err)
		os.Exit(1)
	}

	s, err := engine.NewSession(
		engine.WithTitle(*title),
		engine.WithSize(*width, *height),
		engine.WithPreset(preset),
		engine.WithVSync(*vsync),
		engine.WithProfiling(*profile),
		engine.WithForceSoftwareRenderer(*software),
		engine.WithCubeMap(*cubeMap),
		engine.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to start", "err", err)
		os.Exit(1)
	}

	runErr := s.Run()
	if err := s.Close(); err != nil {
		logger.Error("shutdown", "err", err)
	}
	if runErr != nil {
		logger.Error("run", "err", runErr)
		os.Exit(1)
	}
}
