package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/graphic"
	"github.com/katvel/shapewave/input"
	"github.com/katvel/shapewave/pipeline"
	"github.com/katvel/shapewave/shape"
	"github.com/katvel/shapewave/theme"
	"github.com/katvel/shapewave/wave"

	_ "github.com/katvel/shapewave/input/all"
)

// AppName is the app name
const AppName = "shapewave"

// AppDesc is the app description
const AppDesc = "audio-reactive shape renderer for the terminal"

// AppSite is the app website
const AppSite = "https://github.com/katvel/shapewave"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg := config.NewZeroConfig()

	if doFlags(&cfg) {
		return
	}

	chk(cfg.Sanitize(), "invalid config")

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	chk(run(ctx, cfg), "failed to run "+AppName)
}

func doFlags(cfg *config.Config) bool {

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:        "list-backends",
		ShortName:   "lb",
		Description: "list all supported backends",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	listDevicesCmd := flaggy.Subcommand{
		Name:        "list-devices",
		ShortName:   "ld",
		Description: "list all devices for a backend",
	}

	parser.AttachSubcommand(&listDevicesCmd, 1)

	listShapesCmd := flaggy.Subcommand{
		Name:        "list-shapes",
		ShortName:   "ls",
		Description: "list all outline shapes",
	}

	parser.AttachSubcommand(&listShapesCmd, 1)

	listStylesCmd := flaggy.Subcommand{
		Name:        "list-styles",
		ShortName:   "lt",
		Description: "list all drawing styles",
	}

	parser.AttachSubcommand(&listStylesCmd, 1)

	parser.String(&cfg.Backend, "b", "backend", "backend name")
	parser.String(&cfg.Device, "d", "device", "device name")
	parser.Float64(&cfg.SampleRate, "r", "rate", "sample rate")
	parser.Int(&cfg.SampleSize, "n", "samples", "samples per capture block")
	parser.Int(&cfg.FrameRate, "f", "fps", "frame rate")

	parser.String(&cfg.Shape, "s", "shape", "outline shape (see list-shapes)")
	parser.String(&cfg.Style, "t", "style", "drawing style (see list-styles)")
	parser.String(&cfg.Variant, "v", "variant", "style variant where the style has them")

	parser.Float64(&cfg.Gain, "g", "gain", "linear amplitude gain")
	parser.Bool(&cfg.UseDB, "", "db", "map amplitudes through a decibel window")
	parser.Float64(&cfg.ReactDB, "", "react", "decibel level mapped to zero")
	parser.Float64(&cfg.PeakDB, "", "peak", "decibel level mapped to full scale")
	parser.Bool(&cfg.AutoGain, "a", "autogain", "track recent peaks and scale the gain")

	parser.Float64(&cfg.CurvePower, "c", "curve", "amplitude curve power")
	parser.Float64(&cfg.AttackTime, "", "attack", "attack time in seconds")
	parser.Float64(&cfg.ReleaseTime, "", "release", "release time in seconds")
	parser.Int(&cfg.WobbleIntensity, "w", "wobble", "spring intensity (0-100)")

	parser.Int(&cfg.Density, "", "density", "outline density percent (10-300)")
	parser.Int(&cfg.Thickness, "", "thickness", "stroke thickness")
	parser.Int(&cfg.FrameRadius, "", "radius", "frame corner radius percent")
	parser.Bool(&cfg.Mirror, "m", "mirror", "mirror the figure over its base")
	parser.Bool(&cfg.FlipSides, "", "flip", "draw a mirrored second half")

	parser.Int(&cfg.BarCount, "", "bars", "bar count for bar styles")
	parser.Int(&cfg.Stacks, "", "stacks", "rows for the blocks style")
	parser.Float64(&cfg.GapRatio, "", "gap", "gap ratio between bars (0-0.9)")

	parser.Int(&cfg.SparkCount, "", "sparks", "particle count for spark styles")
	parser.Float64(&cfg.SparkMinLevel, "", "spark-gate", "level needed to light a spark")
	parser.Float64(&cfg.SparkEnergy, "", "spark-energy", "spark aging and travel scale")

	parser.Float64(&cfg.RotateSpeed, "", "spin", "rotation speed for rotating styles")

	parser.String(&cfg.Foreground, "fg", "foreground", "foreground color (#rrggbb)")
	parser.String(&cfg.Accent, "ac", "accent", "accent color (#rrggbb)")
	parser.Bool(&cfg.GradientOn, "", "gradient", "blend geometry between the two colors")

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case listBackendsCmd.Used:
		for _, backend := range input.Backends {
			fmt.Printf("- %s\n", backend.Name)
		}

		return true

	case listDevicesCmd.Used:
		backendName := cfg.Backend
		if backendName == "" {
			backendName = input.DefaultBackend()
		}

		backend, err := input.InitBackend(backendName)
		chk(err, "failed to init backend")

		devices, err := backend.Devices()
		chk(err, "failed to get devices")

		// We don't really need the default device to be indicated.
		defaultDevice, _ := backend.DefaultDevice()

		fmt.Printf("all devices for %q backend. '*' marks default\n", backendName)

		for idx := range devices {
			star := ' '
			if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
				star = '*'
			}

			fmt.Printf("- %v %c\n", devices[idx], star)
		}

		return true

	case listShapesCmd.Used:
		for _, name := range shape.Kinds() {
			fmt.Printf("- %s\n", name)
		}

		return true

	case listStylesCmd.Used:
		for _, id := range theme.NewRegistry().IDs() {
			fmt.Printf("- %s\n", id)
		}

		return true
	}

	return false
}

func run(ctx context.Context, cfg config.Config) error {
	backendName := cfg.Backend
	if backendName == "" {
		backendName = input.DefaultBackend()
	}

	backend, err := input.InitBackend(backendName)
	if err != nil {
		return err
	}
	defer backend.Close()

	device, err := input.GetDevice(backend, cfg.Device)
	if err != nil {
		return err
	}

	session, err := backend.Start(input.SessionConfig{
		Device:     device,
		SampleRate: cfg.SampleRate,
		SampleSize: cfg.SampleSize,
		FrameSize:  2,
	})
	if err != nil {
		return errors.Wrap(err, "failed to start session")
	}

	display := graphic.New()
	if err := display.Init(); err != nil {
		return err
	}
	defer display.Close()

	tap := wave.NewTap()
	defer tap.Close()

	p, err := pipeline.New(cfg, theme.NewRegistry(), tap.Buffer(), display)
	if err != nil {
		return err
	}

	ctx = display.Start(ctx)

	go func() {
		if err := session.Start(ctx, tap); err != nil && !errors.Is(err, context.Canceled) {
			log.Println("capture session ended:", err)
		}
	}()

	if err := p.Run(ctx, tap.Kick()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
