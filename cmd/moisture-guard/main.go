// Command moisture-guard monitors soil moisture on independent irrigation
// channels and waters whichever drops below its reference dial. Channel
// status goes to an e-paper frame; a channel that stays dry after the
// configured number of pump attempts is flagged red until it recovers.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wunderabt/soil-moisture/internal/analog"
	"github.com/wunderabt/soil-moisture/internal/config"
	"github.com/wunderabt/soil-moisture/internal/display"
	"github.com/wunderabt/soil-moisture/internal/logger"
	"github.com/wunderabt/soil-moisture/internal/logic"
	"github.com/wunderabt/soil-moisture/internal/mux"
	"github.com/wunderabt/soil-moisture/internal/pump"
	"github.com/wunderabt/soil-moisture/internal/sampling"
	"github.com/wunderabt/soil-moisture/internal/scheduler"
	"github.com/wunderabt/soil-moisture/internal/timer"
)

const version = "v0.2"

func main() {
	configPath := flag.String("config", "/etc/moisture-guard.yaml", "Configuration file path")
	logLevel := flag.String("log-level", logger.InfoLevel, "Log level (debug, info, warn, error)")
	serialPort := flag.String("serial", "", "Serial port of the analog front-end (overrides config)")
	framePath := flag.String("frame", "", "Rendered frame path (overrides config)")
	printState := flag.Bool("print-state", false, "Sample every channel once, print, and exit")
	dryRun := flag.Bool("dry-run", false, "Run with fake hardware (development)")

	flag.Parse()

	log := logger.New(*logLevel)
	defer log.Sync()

	if err := run(log, *configPath, *serialPort, *framePath, *printState, *dryRun); err != nil {
		log.Errorf("fatal: %v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger, configPath, serialPort, framePath string, printState, dryRun bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cfg, serialPort, framePath)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	sampler, selector, err := buildHardware(cfg, dryRun)
	if err != nil {
		return err
	}
	defer sampler.Close()
	defer selector.Close()

	sleeper := timer.Real{}
	agg := sampling.New(sampler, selector, sleeper, cfg.Sampling.SettleDelay, cfg.Sampling.Count, cfg.Sampling.ReferencePin)
	engine := logic.NewEngine(
		logic.Calibration{Wet: cfg.Calibration.Wet, Dry: cfg.Calibration.Dry},
		cfg.Sampling.HysteresisTolerance,
		cfg.MaxAttempts(),
	)

	if printState {
		return runPrintState(cfg, agg, engine)
	}

	var renderer display.Renderer
	if dryRun {
		renderer = display.NewFakeRenderer()
	} else {
		renderer, err = display.NewFrameWriter(cfg.Display.FramePath)
		if err != nil {
			return fmt.Errorf("init renderer: %w", err)
		}
	}
	defer renderer.Close()

	var pumps pump.Runner = pump.NewMuxRunner(selector, sleeper)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	log.Infof("started %s: channels=%d interval=%v samples=%d tolerance=%d",
		version, len(cfg.Channels), cfg.Cycle.Interval, cfg.Sampling.Count, cfg.Sampling.HysteresisTolerance)

	sched := scheduler.New(cfg, engine, agg, renderer, pumps, sleeper, log, version)
	sched.Run(sig)
	return nil
}

// runPrintState samples every channel once and prints the evaluated state.
// Useful while calibrating sensors in the field.
func runPrintState(cfg *config.Config, agg *sampling.Aggregator, engine *logic.Engine) error {
	for i, ch := range cfg.Channels {
		raw, rawRef, err := agg.Read(mux.Address(ch.SensorAddress), ch.SensorPin)
		if err != nil {
			return fmt.Errorf("sample channel %d: %w", i+1, err)
		}
		engine.Observe(i, logic.Reading{Sensor: raw, Reference: rawRef})
		fmt.Println(formatChannelState(i, engine.Channel(i), raw))
	}
	return nil
}

// formatChannelState renders one channel line for -print-state.
func formatChannelState(i int, st logic.ChannelState, raw int) string {
	return fmt.Sprintf("channel %d: %d%% (raw %d) reference %d%% attempts %d/%d [%s]",
		i+1, st.Moisture, raw, st.Reference, st.Attempts, st.MaxAttempts, st.Status())
}

// applyOverrides applies the command line overrides onto the loaded config.
func applyOverrides(cfg *config.Config, serialPort, framePath string) {
	if serialPort != "" {
		cfg.Serial.Port = serialPort
	}
	if framePath != "" {
		cfg.Display.FramePath = framePath
	}
}

// buildHardware opens the real front-end and decoder, or fake stand-ins
// for -dry-run so the daemon can run off-target.
func buildHardware(cfg *config.Config, dryRun bool) (analog.Sampler, mux.Selector, error) {
	if dryRun {
		return fakeSampler(cfg), mux.NewFake(), nil
	}

	sampler, err := analog.Open(cfg.Serial.Port, cfg.Serial.BaudRate)
	if err != nil {
		return nil, nil, fmt.Errorf("init analog front-end: %w", err)
	}

	selector, err := mux.NewDecoder(cfg.GPIO.Chip, cfg.GPIO.PinA0, cfg.GPIO.PinA1, cfg.GPIO.PinA2, cfg.GPIO.PinEnable)
	if err != nil {
		sampler.Close()
		return nil, nil, fmt.Errorf("init channel decoder: %w", err)
	}
	return sampler, selector, nil
}

// fakeSampler scripts mid-scale readings for every configured pin so a dry
// run exercises the full cycle without hardware.
func fakeSampler(cfg *config.Config) *analog.Fake {
	readings := make(map[int][]uint16)
	for _, ch := range cfg.Channels {
		readings[ch.SensorPin] = []uint16{405}
	}
	readings[cfg.Sampling.ReferencePin] = []uint16{400}
	return analog.NewFake(readings)
}
