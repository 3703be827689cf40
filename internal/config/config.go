// Package config holds the fixed daemon configuration: calibration,
// sampling parameters, cycle timing, and the per-channel hardware wiring.
// Everything is set at startup; there is no runtime reconfiguration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Channel configures one irrigation channel. Fixed for the device lifetime.
type Channel struct {
	// PumpDuration is how long one pump attempt runs the pump.
	PumpDuration time.Duration `yaml:"pump_duration"`
	// MaxPumpAttempts bounds consecutive pump runs before the channel
	// gives up until recovery is observed.
	MaxPumpAttempts int `yaml:"max_pump_attempts"`
	// SensorPin is the ADC input on the analog front-end for this
	// channel's moisture sensor.
	SensorPin int `yaml:"sensor_pin"`
	// SensorAddress is the decoder output that powers the sensor and its
	// reference potentiometer.
	SensorAddress int `yaml:"sensor_address"`
	// PumpAddress is the decoder output that powers the pump circuit.
	PumpAddress int `yaml:"pump_address"`
}

// SerialConfig locates the serial-attached analog front-end.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// GPIOConfig names the lines driving the channel decoder.
type GPIOConfig struct {
	Chip      string `yaml:"chip"`
	PinA0     int    `yaml:"pin_a0"`
	PinA1     int    `yaml:"pin_a1"`
	PinA2     int    `yaml:"pin_a2"`
	PinEnable int    `yaml:"pin_enable"`
}

// DisplayConfig controls where rendered frames go.
type DisplayConfig struct {
	// FramePath is where the rendered frame PNG is written for the
	// e-paper blitter.
	FramePath string `yaml:"frame_path"`
}

// CalibrationConfig holds the two-point sensor calibration.
type CalibrationConfig struct {
	// Wet is the raw reading with the sensor submersed in water (100%).
	Wet int `yaml:"wet"`
	// Dry is the raw reading with the sensor in dry air (0%). Capacitive
	// sensors read higher as the soil dries, so Wet < Dry.
	Dry int `yaml:"dry"`
}

// SamplingConfig holds the per-cycle acquisition parameters.
type SamplingConfig struct {
	// Count is how many raw samples get averaged per reading.
	Count int `yaml:"count"`
	// SettleDelay is the wait after powering a sensor before its
	// oscillator output is considered stable.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// HysteresisTolerance is the minimum percentage-point difference
	// before a new reading counts as a real change.
	HysteresisTolerance int `yaml:"hysteresis_tolerance"`
	// ReferencePin is the ADC input carrying the selected channel's
	// potentiometer.
	ReferencePin int `yaml:"reference_pin"`
}

// CycleConfig holds the inter-cycle timing.
type CycleConfig struct {
	// Interval is the total sleep between cycles.
	Interval time.Duration `yaml:"interval"`
	// MaxSleep is the longest single sleep call the platform supports;
	// the scheduler chains shorter sleeps to cover Interval.
	MaxSleep time.Duration `yaml:"max_sleep"`
}

// Config represents the full daemon configuration.
type Config struct {
	Serial      SerialConfig      `yaml:"serial"`
	GPIO        GPIOConfig        `yaml:"gpio"`
	Display     DisplayConfig     `yaml:"display"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Sampling    SamplingConfig    `yaml:"sampling"`
	Cycle       CycleConfig       `yaml:"cycle"`
	Channels    []Channel         `yaml:"channels"`
}

// maxSampleCount keeps the running sum of 10-bit readings inside a 16-bit
// accumulator: 2^16 / 2^10 = 64.
const maxSampleCount = 64

// Default returns the configuration matching the reference board: four
// channels, sensor circuits on decoder outputs 4..7, pumps on 0..3.
func Default() *Config {
	cfg := &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0",
			BaudRate: 115200,
		},
		GPIO: GPIOConfig{
			Chip:      "gpiochip0",
			PinA0:     2,
			PinA1:     3,
			PinA2:     4,
			PinEnable: 17,
		},
		Display: DisplayConfig{
			FramePath: "/run/moisture-guard/frame.png",
		},
		Calibration: CalibrationConfig{
			Wet: 150,
			Dry: 660,
		},
		Sampling: SamplingConfig{
			Count:               4,
			SettleDelay:         2 * time.Second,
			HysteresisTolerance: 2,
			ReferencePin:        4,
		},
		Cycle: CycleConfig{
			Interval: 10 * time.Minute,
			MaxSleep: 8 * time.Second,
		},
	}
	for i := 0; i < 4; i++ {
		cfg.Channels = append(cfg.Channels, Channel{
			PumpDuration:    10 * time.Second,
			MaxPumpAttempts: 3,
			SensorPin:       i,
			SensorAddress:   4 + i,
			PumpAddress:     i,
		})
	}
	return cfg
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; a partial file is merged over them.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.ensureDefaults()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the invariants the rest of the daemon relies on.
func (c *Config) Validate() error {
	if len(c.Channels) == 0 {
		return fmt.Errorf("no channels configured")
	}
	if c.Calibration.Wet >= c.Calibration.Dry {
		return fmt.Errorf("calibration: wet reading %d must be below dry reading %d", c.Calibration.Wet, c.Calibration.Dry)
	}
	if c.Sampling.Count < 1 || c.Sampling.Count >= maxSampleCount {
		return fmt.Errorf("sampling count %d out of range [1, %d)", c.Sampling.Count, maxSampleCount)
	}
	if c.Sampling.HysteresisTolerance < 0 {
		return fmt.Errorf("hysteresis tolerance must not be negative")
	}
	if c.Sampling.SettleDelay < 0 {
		return fmt.Errorf("settle delay must not be negative")
	}
	if c.Cycle.Interval <= 0 {
		return fmt.Errorf("cycle interval must be positive")
	}
	if c.Cycle.MaxSleep <= 0 {
		return fmt.Errorf("max sleep must be positive")
	}
	for i, ch := range c.Channels {
		if ch.PumpDuration <= 0 {
			return fmt.Errorf("channel %d: pump duration must be positive", i+1)
		}
		if ch.MaxPumpAttempts < 1 {
			return fmt.Errorf("channel %d: max pump attempts must be at least 1", i+1)
		}
		if ch.SensorAddress < 0 || ch.SensorAddress > 7 {
			return fmt.Errorf("channel %d: sensor address %d outside decoder range 0..7", i+1, ch.SensorAddress)
		}
		if ch.PumpAddress < 0 || ch.PumpAddress > 7 {
			return fmt.Errorf("channel %d: pump address %d outside decoder range 0..7", i+1, ch.PumpAddress)
		}
		if ch.SensorPin < 0 {
			return fmt.Errorf("channel %d: sensor pin must not be negative", i+1)
		}
	}
	return nil
}

// MaxAttempts returns the per-channel attempt limits in channel order.
func (c *Config) MaxAttempts() []int {
	out := make([]int, len(c.Channels))
	for i, ch := range c.Channels {
		out[i] = ch.MaxPumpAttempts
	}
	return out
}

// ensureDefaults fills fields a partial config file left at their zero
// value. Channel entries are only defaulted wholesale: an explicit channel
// list is taken as-is and checked by Validate.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}
	if c.GPIO.Chip == "" {
		c.GPIO.Chip = def.GPIO.Chip
	}
	if c.Display.FramePath == "" {
		c.Display.FramePath = def.Display.FramePath
	}
	if c.Calibration.Wet == 0 && c.Calibration.Dry == 0 {
		c.Calibration = def.Calibration
	}
	if c.Sampling.Count == 0 {
		c.Sampling.Count = def.Sampling.Count
	}
	if c.Sampling.SettleDelay == 0 {
		c.Sampling.SettleDelay = def.Sampling.SettleDelay
	}
	if c.Sampling.ReferencePin == 0 {
		c.Sampling.ReferencePin = def.Sampling.ReferencePin
	}
	if c.Cycle.Interval == 0 {
		c.Cycle.Interval = def.Cycle.Interval
	}
	if c.Cycle.MaxSleep == 0 {
		c.Cycle.MaxSleep = def.Cycle.MaxSleep
	}
	if len(c.Channels) == 0 {
		c.Channels = def.Channels
	}
}
