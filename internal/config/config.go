package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"solar-saver/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load battery parameters from a separate YAML preset
	// (e.g. examples/batteries/*.yaml). If both BatteryFile and Battery are
	// provided, Battery overrides BatteryFile.
	BatteryFile string        `yaml:"battery_file"`
	Battery     BatteryConfig `yaml:"battery"`
	Site        SiteConfig    `yaml:"site"`
	Tariff      TariffConfig  `yaml:"tariff"`
}

type BatteryConfig struct {
	Name         string  `yaml:"name"`
	CapacityKWh  float64 `yaml:"capacity_kwh"`
	PowerKW      float64 `yaml:"power_kw"`
	RoundTripEff float64 `yaml:"round_trip_eff"`
}

// SiteConfig locates the array: either a UK postcode or explicit
// coordinates, plus the array size in kW peak.
type SiteConfig struct {
	Postcode  string  `yaml:"postcode"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	ArrayKWp  float64 `yaml:"array_kwp"`
}

// TariffConfig selects the Agile product, region letter and day to price.
type TariffConfig struct {
	ProductCode string `yaml:"product_code"`
	Region      string `yaml:"region"`
	Date        string `yaml:"date"` // YYYY-MM-DD
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Unset battery fields default to the standard home install, so a config
	// can name just the fields it wants to change.
	def := model.DefaultBatteryConfig()
	if c.Battery.CapacityKWh == 0 {
		c.Battery.CapacityKWh = def.CapacityKWh
	}
	if c.Battery.PowerKW == 0 {
		c.Battery.PowerKW = def.PowerKW
	}
	if c.Battery.RoundTripEff == 0 {
		c.Battery.RoundTripEff = def.RoundTripEff
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate or default it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If battery_file is set, load it and merge in any explicit overrides.
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, falling back to the path as given.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := LoadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Site.Postcode == "" && (c.Site.Latitude == 0 && c.Site.Longitude == 0) {
		return errors.New("site requires a postcode or latitude/longitude")
	}
	if c.Site.ArrayKWp <= 0 {
		return errors.New("site.array_kwp must be > 0")
	}
	if err := c.Battery.ToModel().Validate(); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	return nil
}

func (b BatteryConfig) ToModel() model.BatteryConfig {
	return model.BatteryConfig{
		CapacityKWh:  b.CapacityKWh,
		PowerKW:      b.PowerKW,
		RoundTripEff: b.RoundTripEff,
	}
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

// LoadBatteryFile reads a battery preset YAML of the shape {battery: {...}}.
func LoadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base.
// Used when loading a battery preset and then applying request overrides.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.PowerKW != 0 {
		out.PowerKW = override.PowerKW
	}
	if override.RoundTripEff != 0 {
		out.RoundTripEff = override.RoundTripEff
	}
	return out
}
