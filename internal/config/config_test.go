package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-saver/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
battery:
  capacity_kwh: 10
  power_kw: 5
  round_trip_eff: 0.9
site:
  postcode: EC2A3AY
  array_kwp: 4
tariff:
  region: C
  date: 2024-06-01
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Battery.CapacityKWh)
	assert.Equal(t, 5.0, cfg.Battery.PowerKW)
	assert.Equal(t, 0.9, cfg.Battery.RoundTripEff)
	assert.Equal(t, "EC2A3AY", cfg.Site.Postcode)
	assert.Equal(t, "C", cfg.Tariff.Region)
}

func TestLoad_DefaultsUnsetBatteryFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
battery:
  capacity_kwh: 13.5
site:
  latitude: 51.52
  longitude: -0.09
  array_kwp: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	def := model.DefaultBatteryConfig()
	assert.Equal(t, 13.5, cfg.Battery.CapacityKWh)
	assert.Equal(t, def.PowerKW, cfg.Battery.PowerKW)
	assert.Equal(t, def.RoundTripEff, cfg.Battery.RoundTripEff)
}

func TestLoad_BatteryFileOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "powerwall.yaml", `
battery:
  name: Powerwall 2
  capacity_kwh: 13.5
  power_kw: 5
  round_trip_eff: 0.9
`)
	path := writeFile(t, dir, "config.yaml", `
battery_file: powerwall.yaml
battery:
  power_kw: 3.68
site:
  postcode: EC2A3AY
  array_kwp: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	// Preset values with the explicit override on top.
	assert.Equal(t, "Powerwall 2", cfg.Battery.Name)
	assert.Equal(t, 13.5, cfg.Battery.CapacityKWh)
	assert.Equal(t, 3.68, cfg.Battery.PowerKW)
	assert.Equal(t, 0.9, cfg.Battery.RoundTripEff)
}

func TestLoad_RejectsInvalidBattery(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
battery:
  capacity_kwh: -1
site:
  postcode: EC2A3AY
  array_kwp: 4
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestLoad_RejectsMissingSite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
battery:
  capacity_kwh: 5
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestMergeBattery(t *testing.T) {
	base := BatteryConfig{Name: "base", CapacityKWh: 5, PowerKW: 3, RoundTripEff: 0.92}
	out := MergeBattery(base, BatteryConfig{CapacityKWh: 10})
	assert.Equal(t, "base", out.Name)
	assert.Equal(t, 10.0, out.CapacityKWh)
	assert.Equal(t, 3.0, out.PowerKW)
	assert.Equal(t, 0.92, out.RoundTripEff)
}
