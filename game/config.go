package game

import (
	"github.com/phiberoptik112/digital-ant-farm/config"
	"github.com/phiberoptik112/digital-ant-farm/telemetry"
)

// Options holds runtime settings that are not part of the YAML config:
// they come from CLI flags and tests, not from tuning.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config value
	SnapshotDir    string  // "" disables milestone snapshots
	SnapshotPath   string  // resume from this snapshot file instead of a fresh world
	OutputDir      string  // "" disables CSV output
	Headless       bool
	StepsPerUpdate int

	// StatsCallback receives every flushed stats window. Used by the
	// optimizer; nil otherwise.
	StatsCallback func(telemetry.WindowStats)
}

// config returns the active configuration. Kept as a method so call
// sites read the same as they would with a per-game config.
func (g *Game) config() *config.Config {
	return config.Cfg()
}
