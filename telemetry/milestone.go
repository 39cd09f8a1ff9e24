package telemetry

import (
	"fmt"
	"log/slog"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestoneFirstDelivery   MilestoneType = "first_delivery"
	MilestoneTrailNetwork    MilestoneType = "trail_network"
	MilestoneColonyLevelUp   MilestoneType = "colony_level_up"
	MilestonePopulationBoom  MilestoneType = "population_boom"
	MilestonePopulationCrash MilestoneType = "population_crash"
	MilestoneStarvationWave  MilestoneType = "starvation_wave"
	MilestoneFieldSaturated  MilestoneType = "field_saturated"
)

// Milestone represents an automatically detected colony event.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Tick        int32         `csv:"tick"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"tick", m.Tick,
		"description", m.Description,
	)
}

// MilestoneDetector detects interesting moments in the colony's history.
type MilestoneDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	deliverySeen    bool
	trailSeen       bool
	saturationSeen  bool
	lastLevel       int // 0 until the first window sets the baseline
	lastBoomCount   int // last population that fired a boom
	recentPopPeak   int // peak ant count in recent history
	starvationLatch bool
}

// NewMilestoneDetector creates a detector with the given history size.
func NewMilestoneDetector(historySize int) *MilestoneDetector {
	if historySize < 3 {
		historySize = 3 // minimum for rolling-average detection
	}
	return &MilestoneDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered milestones.
func (md *MilestoneDetector) Check(stats WindowStats) []Milestone {
	var milestones []Milestone

	// One-shot and threshold rules need no history.
	if m := md.checkFirstDelivery(stats); m != nil {
		milestones = append(milestones, *m)
	}
	if m := md.checkTrailNetwork(stats); m != nil {
		milestones = append(milestones, *m)
	}
	if m := md.checkColonyLevelUp(stats); m != nil {
		milestones = append(milestones, *m)
	}
	if m := md.checkStarvationWave(stats); m != nil {
		milestones = append(milestones, *m)
	}
	if m := md.checkFieldSaturated(stats); m != nil {
		milestones = append(milestones, *m)
	}

	// Rolling-average rules need at least one prior window.
	if md.historyFull || md.historyIdx > 0 {
		if m := md.checkPopulationBoom(stats); m != nil {
			milestones = append(milestones, *m)
		}
		if m := md.checkPopulationCrash(stats); m != nil {
			milestones = append(milestones, *m)
		}
	}

	md.addToHistory(stats)

	if stats.AntCount > md.recentPopPeak {
		md.recentPopPeak = stats.AntCount
	}

	return milestones
}

func (md *MilestoneDetector) addToHistory(stats WindowStats) {
	md.history[md.historyIdx] = stats
	md.historyIdx = (md.historyIdx + 1) % md.historySize
	if md.historyIdx == 0 {
		md.historyFull = true
	}
}

func (md *MilestoneDetector) getHistory() []WindowStats {
	if md.historyFull {
		return md.history
	}
	return md.history[:md.historyIdx]
}

func (md *MilestoneDetector) checkFirstDelivery(stats WindowStats) *Milestone {
	if md.deliverySeen || stats.Deliveries == 0 {
		return nil
	}
	md.deliverySeen = true

	return &Milestone{
		Type:        MilestoneFirstDelivery,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("First food delivered at %.1fs", stats.SimTimeSec),
	}
}

func (md *MilestoneDetector) checkTrailNetwork(stats WindowStats) *Milestone {
	if md.trailSeen || stats.HighQuality < 3 {
		return nil
	}
	md.trailSeen = true

	return &Milestone{
		Type:        MilestoneTrailNetwork,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Trail network established with %d high-quality trails", stats.HighQuality),
	}
}

func (md *MilestoneDetector) checkColonyLevelUp(stats WindowStats) *Milestone {
	if md.lastLevel == 0 {
		md.lastLevel = stats.ColonyLevel
		return nil
	}
	if stats.ColonyLevel <= md.lastLevel {
		return nil
	}

	oldLevel := md.lastLevel
	md.lastLevel = stats.ColonyLevel

	return &Milestone{
		Type:        MilestoneColonyLevelUp,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Colony reached level %d (from %d)", stats.ColonyLevel, oldLevel),
	}
}

func (md *MilestoneDetector) checkStarvationWave(stats WindowStats) *Milestone {
	if stats.Starvations == 0 {
		md.starvationLatch = false
		return nil
	}
	if md.starvationLatch {
		return nil
	}

	// A wave is 3+ starvations amounting to a quarter of the colony.
	popBefore := stats.AntCount + stats.Starvations
	if stats.Starvations < 3 || stats.Starvations*4 < popBefore {
		return nil
	}
	md.starvationLatch = true

	return &Milestone{
		Type:        MilestoneStarvationWave,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Lost %d ants to starvation, %d remain", stats.Starvations, stats.AntCount),
	}
}

func (md *MilestoneDetector) checkFieldSaturated(stats WindowStats) *Milestone {
	if md.saturationSeen || stats.DepositsPruned == 0 {
		return nil
	}
	md.saturationSeen = true

	return &Milestone{
		Type:        MilestoneFieldSaturated,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Deposit cap reached, pruned %d weakest deposits", stats.DepositsPruned),
	}
}

func (md *MilestoneDetector) checkPopulationBoom(stats WindowStats) *Milestone {
	history := md.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.AntCount
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	// Only new highs fire, so a sustained boom reports once.
	if float64(stats.AntCount) >= avg*1.5 && stats.AntCount >= 20 && stats.AntCount > md.lastBoomCount {
		md.lastBoomCount = stats.AntCount

		return &Milestone{
			Type:        MilestonePopulationBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population boomed to %d ants, %.1fx the recent average (%.0f)", stats.AntCount, float64(stats.AntCount)/avg, avg),
		}
	}

	return nil
}

func (md *MilestoneDetector) checkPopulationCrash(stats WindowStats) *Milestone {
	if md.recentPopPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.AntCount)/float64(md.recentPopPeak)
	if dropPercent > 0.30 && stats.AntCount < md.recentPopPeak-10 {
		// Reset peak after crash
		oldPeak := md.recentPopPeak
		md.recentPopPeak = stats.AntCount

		return &Milestone{
			Type:        MilestonePopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.AntCount),
		}
	}

	return nil
}
