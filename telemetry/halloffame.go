package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/phiberoptik112/digital-ant-farm/config"
)

// Fitness weights for ranking dead foragers.
const (
	fitnessDeliveredWeight = 1.0
	fitnessTripWeight      = 2.0
	fitnessSurvivalWeight  = 0.05
)

// HallEntry records a notable forager's career.
type HallEntry struct {
	AntID         uint32
	Caste         uint8
	Fitness       float32
	Trips         int
	FoodDelivered float32
	DepositsMade  int
	Survival      float32
}

// HallOfFame keeps the best foragers the colony has produced.
// Halls are indexed by caste ID (one hall per caste).
type HallOfFame struct {
	halls   [][]HallEntry
	maxSize int
}

// NewHallOfFame creates a new hall of fame with the given capacity per caste.
func NewHallOfFame(maxSize int, numCastes int) *HallOfFame {
	halls := make([][]HallEntry, numCastes)
	for i := range halls {
		halls[i] = make([]HallEntry, 0, maxSize)
	}
	return &HallOfFame{
		halls:   halls,
		maxSize: maxSize,
	}
}

// Consider evaluates a dead ant for hall of fame entry.
// Returns true if the ant was added to its caste's hall.
func (hof *HallOfFame) Consider(stats *LifetimeStats, antID uint32) bool {
	if stats == nil || stats.Trips < 1 {
		return false
	}

	entry := HallEntry{
		AntID:         antID,
		Caste:         stats.Caste,
		Fitness:       calculateFitness(stats),
		Trips:         stats.Trips,
		FoodDelivered: stats.FoodDelivered,
		DepositsMade:  stats.DepositsMade,
		Survival:      stats.SurvivalTimeSec,
	}

	hall := hof.getHall(stats.Caste)
	*hall = hof.insertEntry(*hall, entry)

	return true
}

// calculateFitness computes the weighted career score.
func calculateFitness(stats *LifetimeStats) float32 {
	fitness := stats.FoodDelivered * fitnessDeliveredWeight
	fitness += float32(stats.Trips) * fitnessTripWeight
	fitness += stats.SurvivalTimeSec * fitnessSurvivalWeight
	return fitness
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) []HallEntry {
	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall
	}

	// Insert at position
	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	// Trim if over capacity
	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}

	return hall
}

// Size returns the number of entries for a given caste.
func (hof *HallOfFame) Size(caste uint8) int {
	return len(*hof.getHall(caste))
}

// Top returns the best entry for a given caste, or nil if the hall is empty.
func (hof *HallOfFame) Top(caste uint8) *HallEntry {
	hall := *hof.getHall(caste)
	if len(hall) == 0 {
		return nil
	}
	return &hall[0]
}

// getHall returns a pointer to the hall for the given caste.
func (hof *HallOfFame) getHall(caste uint8) *[]HallEntry {
	if int(caste) >= len(hof.halls) {
		// Safety: return an empty hall for unknown castes
		empty := make([]HallEntry, 0)
		return &empty
	}
	return &hof.halls[caste]
}

// Stats returns summary statistics for logging.
func (hof *HallOfFame) Stats() (sizes []int, topFitnesses []float32) {
	sizes = make([]int, len(hof.halls))
	topFitnesses = make([]float32, len(hof.halls))
	for i, hall := range hof.halls {
		sizes[i] = len(hall)
		if len(hall) > 0 {
			topFitnesses[i] = hall[0].Fitness
		}
	}
	return
}

// hallEntryJSON is the JSON-serializable representation of a hall entry.
type hallEntryJSON struct {
	AntID         uint32  `json:"ant_id"`
	Caste         string  `json:"caste"`
	Fitness       float32 `json:"fitness"`
	Trips         int     `json:"trips"`
	FoodDelivered float32 `json:"food_delivered"`
	DepositsMade  int     `json:"deposits_made"`
	Survival      float32 `json:"survival_sec"`
}

// MarshalJSON serializes the hall of fame to JSON.
// Keys are caste names (e.g., "worker", "scout").
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	cfg := config.Cfg()
	export := make(map[string][]hallEntryJSON)

	for casteIdx, hall := range hof.halls {
		casteName := "unknown"
		if casteIdx < len(cfg.Castes) {
			casteName = cfg.Castes[casteIdx].Name
		}

		entries := make([]hallEntryJSON, len(hall))
		for i, entry := range hall {
			entryCasteName := "unknown"
			if int(entry.Caste) < len(cfg.Castes) {
				entryCasteName = cfg.Castes[entry.Caste].Name
			}
			entries[i] = hallEntryJSON{
				AntID:         entry.AntID,
				Caste:         entryCasteName,
				Fitness:       entry.Fitness,
				Trips:         entry.Trips,
				FoodDelivered: entry.FoodDelivered,
				DepositsMade:  entry.DepositsMade,
				Survival:      entry.Survival,
			}
		}
		export[casteName] = entries
	}

	return json.MarshalIndent(export, "", "  ")
}
