// Package pheromone implements the decaying signal field the ants
// coordinate through: a spatially indexed set of deposits that age,
// spread, and gain quality from use, advanced once per simulation tick.
package pheromone

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/phiberoptik112/digital-ant-farm/config"
)

// ErrInvalidParameter reports a deposit call with a negative strength,
// decay rate, or radius. Bad tuning values fail loudly instead of
// producing deposits that decay forever or die instantly.
var ErrInvalidParameter = errors.New("invalid parameter")

// Match is the result of a sense query: the deposit with the highest
// effective influence at the query point.
type Match struct {
	ID        uint64
	X, Y      float32
	Kind      Kind
	Strength  float32
	Quality   float32
	Distance  float32
	Influence float32
}

// Stats aggregates the live field for telemetry and the HUD.
// Counts come from counters maintained at insert/remove; strength and
// quality aggregates are swept on demand.
type Stats struct {
	Total         int
	KindCounts    [KindCount]int
	TotalStrength float32
	AvgStrength   float32
	AvgQuality    float32
	TotalUsage    int64
	HighQuality   int // Quality above 1.5

	Created       uint64
	Expired       uint64
	SpreadFired   uint64
	SpreadCreated uint64
	Pruned        uint64
}

// Field owns the live deposits and their spatial index, in permanent
// 1:1 correspondence. All mutation happens through the methods here;
// there is no global state.
type Field struct {
	worldW, worldH float32

	deposits []Deposit
	slots    map[uint64]int // id -> index into deposits
	grid     *Grid
	ground   *Ground // optional; decay multiplier is 1 without it

	nextID uint64
	tick   int32

	kindCounts [KindCount]int

	created       uint64
	expired       uint64
	spreadFired   uint64
	spreadCreated uint64
	pruned        uint64

	// Step scratch, reused across ticks
	removeBuf []uint64
	spawnBuf  []spawnSpec
}

// spawnSpec is a secondary deposit collected during the spread sweep
// and created after it, so the sweep never appends to the slice it
// iterates.
type spawnSpec struct {
	x, y      float32
	kind      Kind
	strength  float32
	decayRate float32
	radius    float32
	origin    uint64
}

// NewField creates an empty field over the given world rectangle.
// ground may be nil.
func NewField(worldW, worldH float32, ground *Ground) *Field {
	cellSize := float32(config.Cfg().Physics.GridCellSize)
	return &Field{
		worldW:   worldW,
		worldH:   worldH,
		deposits: make([]Deposit, 0, 1024),
		slots:    make(map[uint64]int, 1024),
		grid:     NewGrid(worldW, worldH, cellSize),
		ground:   ground,
	}
}

// Deposit creates and indexes a new deposit. Negative strength, decay
// rate, or radius is a caller contract violation and is rejected, not
// clamped.
func (f *Field) Deposit(x, y float32, kind Kind, strength, decayRate, radius float32, opts Opts) (uint64, error) {
	if strength < 0 {
		return 0, fmt.Errorf("%w: negative strength %g", ErrInvalidParameter, strength)
	}
	if decayRate < 0 {
		return 0, fmt.Errorf("%w: negative decay rate %g", ErrInvalidParameter, decayRate)
	}
	if radius < 0 {
		return 0, fmt.Errorf("%w: negative radius %g", ErrInvalidParameter, radius)
	}
	return f.create(x, y, kind, strength, decayRate, radius, opts, 0), nil
}

// DepositDefault creates a deposit of the given kind from its
// configured defaults.
func (f *Field) DepositDefault(x, y float32, kind Kind) (uint64, error) {
	p := kind.Defaults()
	return f.Deposit(x, y, kind,
		float32(p.Strength), float32(p.DecayRate), float32(p.Radius),
		Opts{CanSpread: p.CanSpread})
}

// create inserts a validated deposit. A non-zero origin marks a spread
// child, which never spreads again.
func (f *Field) create(x, y float32, kind Kind, strength, decayRate, radius float32, opts Opts, origin uint64) uint64 {
	f.nextID++
	id := f.nextID

	d := Deposit{
		ID:           id,
		X:            x,
		Y:            y,
		Kind:         kind,
		Strength:     strength,
		MaxStrength:  strength,
		DecayRate:    decayRate,
		Radius:       radius,
		Quality:      1,
		Origin:       origin,
		CreatedTick:  f.tick,
		LastUsedTick: f.tick,
	}

	if origin != 0 || !opts.CanSpread {
		d.Spread = SpreadDisabled
	} else {
		cfg := config.Cfg()
		delay := opts.SpreadDelay
		if delay <= 0 {
			delay = float32(cfg.Spread.Delay)
		}
		d.Spread = SpreadPending
		d.SpreadAt = f.tick + int32(float64(delay)/cfg.Physics.DT)
		d.SpreadRadius = opts.SpreadRadius
		if d.SpreadRadius <= 0 {
			d.SpreadRadius = radius * float32(cfg.Spread.RadiusMultiplier)
		}
		d.SpreadFactor = opts.SpreadFactor
		if d.SpreadFactor <= 0 {
			d.SpreadFactor = float32(cfg.Spread.StrengthFactor)
		}
		d.SpreadCount = opts.SpreadCount
		if d.SpreadCount <= 0 {
			d.SpreadCount = int32(cfg.Spread.Count)
		}
	}

	f.slots[id] = len(f.deposits)
	f.deposits = append(f.deposits, d)
	f.grid.Insert(id, x, y, kind)
	f.kindCounts[kind]++
	f.created++
	return id
}

// Sense returns the deposit of the given kind with the highest
// effective influence at (x, y) within maxRange. A deposit counts only
// inside its own influence radius. No match is a normal outcome and
// mutates nothing.
func (f *Field) Sense(x, y float32, kind Kind, maxRange float32) (Match, bool) {
	var buf [MaxQueryResults]Hit
	hits := f.grid.QueryKindInto(buf[:0], x, y, maxRange, kind)

	var best Match
	found := false
	for _, h := range hits {
		d := f.get(h.ID)
		if h.DistSq >= d.Radius*d.Radius {
			continue
		}
		dist := sqrt32(h.DistSq)
		influence := d.Strength * (1 - dist/d.Radius)
		if influence <= 0 {
			continue
		}
		if !found || influence > best.Influence {
			best = Match{
				ID:        d.ID,
				X:         d.X,
				Y:         d.Y,
				Kind:      d.Kind,
				Strength:  d.Strength,
				Quality:   d.Quality,
				Distance:  dist,
				Influence: influence,
			}
			found = true
		}
	}
	return best, found
}

// Direction returns the quality-weighted influence gradient toward
// deposits of a kind within range, normalized to unit length. ok is
// false when nothing influences the point. Read-only; callers that
// steer by the result mark the Sense match used themselves.
func (f *Field) Direction(x, y float32, kind Kind, maxRange float32) (dx, dy float32, ok bool) {
	var buf [MaxQueryResults]Hit
	hits := f.grid.QueryKindInto(buf[:0], x, y, maxRange, kind)

	var gx, gy float32
	for _, h := range hits {
		if h.DistSq == 0 {
			continue
		}
		d := f.get(h.ID)
		if h.DistSq >= d.Radius*d.Radius {
			continue
		}
		dist := sqrt32(h.DistSq)
		influence := d.Strength * (1 - dist/d.Radius) * d.Quality
		if influence <= 0 {
			continue
		}
		gx += (d.X - x) / dist * influence
		gy += (d.Y - y) / dist * influence
	}

	length := sqrt32(gx*gx + gy*gy)
	if length == 0 {
		return 0, 0, false
	}
	return gx / length, gy / length, true
}

// MarkUsed records that an agent's steering was influenced by the
// deposit: usage feeds quality with diminishing returns, and every
// reinforcement period the strength gets a bounded boost. Returns
// false for ids that are no longer live (stale from a previous tick).
func (f *Field) MarkUsed(id uint64) bool {
	slot, ok := f.slots[id]
	if !ok {
		return false
	}
	d := &f.deposits[slot]
	fc := &config.Cfg().Field

	d.UsageCount++
	d.LastUsedTick = f.tick
	d.Quality = minFloat(float32(fc.QualityCap), 1+float32(d.UsageCount)*float32(fc.QualityIncrement))

	if fc.ReinforcementPeriod > 0 && d.UsageCount%int32(fc.ReinforcementPeriod) == 0 {
		boosted := d.Strength * (1 + float32(fc.ReinforcementFraction))
		d.Strength = minFloat(boosted, d.MaxStrength*float32(fc.ReinforcementCapMultiple))
	}
	return true
}

// Step advances the field one tick: age and decay every deposit, apply
// removals, fire eligible spreading, then enforce the soft cap. Agent
// calls run before Step within a tick, so agents always sense the
// field as it existed at the end of the previous tick.
func (f *Field) Step() {
	f.tick++
	f.age()
	f.spread()
	f.enforceCap()
}

// age applies the per-tick decay rule and collects strength-floor
// removals, applied after the full sweep so update order within a tick
// never observes a partially-removed field.
func (f *Field) age() {
	cfg := config.Cfg()
	fc := &cfg.Field
	windowTicks := int32(fc.QualityWindow / cfg.Physics.DT)
	qualityCoeff := float32(fc.QualityCoeff)
	qualityFloor := float32(fc.QualityFloor)
	qualityRelax := float32(fc.QualityRelax)

	f.removeBuf = f.removeBuf[:0]

	for i := range f.deposits {
		d := &f.deposits[i]

		// Higher quality slows decay, floored so quality alone can
		// never halt it.
		qualityFactor := maxFloat(qualityFloor, 1-(d.Quality-1)*qualityCoeff)

		envMult := float32(1)
		if f.ground != nil {
			envMult = f.ground.DecayMultiplier(d.X, d.Y)
		}

		d.Strength -= d.DecayRate * qualityFactor * envMult
		if d.Strength < 0 {
			d.Strength = 0
		}

		// Unused trails slowly lose their expert status.
		if f.tick-d.LastUsedTick > windowTicks {
			d.Quality = maxFloat(1, d.Quality*qualityRelax)
		}

		if d.Strength <= 0 {
			f.removeBuf = append(f.removeBuf, d.ID)
		}
	}

	for _, id := range f.removeBuf {
		f.remove(id)
		f.expired++
	}
}

// spread fires eligible deposits exactly once each, emitting
// secondaries evenly on a circle. Secondary strength derives from the
// originator's creation strength, not its decayed strength; positions
// outside the world are skipped, not clamped.
func (f *Field) spread() {
	sc := &config.Cfg().Spread
	enabled := sc.Enabled
	damping := float32(sc.RadiusDamping)

	f.spawnBuf = f.spawnBuf[:0]

	for i := range f.deposits {
		d := &f.deposits[i]

		if d.Spread == SpreadPending && f.tick >= d.SpreadAt {
			d.Spread = SpreadEligible
		}
		if d.Spread != SpreadEligible || !enabled {
			continue
		}

		d.Spread = SpreadDone
		f.spreadFired++

		strength := d.MaxStrength * d.SpreadFactor
		radius := d.Radius * damping
		n := d.SpreadCount
		for k := int32(0); k < n; k++ {
			angle := 2 * math.Pi * float64(k) / float64(n)
			x := d.X + d.SpreadRadius*float32(math.Cos(angle))
			y := d.Y + d.SpreadRadius*float32(math.Sin(angle))
			if x < 0 || x >= f.worldW || y < 0 || y >= f.worldH {
				continue
			}
			f.spawnBuf = append(f.spawnBuf, spawnSpec{
				x:         x,
				y:         y,
				kind:      d.Kind,
				strength:  strength,
				decayRate: d.DecayRate,
				radius:    radius,
				origin:    d.ID,
			})
		}
	}

	for _, s := range f.spawnBuf {
		f.create(s.x, s.y, s.kind, s.strength, s.decayRate, s.radius, Opts{}, s.origin)
		f.spreadCreated++
	}
}

// enforceCap prunes lowest-strength deposits while the live count
// exceeds the configured soft cap.
func (f *Field) enforceCap() {
	maxDeposits := config.Cfg().Field.MaxDeposits
	if maxDeposits <= 0 || len(f.deposits) <= maxDeposits {
		return
	}

	excess := len(f.deposits) - maxDeposits
	order := make([]int, len(f.deposits))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return f.deposits[order[a]].Strength < f.deposits[order[b]].Strength
	})

	victims := make([]uint64, 0, excess)
	for _, idx := range order[:excess] {
		victims = append(victims, f.deposits[idx].ID)
	}
	for _, id := range victims {
		f.remove(id)
		f.pruned++
	}
}

// remove deletes a deposit from the live set and the index together.
// The two are in 1:1 correspondence; a partial removal is a broken
// invariant, not a runtime condition.
func (f *Field) remove(id uint64) {
	slot, ok := f.slots[id]
	if !ok {
		panic(fmt.Sprintf("pheromone: removing unknown deposit %d", id))
	}
	d := &f.deposits[slot]
	if !f.grid.Remove(id, d.X, d.Y) {
		panic(fmt.Sprintf("pheromone: deposit %d missing from index", id))
	}
	f.kindCounts[d.Kind]--

	last := len(f.deposits) - 1
	if slot != last {
		f.deposits[slot] = f.deposits[last]
		f.slots[f.deposits[slot].ID] = slot
	}
	f.deposits = f.deposits[:last]
	delete(f.slots, id)
}

// get resolves a live deposit the index reported. The index never
// holds an id the live set lacks.
func (f *Field) get(id uint64) *Deposit {
	slot, ok := f.slots[id]
	if !ok {
		panic(fmt.Sprintf("pheromone: index holds dead deposit %d", id))
	}
	return &f.deposits[slot]
}

// Get returns the live deposit with the given id, or nil. The pointer
// is valid until the next Step.
func (f *Field) Get(id uint64) *Deposit {
	if slot, ok := f.slots[id]; ok {
		return &f.deposits[slot]
	}
	return nil
}

// Deposits returns the live deposit slice for read-only enumeration.
// Valid until the next Step.
func (f *Field) Deposits() []Deposit {
	return f.deposits
}

// Count returns the number of live deposits.
func (f *Field) Count() int {
	return len(f.deposits)
}

// CountKind returns the number of live deposits of a kind.
func (f *Field) CountKind(kind Kind) int {
	return f.kindCounts[kind]
}

// Tick returns the number of completed steps.
func (f *Field) Tick() int32 {
	return f.tick
}

// NextID returns the most recently issued deposit ID.
func (f *Field) NextID() uint64 {
	return f.nextID
}

// Ground returns the ambient ground model, or nil.
func (f *Field) Ground() *Ground {
	return f.ground
}

// Stats sweeps the live set and returns field aggregates.
func (f *Field) Stats() Stats {
	s := Stats{
		Total:         len(f.deposits),
		KindCounts:    f.kindCounts,
		Created:       f.created,
		Expired:       f.expired,
		SpreadFired:   f.spreadFired,
		SpreadCreated: f.spreadCreated,
		Pruned:        f.pruned,
	}
	var strength, quality float64
	for i := range f.deposits {
		d := &f.deposits[i]
		strength += float64(d.Strength)
		quality += float64(d.Quality)
		s.TotalUsage += int64(d.UsageCount)
		if d.Quality > 1.5 {
			s.HighQuality++
		}
	}
	s.TotalStrength = float32(strength)
	if s.Total > 0 {
		s.AvgStrength = float32(strength / float64(s.Total))
		s.AvgQuality = float32(quality / float64(s.Total))
	}
	return s
}

// Clear removes every deposit.
func (f *Field) Clear() {
	for len(f.deposits) > 0 {
		f.remove(f.deposits[len(f.deposits)-1].ID)
	}
}

// Restore replaces the live set wholesale and rebuilds the index,
// preserving deposit IDs. Used when resuming from a saved run.
// Deposits with a zero ID are skipped. The lifecycle counters restart
// at zero; Stats readers must treat them as since-restore values.
func (f *Field) Restore(deposits []Deposit, tick int32, nextID uint64) {
	f.Clear()
	f.tick = tick
	if nextID > f.nextID {
		f.nextID = nextID
	}
	f.created = 0
	f.expired = 0
	f.spreadFired = 0
	f.spreadCreated = 0
	f.pruned = 0

	for _, d := range deposits {
		if d.ID == 0 {
			continue
		}
		if d.ID > f.nextID {
			f.nextID = d.ID
		}
		f.slots[d.ID] = len(f.deposits)
		f.deposits = append(f.deposits, d)
		f.grid.Insert(d.ID, d.X, d.Y, d.Kind)
		f.kindCounts[d.Kind]++
	}
}
