package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/phiberoptik112/digital-ant-farm/components"
)

// parallelThreshold is the minimum ant count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// antSnapshot captures read-only state for the parallel agent phase.
type antSnapshot struct {
	Entity ecs.Entity
	ID     uint32
	Pos    components.Position
	Vel    components.Velocity
	Ant    components.Ant
}

// antIntent captures one ant's computed outputs. Workers only write
// here; all ECS and field mutation happens later in applyIntents.
type antIntent struct {
	NewHeading float32
	NewVelX    float32
	NewVelY    float32
	NewPosX    float32
	NewPosY    float32

	NewState      components.AntState
	NewTargetFood int32
	NewFleeTicks  int32
	NewTrailTimer int32

	MarkUsed    uint64 // deposit that influenced steering; 0 = none
	DepositKind int8   // pheromone kind to lay this tick; -1 = none
	WantHarvest int32  // food source index to harvest; -1 = none
	WantDeliver bool
}

// workChunk is a range of snapshot indices for one worker.
type workChunk struct {
	start, end int
	dt         float32
}

// parallelState holds the worker pool for the agent phase. Sensing
// needs no per-worker scratch: the field's query buffers live on the
// worker's stack.
type parallelState struct {
	snapshots  []antSnapshot
	intents    []antIntent
	numWorkers int

	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup
	running  bool
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]antSnapshot, 0, 256),
		intents:    make([]antIntent, 0, 256),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk.start, chunk.end, chunk.dt)
			p.doneChan <- struct{}{}
		}
	}
}

// buildSnapshots copies live ant state into the snapshot buffer.
// Single-threaded; runs before any worker touches the data.
func (g *Game) buildSnapshots() {
	g.par.snapshots = g.par.snapshots[:0]

	query := g.antFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, ant := query.Get()

		if ant.Dead {
			continue
		}

		g.par.snapshots = append(g.par.snapshots, antSnapshot{
			Entity: entity,
			ID:     ant.ID,
			Pos:    *pos,
			Vel:    *vel,
			Ant:    *ant,
		})
	}
}

// computeAnts fills the intent buffer for every snapshot, in parallel
// when the population is large enough. Workers only read the field and
// food system, so chunks are independent.
func (g *Game) computeAnts(dt float32) {
	n := len(g.par.snapshots)
	if n == 0 {
		return
	}

	if cap(g.par.intents) < n {
		g.par.intents = make([]antIntent, n)
	}
	g.par.intents = g.par.intents[:n]

	if n < parallelThreshold {
		g.computeChunk(0, n, dt)
		return
	}
	g.computeParallel(n, dt)
}

// computeParallel dispatches chunks to the worker pool and waits.
func (g *Game) computeParallel(n int, dt float32) {
	if !g.par.running {
		g.par.startWorkers(g)
	}

	numWorkers := g.par.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		g.par.workChan <- workChunk{start: start, end: end, dt: dt}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-g.par.doneChan
	}
}
