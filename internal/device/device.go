// Package device implements the concurrency-safe effect buffer of a virtual
// controller: a bounded set of effect clones split into ready and playing
// collections, a simulated clock with 32-bit wraparound, and the per-poll
// aggregation of playing effects into one ordered per-axis force vector.
package device

import (
	"sort"
	"sync"

	"github.com/senna-k/ffbsim/internal/direction"
	"github.com/senna-k/ffbsim/internal/effect"
	"github.com/senna-k/ffbsim/internal/units"
)

// entry pairs an owned effect clone with its playback bookkeeping.
type entry struct {
	eff        *effect.Effect
	startTime  uint32 // relative timestamp at which playback begins
	iterations int    // full restarts remaining after the current pass
}

// Device owns the effect buffer of one virtual controller. An identifier is
// in at most one of the two collections at a time. All methods are safe for
// concurrent use by an application thread and a polling thread; structural
// mutations and Play take the write lock, read queries the read lock.
type Device struct {
	mu       sync.RWMutex
	ready    map[effect.ID]*entry
	playing  map[effect.ID]*entry
	base     uint32 // simulated time base subtracted from incoming timestamps
	lastPlay uint32 // relative timestamp of the most recent unpaused poll
	paused   bool
	muted    bool
}

func New() *Device {
	return &Device{
		ready:   make(map[effect.ID]*entry),
		playing: make(map[effect.ID]*entry),
	}
}

// AddOrUpdate loads eff onto the device. If the identifier is already
// present, in either collection, the stored clone's parameters are
// synchronized in place and playback state is untouched. Otherwise a new
// clone enters the ready collection, failing when the buffer is full.
func (d *Device) AddOrUpdate(eff *effect.Effect) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if en := d.lookup(eff.ID()); en != nil {
		return en.eff.SyncFrom(eff)
	}
	if len(d.ready)+len(d.playing) >= units.MaxEffects {
		return ErrBufferFull
	}
	d.ready[eff.ID()] = &entry{eff: eff.Clone()}
	return nil
}

// Start moves a ready effect into the playing collection. The effect must be
// completely defined. Its start time is the relative timestamp plus the
// effect's start delay; iterations is the total number of passes to play.
func (d *Device) Start(id effect.ID, iterations int, timestamp uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if iterations < 1 {
		return ErrIterations
	}
	en, ok := d.ready[id]
	if !ok {
		if _, playing := d.playing[id]; playing {
			return ErrNotReady
		}
		return ErrNotFound
	}
	if err := en.eff.Complete(); err != nil {
		return err
	}
	rel := timestamp - d.base
	en.startTime = rel + en.eff.StartDelay()
	en.iterations = iterations - 1
	delete(d.ready, id)
	d.playing[id] = en
	return nil
}

// Play advances the simulated clock to timestamp and returns the summed
// ordered magnitude vector of every playing effect. Timestamps are 32-bit
// and wrap; modular arithmetic keeps relative time monotonic across the
// wraparound. While paused the time base absorbs the elapsed delta instead,
// so paused wall time never counts toward any effect's clock. While muted
// contributions are computed, advancing lifecycle state, but the returned
// vector is zero.
func (d *Device) Play(timestamp uint32) direction.Ordered {
	d.mu.Lock()
	defer d.mu.Unlock()

	rel := timestamp - d.base
	if d.paused {
		d.base += rel - d.lastPlay
		return direction.Ordered{}
	}
	d.lastPlay = rel

	var sum direction.Ordered
	for _, id := range d.playingIDs() {
		en := d.playing[id]
		elapsed := rel - en.startTime
		if int32(elapsed) < 0 {
			continue // still inside the start delay
		}
		dur, _ := en.eff.Duration()
		if elapsed < dur {
			sum.Add(en.eff.ComputeComponents(elapsed))
			continue
		}
		if en.iterations > 0 {
			en.iterations--
			en.startTime = rel
			sum.Add(en.eff.ComputeComponents(0))
			continue
		}
		delete(d.playing, id)
		d.ready[id] = en
	}
	if d.muted {
		return direction.Ordered{}
	}
	return sum
}

// Stop moves a playing effect back to ready without altering its parameters.
func (d *Device) Stop(id effect.ID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	en, ok := d.playing[id]
	if !ok {
		return ErrNotPlaying
	}
	delete(d.playing, id)
	d.ready[id] = en
	return nil
}

// StopAll moves every playing effect back to ready.
func (d *Device) StopAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, en := range d.playing {
		delete(d.playing, id)
		d.ready[id] = en
	}
}

// Remove erases the effect from whichever collection holds it.
func (d *Device) Remove(id effect.ID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.ready[id]; ok {
		delete(d.ready, id)
		return nil
	}
	if _, ok := d.playing[id]; ok {
		delete(d.playing, id)
		return nil
	}
	return ErrNotFound
}

// Clear removes every effect. Pause and mute state are unaffected.
func (d *Device) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ready = make(map[effect.ID]*entry)
	d.playing = make(map[effect.ID]*entry)
}

// SetPaused freezes or resumes the simulated clock.
func (d *Device) SetPaused(paused bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paused = paused
}

// SetMuted suppresses or restores the returned force vector.
func (d *Device) SetMuted(muted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.muted = muted
}

func (d *Device) Paused() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.paused
}

func (d *Device) Muted() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.muted
}

// IsPlaying reports whether the effect is playing and past its start delay.
// Entries still inside the delay window are tracked internally but not
// reported.
func (d *Device) IsPlaying(id effect.ID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	en, ok := d.playing[id]
	if !ok {
		return false
	}
	return int32(d.lastPlay-en.startTime) >= 0
}

// IsOnDevice reports whether the identifier is loaded in either collection.
func (d *Device) IsOnDevice(id effect.ID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lookup(id) != nil
}

// ReadyCount returns the number of loaded, non-playing effects.
func (d *Device) ReadyCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.ready)
}

// PlayingCount returns the number of effects in the playing collection,
// including those still inside their start delay.
func (d *Device) PlayingCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.playing)
}

// Empty reports whether no effects are loaded.
func (d *Device) Empty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.ready) == 0 && len(d.playing) == 0
}

func (d *Device) lookup(id effect.ID) *entry {
	if en, ok := d.ready[id]; ok {
		return en
	}
	if en, ok := d.playing[id]; ok {
		return en
	}
	return nil
}

// playingIDs returns the playing identifiers in ascending order so that
// floating-point summation is deterministic across polls.
func (d *Device) playingIDs() []effect.ID {
	ids := make([]effect.ID, 0, len(d.playing))
	for id := range d.playing {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
