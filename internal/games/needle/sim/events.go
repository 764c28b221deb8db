package sim

// EventKind identifies what happened during a tick.
type EventKind int

const (
	EventRunStarted        EventKind = iota
	EventRingResolved                // Hit
	EventStreakChanged               // Value = streak, Previous
	EventMultiplierChanged           // Value = multiplier, Previous
	EventStreakBroken                // Previous = streak that was lost
	EventBestStreakBeaten            // Value = new best, Previous = old best
	EventPointsEarned                // Value = points, Multiplier, Total = score
	EventHighScoreBeaten             // Value = new high score, Previous
	EventSpeedChanged                // Speed = target speed, PreviousSpeed
	EventSpeedZero                   // Speed = minimum speed
	EventRunEnded                    // Snapshot
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventRunStarted:
		return "run_started"
	case EventRingResolved:
		return "ring_resolved"
	case EventStreakChanged:
		return "streak_changed"
	case EventMultiplierChanged:
		return "multiplier_changed"
	case EventStreakBroken:
		return "streak_broken"
	case EventBestStreakBeaten:
		return "best_streak_beaten"
	case EventPointsEarned:
		return "points_earned"
	case EventHighScoreBeaten:
		return "high_score_beaten"
	case EventSpeedChanged:
		return "speed_changed"
	case EventSpeedZero:
		return "speed_zero"
	case EventRunEnded:
		return "run_ended"
	default:
		return "unknown"
	}
}

// Event is a single notification from the simulation. Which fields are
// set depends on Kind.
type Event struct {
	Kind          EventKind
	Tick          uint64
	Hit           HitResult
	Value         int
	Previous      int
	Multiplier    int
	Total         int
	Speed         float64
	PreviousSpeed float64
	Snapshot      *Snapshot
}

// Handler receives events.
type Handler func(Event)

type emitter interface {
	Push(e Event)
}

// Bus queues events raised during a tick and hands them to subscribers
// once the tick is complete, so handlers always see fully advanced state.
type Bus struct {
	all    []Handler
	byKind map[EventKind][]Handler
	queue  []Event
	tick   uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{byKind: make(map[EventKind][]Handler)}
}

// Subscribe registers h for every event.
func (b *Bus) Subscribe(h Handler) {
	b.all = append(b.all, h)
}

// SubscribeKind registers h for one kind of event.
func (b *Bus) SubscribeKind(kind EventKind, h Handler) {
	b.byKind[kind] = append(b.byKind[kind], h)
}

// SetTick stamps subsequently pushed events.
func (b *Bus) SetTick(tick uint64) {
	b.tick = tick
}

// Push queues an event.
func (b *Bus) Push(e Event) {
	e.Tick = b.tick
	b.queue = append(b.queue, e)
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	return len(b.queue)
}

// Flush delivers queued events in order and returns them.
// Catch-all subscribers run before kind subscribers for each event.
func (b *Bus) Flush() []Event {
	if len(b.queue) == 0 {
		return nil
	}
	out := make([]Event, len(b.queue))
	copy(out, b.queue)
	b.queue = b.queue[:0]

	for _, e := range out {
		for _, h := range b.all {
			h(e)
		}
		for _, h := range b.byKind[e.Kind] {
			h(e)
		}
	}
	return out
}
