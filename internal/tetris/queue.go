package tetris

import "math/rand"

// Queue defaults.
const (
	MinLookahead        = 3
	DefaultSlowChance   = 0.15
	DefaultSlowMinLevel = 3
)

// QueueOptions tunes the randomizer.
type QueueOptions struct {
	Lookahead    int     // Buffered upcoming pieces, at least MinLookahead
	SlowPieces   bool    // Enables adaptive SLOW injection
	SlowChance   float64 // Per-draw injection probability
	SlowMinLevel int     // Level at which injection starts
}

// DefaultQueueOptions returns the marathon randomizer settings.
func DefaultQueueOptions() QueueOptions {
	return QueueOptions{
		Lookahead:    MinLookahead,
		SlowPieces:   true,
		SlowChance:   DefaultSlowChance,
		SlowMinLevel: DefaultSlowMinLevel,
	}
}

// Queue supplies pieces from successive shuffled 7-bags through a lookahead
// buffer, occasionally slipping a SLOW piece in front once the level is high
// enough.
type Queue struct {
	rng    *rand.Rand
	opts   QueueOptions
	bag    []Kind
	buffer []Kind
}

// NewQueue creates a queue seeded for deterministic play.
func NewQueue(seed int64, opts QueueOptions) *Queue {
	if opts.Lookahead < MinLookahead {
		opts.Lookahead = MinLookahead
	}
	if opts.SlowMinLevel < 1 {
		opts.SlowMinLevel = DefaultSlowMinLevel
	}
	q := &Queue{
		rng:  rand.New(rand.NewSource(seed)),
		opts: opts,
	}
	q.fill()
	return q
}

// refillBag shuffles a fresh bag of the seven standard kinds.
func (q *Queue) refillBag() {
	bag := StandardKinds
	q.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})

	// Avoid a repeat straddling the bag boundary.
	if n := len(q.buffer); n > 0 && bag[0] == q.buffer[n-1] {
		for i := 1; i < len(bag); i++ {
			if bag[i] != bag[0] {
				bag[0], bag[i] = bag[i], bag[0]
				break
			}
		}
	}

	q.bag = bag[:]
}

// fill tops the lookahead buffer up to its configured depth.
func (q *Queue) fill() {
	for len(q.buffer) < q.opts.Lookahead {
		if len(q.bag) == 0 {
			q.refillBag()
		}
		q.buffer = append(q.buffer, q.bag[0])
		q.bag = q.bag[1:]
	}
}

// Draw removes and returns the next piece. level is the current score level
// and gates SLOW injection.
func (q *Queue) Draw(level int) Kind {
	q.fill()

	if q.opts.SlowPieces && level >= q.opts.SlowMinLevel && q.buffer[0] != KindSlow {
		if q.rng.Float64() < q.opts.SlowChance {
			q.buffer = append([]Kind{KindSlow}, q.buffer...)
		}
	}

	head := q.buffer[0]
	q.buffer = q.buffer[1:]
	q.fill()
	return head
}

// Peek returns up to n upcoming pieces without consuming them.
// The returned slice is a copy.
func (q *Queue) Peek(n int) []Kind {
	if n > len(q.buffer) {
		n = len(q.buffer)
	}
	if n <= 0 {
		return nil
	}
	return append([]Kind(nil), q.buffer[:n]...)
}

// Len returns the current lookahead depth.
func (q *Queue) Len() int {
	return len(q.buffer)
}
