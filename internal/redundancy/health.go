package redundancy

// HealthConfig holds the per-replica score dynamics for HealthVote. The
// defaults come from flight heritage rather than a derived model, which is
// why they are configuration and not constants.
type HealthConfig struct {
	// Reward is added to a replica's score when it agrees with the voted
	// majority.
	Reward float64 `koanf:"reward"`
	// Penalty is subtracted from a replica's score when it disagrees with
	// the voted majority.
	Penalty float64 `koanf:"penalty"`
	// Floor and Ceiling clamp the score. A score saturated at the ceiling
	// has no further effect.
	Floor   float64 `koanf:"floor"`
	Ceiling float64 `koanf:"ceiling"`
}

// DefaultHealthConfig returns the standard score dynamics: +0.05 reward,
// -0.2 penalty, scores clamped to [0.1, 1.0].
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		Reward:  0.05,
		Penalty: 0.2,
		Floor:   0.1,
		Ceiling: 1.0,
	}
}

// Validate checks that the score dynamics are internally consistent.
func (hc HealthConfig) Validate() error {
	if hc.Floor <= 0 || hc.Ceiling <= hc.Floor {
		return errInvalidHealthBounds
	}
	if hc.Reward <= 0 || hc.Penalty <= 0 {
		return errInvalidHealthRates
	}
	return nil
}

// HealthVote protects a value with three replicas plus a per-replica
// reliability score. The score is a cumulative trend across many fault
// events and is consulted only when instantaneous majority voting is
// inconclusive, i.e. when all three replicas disagree.
type HealthVote[T comparable] struct {
	replicas [3]T
	scores   [3]float64
	cfg      HealthConfig
}

// NewHealthVote creates a container with all replicas set to initial and
// all scores at the ceiling, using the default score dynamics.
func NewHealthVote[T comparable](initial T) *HealthVote[T] {
	return NewHealthVoteWithConfig(initial, DefaultHealthConfig())
}

// NewHealthVoteWithConfig is NewHealthVote with explicit score dynamics.
// An invalid config falls back to the defaults; a container must always be
// constructible.
func NewHealthVoteWithConfig[T comparable](initial T, cfg HealthConfig) *HealthVote[T] {
	if cfg.Validate() != nil {
		cfg = DefaultHealthConfig()
	}
	c := &HealthVote[T]{
		replicas: [3]T{initial, initial, initial},
		cfg:      cfg,
	}
	c.resetScores()
	return c
}

// Get returns the voted value and adjusts replica scores. With a
// two-of-three majority every replica is rewarded or penalized according to
// whether it agreed with the winner. With all three replicas distinct,
// scoring is skipped and the replica with the strictly highest score wins,
// lowest index breaking ties.
func (c *HealthVote[T]) Get() T {
	winner, hasMajority := c.vote()
	if !hasMajority {
		return winner
	}
	for i := range c.replicas {
		c.adjustScore(i, c.replicas[i] == winner)
	}
	return winner
}

// Set overwrites all replicas with v and resets every score to the
// ceiling: an explicit write is ground truth and clears accumulated
// distrust.
func (c *HealthVote[T]) Set(v T) {
	c.replicas = [3]T{v, v, v}
	c.resetScores()
}

// HasErrors reports whether the replicas disagree.
func (c *HealthVote[T]) HasErrors() bool {
	return c.replicas[0] != c.replicas[1] || c.replicas[1] != c.replicas[2]
}

// Repair overwrites all replicas with the voted value without touching
// scores, and reports whether a discrepancy existed. Scores survive repair
// so the reliability trend spans fault events.
func (c *HealthVote[T]) Repair() bool {
	had := c.HasErrors()
	winner, _ := c.vote()
	c.replicas = [3]T{winner, winner, winner}
	return had
}

// Scores returns a copy of the per-replica scores for diagnostics.
func (c *HealthVote[T]) Scores() [3]float64 {
	return c.scores
}

// Replicas returns a copy of the replica slots for diagnostics.
func (c *HealthVote[T]) Replicas() [3]T {
	return c.replicas
}

// CorruptReplica overwrites a single replica slot out of band, for fault
// injection and verification only.
func (c *HealthVote[T]) CorruptReplica(i int, v T) {
	c.replicas[i] = v
}

// vote resolves the current winner without side effects. hasMajority is
// false only when all three replicas are mutually distinct, in which case
// the winner is the replica with the strictly highest score.
func (c *HealthVote[T]) vote() (winner T, hasMajority bool) {
	if c.replicas[0] == c.replicas[1] || c.replicas[0] == c.replicas[2] {
		return c.replicas[0], true
	}
	if c.replicas[1] == c.replicas[2] {
		return c.replicas[1], true
	}
	best := 0
	for i := 1; i < 3; i++ {
		if c.scores[i] > c.scores[best] {
			best = i
		}
	}
	return c.replicas[best], false
}

func (c *HealthVote[T]) adjustScore(i int, agreed bool) {
	if agreed {
		c.scores[i] = min(c.cfg.Ceiling, c.scores[i]+c.cfg.Reward)
	} else {
		c.scores[i] = max(c.cfg.Floor, c.scores[i]-c.cfg.Penalty)
	}
}

func (c *HealthVote[T]) resetScores() {
	for i := range c.scores {
		c.scores[i] = c.cfg.Ceiling
	}
}
