package redundancy

import (
	"math"
	"testing"
)

func TestHealthVote_ScoresConvergeUnderRepeatedCorruption(t *testing.T) {
	c := NewHealthVote(uint64(42))

	prev := c.Scores()[2]
	for k := 0; k < 8; k++ {
		c.CorruptReplica(2, 99)
		if got := c.Get(); got != 42 {
			t.Fatalf("iteration %d: Get() = %d, want 42", k, got)
		}

		scores := c.Scores()
		if scores[2] > prev {
			t.Fatalf("iteration %d: corrupted replica score rose %v -> %v", k, prev, scores[2])
		}
		if prev > 0.1 && scores[2] >= prev {
			t.Fatalf("iteration %d: score %v did not strictly decrease from %v", k, scores[2], prev)
		}
		prev = scores[2]

		for i := 0; i < 2; i++ {
			if scores[i] != 1.0 {
				t.Fatalf("iteration %d: uncorrupted replica %d score = %v, want 1.0", k, i, scores[i])
			}
		}
	}

	if got := c.Scores()[2]; got != 0.1 {
		t.Errorf("corrupted replica score = %v after sustained corruption, want floor 0.1", got)
	}
}

func TestHealthVote_ScoresRecoverAfterRepair(t *testing.T) {
	c := NewHealthVote(7)

	// Drive replica 1 down, then repair and let agreement reward it back.
	for k := 0; k < 5; k++ {
		c.CorruptReplica(1, 8)
		c.Get()
	}
	c.Repair()
	low := c.Scores()[1]
	if low >= 1.0 {
		t.Fatalf("score = %v before recovery, expected it depressed", low)
	}

	for k := 0; k < 20; k++ {
		c.Get()
	}
	if got := c.Scores()[1]; got != 1.0 {
		t.Errorf("score = %v after sustained agreement, want ceiling 1.0", got)
	}
}

func TestHealthVote_AllDistinctReturnsHighestScore(t *testing.T) {
	c := NewHealthVote(1)

	// Depress replica 0 so its score is below the others.
	c.CorruptReplica(0, 50)
	c.Get()
	c.Repair()

	// Now make all three mutually distinct. Replica 0 has score 0.8,
	// replicas 1 and 2 have 1.0; replica 1 wins the tie by lowest index.
	c.CorruptReplica(0, 10)
	c.CorruptReplica(1, 20)
	c.CorruptReplica(2, 30)

	if got := c.Get(); got != 20 {
		t.Errorf("Get() with all distinct = %d, want highest-score replica 1 (20)", got)
	}
}

func TestHealthVote_AllDistinctSkipsScoring(t *testing.T) {
	c := NewHealthVote(1)
	c.CorruptReplica(0, 10)
	c.CorruptReplica(1, 20)
	c.CorruptReplica(2, 30)

	before := c.Scores()
	c.Get()
	if c.Scores() != before {
		t.Errorf("scores changed on inconclusive vote: %v -> %v", before, c.Scores())
	}
}

func TestHealthVote_SetResetsReplicasAndScores(t *testing.T) {
	c := NewHealthVote(1)
	for k := 0; k < 4; k++ {
		c.CorruptReplica(2, 9)
		c.Get()
	}
	if c.Scores()[2] == 1.0 {
		t.Fatal("expected replica 2 score depressed before Set")
	}

	c.Set(5)
	if c.HasErrors() {
		t.Error("HasErrors() = true after Set")
	}
	for i, s := range c.Scores() {
		if s != 1.0 {
			t.Errorf("score %d = %v after Set, want 1.0", i, s)
		}
	}
}

func TestHealthVote_RepairDoesNotTouchScores(t *testing.T) {
	c := NewHealthVote(1)
	c.CorruptReplica(1, 3)
	c.Get()
	before := c.Scores()

	if !c.Repair() {
		t.Fatal("Repair() = false, want true")
	}
	if c.Scores() != before {
		t.Errorf("Repair changed scores: %v -> %v", before, c.Scores())
	}
	if c.HasErrors() {
		t.Error("HasErrors() = true after repair")
	}
}

func TestHealthVote_CustomConfig(t *testing.T) {
	cfg := HealthConfig{Reward: 0.1, Penalty: 0.5, Floor: 0.2, Ceiling: 2.0}
	c := NewHealthVoteWithConfig(1, cfg)

	if got := c.Scores()[0]; got != 2.0 {
		t.Fatalf("initial score = %v, want ceiling 2.0", got)
	}

	c.CorruptReplica(0, 9)
	c.Get()
	if got := c.Scores()[0]; math.Abs(got-1.5) > 1e-12 {
		t.Errorf("score after penalty = %v, want 1.5", got)
	}
}

func TestHealthVote_InvalidConfigFallsBackToDefaults(t *testing.T) {
	c := NewHealthVoteWithConfig(1, HealthConfig{Floor: 1.0, Ceiling: 0.5})
	if got := c.Scores()[0]; got != 1.0 {
		t.Errorf("initial score = %v, want default ceiling 1.0", got)
	}
}

func TestHealthConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     HealthConfig
		wantErr bool
	}{
		{"defaults valid", DefaultHealthConfig(), false},
		{"floor above ceiling", HealthConfig{Reward: 0.1, Penalty: 0.1, Floor: 1.0, Ceiling: 0.5}, true},
		{"zero floor", HealthConfig{Reward: 0.1, Penalty: 0.1, Floor: 0, Ceiling: 1.0}, true},
		{"zero reward", HealthConfig{Reward: 0, Penalty: 0.1, Floor: 0.1, Ceiling: 1.0}, true},
		{"negative penalty", HealthConfig{Reward: 0.1, Penalty: -0.2, Floor: 0.1, Ceiling: 1.0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
