// internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - Outcome: classification of a resolved guess (correct/retry/gameover).
//   - State: the per-user counters a round operates on.
//   - Effects: the side effects the caller must apply after a round.

package game

// Outcome classifies the result of resolving a single guess.
// Possible values:
//   - "correct":  the guess matched the issued solution.
//   - "retry":    wrong guess, lives remain, same question stays issued.
//   - "gameover": wrong guess spent the last life; counters were reset.
type Outcome string

const (
	OutcomeCorrect  Outcome = "correct"
	OutcomeRetry    Outcome = "retry"
	OutcomeGameOver Outcome = "gameover"
)

// State holds the mutable per-user game counters.
// Loaded from storage at round start, replaced by ResolveGuess's result.
type State struct {
	Lives  int // remaining allowed misses before game over
	Streak int // consecutive correct guesses since the last miss
	Score  int // points accumulated in the current game
}

// Effects lists what the caller has to do after a round.
// The engine only computes; persistence and question fetching stay outside.
type Effects struct {
	PersistStreak bool // write the streak row
	PersistLives  bool // write the lives column
	RecordGame    bool // append a game record and offer FinalScore as a high-score candidate
	FetchNext     bool // issue a new question; when false the current one stays
	FinalScore    int  // score at the moment the game ended (only set with RecordGame)
}
