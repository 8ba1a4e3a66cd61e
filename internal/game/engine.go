// internal/game/engine.go
//
// Round outcome engine for a single guess.
// Responsibilities:
//   - Compute the next game state from (state, guess, issued solution).
//   - Classify the round: correct, retry, or game over.
//   - Report the side effects the caller must apply (persist counters,
//     append the game record, fetch the next question).
//
// Notes:
//   - The engine is pure arithmetic: no storage, no clock, no I/O, no errors.
//     The caller resolves identity and loads/saves state around it.
//   - The issued solution must be the one bound to the question currently
//     shown to this user; the session store owns that association.

package game

const (
	// StartingLives is the lives count a fresh game begins with.
	StartingLives = 3

	// CorrectPoints is awarded per correct guess.
	CorrectPoints = 10
)

// ResolveGuess applies one guess to the given state.
// Returns: the next state, the round outcome, and the effects to apply.
//
// Rules:
//   - Correct guess: score += CorrectPoints, streak += 1, lives unchanged.
//     Effects: persist streak, fetch a new question.
//   - Wrong guess with lives remaining after the decrement: retry.
//     Streak resets to 0. Effects: persist lives and streak; the current
//     question stays issued so the player can try the same puzzle again.
//   - Wrong guess spending the last life: game over. The final score is
//     recorded (and offered as a high-score candidate) and the counters
//     reset to a fresh game: {lives: StartingLives, streak: 0, score: 0}.
func ResolveGuess(s State, guess, solution int) (State, Outcome, Effects) {
	if guess == solution {
		s.Score += CorrectPoints
		s.Streak++
		return s, OutcomeCorrect, Effects{PersistStreak: true, FetchNext: true}
	}

	s.Streak = 0
	if s.Lives > 0 {
		s.Lives--
	}
	if s.Lives > 0 {
		return s, OutcomeRetry, Effects{PersistLives: true, PersistStreak: true}
	}

	// Last life spent: close out the game and reset for the next one.
	final := s.Score
	s = State{Lives: StartingLives, Streak: 0, Score: 0}
	return s, OutcomeGameOver, Effects{
		PersistLives:  true,
		PersistStreak: true,
		RecordGame:    true,
		FinalScore:    final,
	}
}
