package game

import "testing"

func TestResolveGuess_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		guess    int
		solution int
		want     State
		outcome  Outcome
		effects  Effects
	}{
		{
			name:     "correct guess on fresh game",
			state:    State{Lives: 3, Streak: 0, Score: 0},
			guess:    7,
			solution: 7,
			want:     State{Lives: 3, Streak: 1, Score: 10},
			outcome:  OutcomeCorrect,
			effects:  Effects{PersistStreak: true, FetchNext: true},
		},
		{
			name:     "wrong guess on last life ends the game",
			state:    State{Lives: 1, Streak: 4, Score: 40},
			guess:    2,
			solution: 9,
			want:     State{Lives: 3, Streak: 0, Score: 0},
			outcome:  OutcomeGameOver,
			effects:  Effects{PersistLives: true, PersistStreak: true, RecordGame: true, FinalScore: 40},
		},
		{
			name:     "wrong guess with lives remaining keeps the question",
			state:    State{Lives: 2, Streak: 2, Score: 20},
			guess:    3,
			solution: 9,
			want:     State{Lives: 1, Streak: 0, Score: 20},
			outcome:  OutcomeRetry,
			effects:  Effects{PersistLives: true, PersistStreak: true},
		},
		{
			name:     "correct guess extends a streak",
			state:    State{Lives: 2, Streak: 5, Score: 50},
			guess:    0,
			solution: 0,
			want:     State{Lives: 2, Streak: 6, Score: 60},
			outcome:  OutcomeCorrect,
			effects:  Effects{PersistStreak: true, FetchNext: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, outcome, fx := ResolveGuess(tc.state, tc.guess, tc.solution)
			if got != tc.want {
				t.Errorf("state = %+v, want %+v", got, tc.want)
			}
			if outcome != tc.outcome {
				t.Errorf("outcome = %q, want %q", outcome, tc.outcome)
			}
			if fx != tc.effects {
				t.Errorf("effects = %+v, want %+v", fx, tc.effects)
			}
		})
	}
}

// A correct guess must never cost a life, and always pays exactly
// CorrectPoints and one streak step, from any live state.
func TestResolveGuess_CorrectNeverCostsLives(t *testing.T) {
	for lives := 1; lives <= 3; lives++ {
		for streak := 0; streak <= 6; streak++ {
			s := State{Lives: lives, Streak: streak, Score: streak * 10}
			next, outcome, fx := ResolveGuess(s, 42, 42)
			if outcome != OutcomeCorrect {
				t.Fatalf("lives=%d streak=%d: outcome = %q", lives, streak, outcome)
			}
			if next.Lives != lives {
				t.Errorf("lives changed on correct guess: %d -> %d", lives, next.Lives)
			}
			if next.Score != s.Score+CorrectPoints {
				t.Errorf("score = %d, want %d", next.Score, s.Score+CorrectPoints)
			}
			if next.Streak != streak+1 {
				t.Errorf("streak = %d, want %d", next.Streak, streak+1)
			}
			if fx.PersistLives {
				t.Error("correct guess should not persist lives")
			}
		}
	}
}

// A wrong guess always zeroes the streak and spends exactly one life.
// Lives never go negative; hitting zero is the game-over trigger.
func TestResolveGuess_WrongGuessSpendsOneLife(t *testing.T) {
	for lives := 1; lives <= 3; lives++ {
		s := State{Lives: lives, Streak: 9, Score: 90}
		next, outcome, fx := ResolveGuess(s, 1, 2)
		if next.Streak != 0 {
			t.Errorf("lives=%d: streak = %d, want 0", lives, next.Streak)
		}
		if lives > 1 {
			if outcome != OutcomeRetry {
				t.Errorf("lives=%d: outcome = %q, want retry", lives, outcome)
			}
			if next.Lives != lives-1 {
				t.Errorf("lives=%d: next lives = %d, want %d", lives, next.Lives, lives-1)
			}
			if fx.FetchNext {
				t.Error("retry must not fetch a new question")
			}
			continue
		}
		if outcome != OutcomeGameOver {
			t.Errorf("outcome = %q, want gameover", outcome)
		}
		if next != (State{Lives: StartingLives, Streak: 0, Score: 0}) {
			t.Errorf("post-reset state = %+v", next)
		}
		if !fx.RecordGame || fx.FinalScore != 90 {
			t.Errorf("effects = %+v, want game recorded with final score 90", fx)
		}
		if fx.FetchNext {
			t.Error("game over must keep the current question issued")
		}
	}
}

// The engine is pure: same inputs, same outputs, no hidden state.
func TestResolveGuess_Pure(t *testing.T) {
	s := State{Lives: 2, Streak: 3, Score: 30}
	n1, o1, f1 := ResolveGuess(s, 5, 8)
	n2, o2, f2 := ResolveGuess(s, 5, 8)
	if n1 != n2 || o1 != o2 || f1 != f2 {
		t.Errorf("second call diverged: (%+v %q %+v) vs (%+v %q %+v)", n1, o1, f1, n2, o2, f2)
	}
	if s != (State{Lives: 2, Streak: 3, Score: 30}) {
		t.Errorf("input state mutated: %+v", s)
	}
}
