// internal/httpserver/routes_game.go
//
// Handlers for the game itself.
//   - GET  /game/state  → current lives/streak/score + the issued question,
//                         issuing a fresh one when none is pending.
//   - POST /game/guess  → one round: resolve the guess against the issued
//                         solution, persist the outcome, answer with
//                         feedback and the next state.
//   - GET  /stats/me    → high score, streak, games played.
//   - GET  /leaderboard → all-time top finished-game scores.
//
// A round holds the per-user session lock from state load to persistence
// so concurrent guesses for the same user resolve one at a time.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bananagame/go-server/internal/decoder"
	"github.com/bananagame/go-server/internal/game"
	"github.com/bananagame/go-server/internal/question"
	"github.com/bananagame/go-server/internal/store"
)

// stateRes is returned by GET /game/state.
type stateRes struct {
	Lives    int    `json:"lives"`
	Streak   int    `json:"streak"`
	Score    int    `json:"score"`
	Question string `json:"question"`
}

// guessReq/guessRes are the POST /game/guess payloads.
type guessReq struct {
	Guess int `json:"guess"`
}
type guessRes struct {
	Outcome    game.Outcome `json:"outcome"`
	Feedback   string       `json:"feedback"`
	Lives      int          `json:"lives"`
	Streak     int          `json:"streak"`
	Score      int          `json:"score"`
	Question   string       `json:"question"`
	FinalScore int          `json:"finalScore,omitempty"`
}

// handleState reports the player's counters and the issued question.
// When no question is pending (fresh login, or the previous game ended)
// a new one is fetched and issued here.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	me, err := currentUser(r)
	if err != nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	u, err := s.store.GetUser(r.Context(), me.ID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"user_not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	streak, err := s.store.GetStreak(r.Context(), me.ID)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}

	q, ok := s.sessions.Current(me.ID)
	if !ok {
		q = s.issueQuestion(r, me.ID)
	}
	writeJSON(w, stateRes{
		Lives:    u.Lives,
		Streak:   streak,
		Score:    u.Score,
		Question: q.ImageURL,
	})
}

// handleGuess resolves one round for the authenticated user.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	me, err := currentUser(r)
	if err != nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req guessReq
	if err := decoder.DecodeJSONBody(w, r, &req); err != nil {
		return
	}

	// Serialize rounds per user: two concurrent guesses must not both
	// decrement lives from the same stale read.
	lock := s.sessions.Lock(me.ID)
	lock.Lock()
	defer lock.Unlock()

	issued, ok := s.sessions.Current(me.ID)
	if !ok {
		http.Error(w, `{"error":"no_question","hint":"fetch /game/state first"}`, http.StatusConflict)
		return
	}

	u, err := s.store.GetUser(r.Context(), me.ID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"user_not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	streak, err := s.store.GetStreak(r.Context(), me.ID)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}

	state := game.State{Lives: u.Lives, Streak: streak, Score: u.Score}
	next, outcome, fx := game.ResolveGuess(state, req.Guess, issued.Solution)

	// Persist; one retry before giving up so a transient failure does not
	// end the round, and a hard failure leaves state untouched (single tx).
	if err := s.store.ApplyRound(r.Context(), me.ID, next, fx); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"user_not_found"}`, http.StatusNotFound)
			return
		}
		log.Warn().Err(err).Int64("user", me.ID).Msg("round persist failed, retrying")
		if err := s.store.ApplyRound(r.Context(), me.ID, next, fx); err != nil {
			log.Error().Err(err).Int64("user", me.ID).Msg("round persist failed")
			http.Error(w, `{"error":"try_again"}`, http.StatusInternalServerError)
			return
		}
	}

	res := guessRes{
		Outcome:  outcome,
		Lives:    next.Lives,
		Streak:   next.Streak,
		Score:    next.Score,
		Question: issued.ImageURL,
	}
	switch outcome {
	case game.OutcomeCorrect:
		res.Feedback = "Predicted Correctly!"
	case game.OutcomeRetry:
		res.Feedback = fmt.Sprintf("Incorrect. Try again! %d Free Lives remaining.", next.Lives)
	case game.OutcomeGameOver:
		res.FinalScore = fx.FinalScore
		res.Feedback = fmt.Sprintf("Game Over! The correct answer was %d. Your total score is %d. Try again!",
			issued.Solution, fx.FinalScore)
		// The finished question is shown one last time in this response;
		// the next state fetch starts the new game with a fresh puzzle.
		s.sessions.Clear(me.ID)
	}
	if fx.FetchNext {
		q := s.issueQuestion(r, me.ID)
		res.Question = q.ImageURL
	}
	writeJSON(w, res)
}

// handleStats reports the authenticated user's play history.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me, err := currentUser(r)
	if err != nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	st, err := s.store.StatsFor(r.Context(), me.ID)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, st)
}

// handleLeaderboard returns the all-time top ten finished games.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.Leaderboard(r.Context(), 10)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

// issueQuestion fetches a question and binds it to the user.
// Provider failures degrade to the default placeholder question instead
// of surfacing an error to the player.
func (s *Server) issueQuestion(r *http.Request, userID int64) question.Question {
	q, err := s.questions.Fetch(r.Context())
	if err != nil {
		log.Warn().Err(err).Int64("user", userID).Msg("question provider unavailable, serving default")
		q = question.Default
	}
	s.sessions.Issue(userID, q)
	return q
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}
