// internal/question/question.go
//
// Types for the image-puzzle question provider.
// A Question pairs the puzzle image the player sees with the numeric
// solution the server validates guesses against. The solution never
// leaves the server.

package question

import "context"

// Question is one puzzle issued to a player.
type Question struct {
	ImageURL string `json:"question"`
	Solution int    `json:"solution"`
}

// Default is served when the provider cannot be reached or returns
// garbage. The player sees a placeholder instead of an error page.
var Default = Question{ImageURL: "default-image-url", Solution: 0}

// Source supplies fresh questions.
// Implementations may hit an external API (Client) or return canned
// questions in tests.
type Source interface {
	Fetch(ctx context.Context) (Question, error)
}
