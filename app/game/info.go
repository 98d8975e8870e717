package game

import (
	"github.com/notnil/chess"
)

// Info is the player-facing summary of a game. Ratings and rule ids of the
// opponent stay hidden until the game has ended.
type Info struct {
	White     string
	Black     string
	WhiteElo  int
	BlackElo  int
	WhiteRule int
	BlackRule int
}

// Info returns the summary as seen by viewer. NoColor sees only names until
// the game ends.
func (g *ChessGame) Info(viewer chess.Color) Info {
	info := Info{White: g.White.Name, Black: g.Black.Name}
	if viewer == chess.White || g.Over() {
		info.WhiteElo = g.White.Elo
		info.WhiteRule = g.White.Rule
	}
	if viewer == chess.Black || g.Over() {
		info.BlackElo = g.Black.Elo
		info.BlackRule = g.Black.Rule
	}
	return info
}

// Revealed is the full summary, used for hot-seat games where both players
// share a screen.
func (g *ChessGame) Revealed() Info {
	return Info{
		White:     g.White.Name,
		Black:     g.Black.Name,
		WhiteElo:  g.White.Elo,
		BlackElo:  g.Black.Elo,
		WhiteRule: g.White.Rule,
		BlackRule: g.Black.Rule,
	}
}
