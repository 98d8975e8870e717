package app

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/notnil/chess"

	"github.com/FelixBlom97/EloStealo/app/game"
	"github.com/FelixBlom97/EloStealo/app/models"
)

// BuildHistory replays a stored game and annotates every move with SAN and
// the positions around it. The PGN trailer token comes from the chess
// library, which knows nothing about rule-mates; the Result tag is ours.
func BuildHistory(sg *StoredGame) (models.GameHistory, error) {
	g := sg.Game
	pg := chess.NewGame()
	pg.AddTagPair("Event", "EloStealo")
	pg.AddTagPair("White", g.White.Name)
	pg.AddTagPair("Black", g.Black.Name)
	pg.AddTagPair("WhiteElo", strconv.Itoa(g.White.Elo))
	pg.AddTagPair("BlackElo", strconv.Itoa(g.Black.Elo))
	pg.AddTagPair("WhiteStealo", strconv.Itoa(g.White.Rule))
	pg.AddTagPair("BlackStealo", strconv.Itoa(g.Black.Rule))
	pg.AddTagPair("Result", pgnResult(g.Result()))
	if g.Method() != game.MethodNone {
		pg.AddTagPair("Termination", string(g.Method()))
	}

	actions := g.Actions()
	h := models.GameHistory{
		GameID:   sg.ID,
		Encoding: string(sg.Encoding),
		Data:     sg.Data,
		Actions:  make([]string, 0, len(actions)),
		Moves:    []models.HistoryMove{},
		Result:   string(g.Result()),
	}

	for i, a := range actions {
		h.Actions = append(h.Actions, a.String())
		switch a.Kind {
		case game.KindMove:
			pos := pg.Position()
			cm := matching(pg.ValidMoves(), a.Move)
			if cm == nil {
				return models.GameHistory{}, fmt.Errorf("action %d (%s): %w", i, a, game.ErrIllegalMove)
			}
			fenBefore := pos.String()
			san := chess.AlgebraicNotation{}.Encode(pos, cm)
			if err := pg.Move(cm); err != nil {
				return models.GameHistory{}, fmt.Errorf("action %d (%s): %w", i, a, err)
			}
			h.Moves = append(h.Moves, models.HistoryMove{
				Ply:        i + 1,
				MoveNumber: fullMoveNumber(fenBefore),
				Color:      sideLetter(pos.Turn()),
				MoveUCI:    chess.UCINotation{}.Encode(pos, cm),
				MoveSAN:    san,
				FenBefore:  fenBefore,
				FenAfter:   pg.Position().String(),
			})
		case game.KindResign:
			pg.Resign(a.Side)
		case game.KindAcceptDraw:
			_ = pg.Draw(chess.DrawOffer)
		case game.KindDeclareDraw:
			if err := pg.Draw(chess.ThreefoldRepetition); err != nil {
				_ = pg.Draw(chess.FiftyMoveRule)
			}
		}
	}
	h.PGN = pg.String()
	return h, nil
}

func matching(moves []*chess.Move, m game.Move) *chess.Move {
	for _, cm := range moves {
		if m.Matches(cm) {
			return cm
		}
	}
	return nil
}

func pgnResult(r game.Result) string {
	switch r {
	case game.ResultWhite:
		return "1-0"
	case game.ResultBlack:
		return "0-1"
	case game.ResultDraw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

func sideLetter(c chess.Color) string {
	if c == chess.Black {
		return "b"
	}
	return "w"
}

// fullMoveNumber reads the last FEN field. Malformed input counts as move 1.
func fullMoveNumber(fen string) int {
	parts := strings.Split(fen, " ")
	n := 1
	if len(parts) >= 6 {
		fmt.Sscanf(parts[5], "%d", &n)
	}
	return n
}

// GetHistory returns the replay, the stored bytes and a PGN export.
func GetHistory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	sg, ok := loadGame(ctx, c, id)
	if !ok {
		return
	}
	h, err := BuildHistory(sg)
	if err != nil {
		respondStoreError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, h)
}
