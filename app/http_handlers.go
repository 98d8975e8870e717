package app

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/notnil/chess"

	"github.com/FelixBlom97/EloStealo/app/game"
	"github.com/FelixBlom97/EloStealo/app/models"
	"github.com/FelixBlom97/EloStealo/app/rules"
)

const requestTimeout = 5 * time.Second

// errUnchanged marks a request that was rejected by the game but still
// answers with the current state.
var errUnchanged = errors.New("game unchanged")

func gameState(id string, g *game.ChessGame) models.GameState {
	return models.GameState{
		GameID: id,
		Board:  g.FEN(),
		Moves:  g.AllowedMoveStrings(),
		Result: string(g.Result()),
		Method: string(g.Method()),
		Turn:   g.Turn(),
	}
}

func gameInfo(info game.Info) models.GameInfo {
	return models.GameInfo{
		White:       info.White,
		Black:       info.Black,
		WhiteElo:    info.WhiteElo,
		BlackElo:    info.BlackElo,
		WhiteStealo: info.WhiteRule,
		BlackStealo: info.BlackRule,
	}
}

// StartGame creates a hot-seat game under a fresh id.
func StartGame(c *gin.Context) {
	var req models.NewLocalGame
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	g, err := newGame(ctx, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := uuid.NewString()
	if err := store.SaveGame(ctx, id, g); err != nil {
		log.Printf("SaveGame failed for game=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save game"})
		return
	}
	log.Printf("started local game=%s white_rule=%d black_rule=%d", id, g.White.Rule, g.Black.Rule)
	c.JSON(http.StatusOK, gameState(id, g))
}

// StartOnline creates (or replaces) the game for a room.
func StartOnline(c *gin.Context) {
	var req models.NewOnlineGame
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Roomcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing roomcode"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	g, err := newGame(ctx, req.NewLocalGame)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := store.SaveGame(ctx, req.Roomcode, g); err != nil {
		log.Printf("SaveGame failed for room=%s: %v", req.Roomcode, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save game"})
		return
	}
	log.Printf("started online game=%s white_rule=%d black_rule=%d", req.Roomcode, g.White.Rule, g.Black.Rule)
	c.JSON(http.StatusOK, gameState(req.Roomcode, g))
}

// newGame makes player1 white. With RandomStealo the requested rule ids are
// replaced by an elo-based draw from the catalog.
func newGame(ctx context.Context, req models.NewLocalGame) (*game.ChessGame, error) {
	white, black := req.Stealo1, req.Stealo2
	if req.RandomStealo {
		catalog, err := store.ListRules(ctx)
		if err != nil {
			log.Printf("ListRules failed, keeping requested rules: %v", err)
		} else {
			rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			white, black = AssignRules(req.Elo1, req.Elo2, white, black, catalog, rng)
		}
	}
	for _, id := range []int{white, black} {
		if _, err := rules.Lookup(id); err != nil {
			return nil, err
		}
	}
	return game.New(
		game.Player{Name: req.Player1, Elo: req.Elo1, Rule: white},
		game.Player{Name: req.Player2, Elo: req.Elo2, Rule: black},
	), nil
}

// Play applies a move (or "resign" with a color) to a local game. A move the
// rules reject is not an error for the client: it gets the unchanged state.
func Play(c *gin.Context) {
	var req models.PlayMove
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.GameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}
	side := chess.NoColor
	if req.Color != "" {
		s, ok := game.ParseColor(req.Color)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid color"})
			return
		}
		side = s
	}
	updateGame(c, req.GameID, func(g *game.ChessGame) error {
		return lenient(req.GameID, g.ApplyMove(req.PlayMove, side))
	})
}

func PlayOnline(c *gin.Context) {
	var req models.PlayOnlineMove
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Roomcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing roomcode"})
		return
	}
	updateGame(c, req.Roomcode, func(g *game.ChessGame) error {
		return lenient(req.Roomcode, g.ApplyMove(req.PlayMove, chess.NoColor))
	})
}

func lenient(id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrInvalidMoveText),
		errors.Is(err, game.ErrInvalidSquare),
		errors.Is(err, game.ErrGameOver):
		log.Printf("rejected move game=%s: %v", id, err)
		return errUnchanged
	default:
		return err
	}
}

// Draw handles draw offers, acceptances and claims.
func Draw(c *gin.Context) {
	var req models.DrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.GameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}

	action := strings.ToLower(req.Action)
	side := chess.NoColor
	if action == "offer" || action == "accept" {
		var ok bool
		if side, ok = game.ParseColor(req.Color); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid color"})
			return
		}
	}

	var apply func(*game.ChessGame) error
	switch action {
	case "offer":
		apply = func(g *game.ChessGame) error { return g.OfferDraw(side) }
	case "accept":
		apply = func(g *game.ChessGame) error { return g.AcceptDraw(side) }
	case "declare":
		apply = (*game.ChessGame).DeclareDraw
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be offer, accept or declare"})
		return
	}
	updateGame(c, req.GameID, apply)
}

// updateGame loads id, applies one change and writes it back.
func updateGame(c *gin.Context, id string, apply func(*game.ChessGame) error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	sg, ok := loadGame(ctx, c, id)
	if !ok {
		return
	}
	wasOver := sg.Game.Over()

	if err := apply(sg.Game); err != nil {
		if errors.Is(err, errUnchanged) {
			c.JSON(http.StatusOK, gameState(id, sg.Game))
			return
		}
		c.JSON(gameErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	if err := store.UpdateGame(ctx, sg); err != nil {
		respondStoreError(c, id, err)
		return
	}
	if !wasOver && sg.Game.Over() {
		log.Printf("game=%s finished result=%s method=%s plies=%d", id, sg.Game.Result(), sg.Game.Method(), sg.Game.Plies())
		publishFinished(ctx, id, sg.Game)
	}
	c.JSON(http.StatusOK, gameState(id, sg.Game))
}

func gameErrorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidSide), errors.Is(err, game.ErrInvalidMoveText):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNoDrawOffer),
		errors.Is(err, game.ErrCannotClaimDraw),
		errors.Is(err, game.ErrIllegalMove):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func loadGame(ctx context.Context, c *gin.Context, id string) (*StoredGame, bool) {
	sg, err := store.GetGame(ctx, id)
	if err != nil {
		respondStoreError(c, id, err)
		return nil, false
	}
	return sg, true
}

func respondStoreError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	case errors.Is(err, ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "game was updated concurrently, retry"})
	default:
		log.Printf("store error for game=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load game"})
	}
}

// GetGameInfo is the online view: the opponent's rating and rule stay hidden
// until the game is over.
func GetGameInfo(c *gin.Context) {
	var req models.GetInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	side, ok := game.ParseColor(req.Color)
	if req.Roomcode == "" || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roomcode and color are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	sg, ok := loadGame(ctx, c, req.Roomcode)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gameInfo(sg.Game.Info(side)))
}

func GetLocalInfo(c *gin.Context) {
	id := c.Query("game_id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	sg, ok := loadGame(ctx, c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gameInfo(sg.Game.Revealed()))
}

// Rules lists the catalog. A failing store yields an empty list.
func Rules(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := store.ListRules(ctx)
	if err != nil {
		log.Printf("ListRules failed: %v", err)
		list = []models.Rule{}
	}
	c.JSON(http.StatusOK, list)
}

// Health is a public health check endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
