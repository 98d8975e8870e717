package models

// What we return to the frontend after every request that touches a game.
type GameState struct {
	GameID string   `json:"game_id,omitempty"`
	Board  string   `json:"board"` // FEN
	Moves  []string `json:"moves"`
	Result string   `json:"result"` // "none","white","black","draw"
	Method string   `json:"method,omitempty"`
	Turn   int      `json:"turn"`
}

// NewLocalGame starts a hot-seat game. Stealo values are rule ids.
type NewLocalGame struct {
	Player1      string `json:"player1"`
	Player2      string `json:"player2"`
	Elo1         int    `json:"elo1"`
	Elo2         int    `json:"elo2"`
	Stealo1      int    `json:"stealo1"`
	Stealo2      int    `json:"stealo2"`
	RandomStealo bool   `json:"random_stealo,omitempty"`
}

type NewOnlineGame struct {
	Roomcode string `json:"roomcode"`
	NewLocalGame
}

type PlayMove struct {
	GameID   string `json:"game_id"`
	PlayMove string `json:"play_move"`
	Color    string `json:"color,omitempty"` // only used with "resign"
}

type PlayOnlineMove struct {
	Roomcode string `json:"roomcode"`
	PlayMove string `json:"play_move"`
}

// DrawRequest is an offer, acceptance or claim. Color is required for offers
// and acceptances; only the side facing an offer may accept it.
type DrawRequest struct {
	GameID string `json:"game_id"`
	Action string `json:"action"` // "offer","accept","declare"
	Color  string `json:"color,omitempty"`
}

type GetInfo struct {
	Roomcode string `json:"roomcode"`
	Color    string `json:"color"`
}

type GameInfo struct {
	White       string `json:"white"`
	Black       string `json:"black"`
	WhiteElo    int    `json:"white_elo"`
	BlackElo    int    `json:"black_elo"`
	WhiteStealo int    `json:"white_stealo"`
	BlackStealo int    `json:"black_stealo"`
}
