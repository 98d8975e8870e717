package models

// HistoryMove is one replayed move with the positions around it.
type HistoryMove struct {
	Ply        int    `json:"ply"` // index in the action log
	MoveNumber int    `json:"move_number"`
	Color      string `json:"color"` // "w" or "b"
	MoveUCI    string `json:"uci"`
	MoveSAN    string `json:"san"`
	FenBefore  string `json:"fen_before"`
	FenAfter   string `json:"fen_after"`
}

// GameHistory is the replay of a stored game.
type GameHistory struct {
	GameID   string        `json:"game_id"`
	Encoding string        `json:"encoding"`
	Data     []byte        `json:"data"` // base64 in JSON
	Actions  []string      `json:"actions"`
	Moves    []HistoryMove `json:"moves"`
	PGN      string        `json:"pgn"`
	Result   string        `json:"result"`
}
