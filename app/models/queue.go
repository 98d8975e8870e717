package models

// GameFinished is published to the queue when a game reaches a result.
type GameFinished struct {
	GameID     string `json:"game_id"`
	White      string `json:"white"`
	Black      string `json:"black"`
	WhiteElo   int    `json:"white_elo"`
	BlackElo   int    `json:"black_elo"`
	WhiteRule  int    `json:"white_rule"`
	BlackRule  int    `json:"black_rule"`
	Result     string `json:"result"`
	Method     string `json:"method"`
	Plies      int    `json:"plies"`
	FinishedAt int64  `json:"finished_at_unix"`
}
