// Package domain defines the settlement engine's request/result contracts and
// game catalog.
package domain

// GameKind identifies one game's settlement rules.
type GameKind string

const (
	GameLottery  GameKind = "lottery"
	GameCrash    GameKind = "crash"
	GameMines    GameKind = "mines"
	GameTower    GameKind = "tower"
	GameRoad     GameKind = "road"
	GameDice     GameKind = "dice"
	GameKeno     GameKind = "keno"
	GamePlinko   GameKind = "plinko"
	GameCoinFlip GameKind = "coinflip"
	GameCardDuel GameKind = "carduel"
	GameRoulette GameKind = "roulette"
	GameWheel    GameKind = "wheel"
)

// ProgressiveGames are settled over multiple round trips via GameSession.
var ProgressiveGames = map[GameKind]bool{
	GameMines: true,
	GameTower: true,
	GameRoad:  true,
}

// IsValid reports whether k names a known game.
func (k GameKind) IsValid() bool {
	switch k {
	case GameLottery, GameCrash, GameMines, GameTower, GameRoad,
		GameDice, GameKeno, GamePlinko, GameCoinFlip, GameCardDuel,
		GameRoulette, GameWheel:
		return true
	}
	return false
}
