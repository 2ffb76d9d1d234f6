// Package events defines the outbound message envelopes the engine hands to
// a Sink as it mutates a game. Every envelope carries a string "info" tag
// naming the event type, matching the protocol messages the dispatch layer
// wire-encodes to clients.
package events

// PlayerInfo is the (id, name) pair GameTableInfo lists for every seat.
type PlayerInfo struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
}

// Payout names one player's share of a resolved pot.
type Payout struct {
	PlayerID int `json:"player_id"`
	Amount   int `json:"amount"`
}

// RevealedHand is a showdown hand shown to every player because it
// contested a pot that was not won uncontested.
type RevealedHand struct {
	PlayerID  int       `json:"player_id"`
	HoleCards [2]string `json:"hole_cards"`
}

// PlayerPrivateInfo is sent to one player when the game starts: their seat id and
// the opaque secret token they must present with every action command.
type PlayerPrivateInfo struct {
	Info        string `json:"info"`
	PlayerID    int    `json:"player_id"`
	SecretToken string `json:"secret_token"`
}

// NewPlayerPrivateInfo builds a PlayerPrivateInfo envelope.
func NewPlayerPrivateInfo(playerID int, secretToken string) PlayerPrivateInfo {
	return PlayerPrivateInfo{Info: "PlayerPrivateInfo", PlayerID: playerID, SecretToken: secretToken}
}

// GameTableInfo is broadcast to every player when the game starts.
type GameTableInfo struct {
	Info          string       `json:"info"`
	StartingStack int          `json:"starting_stack"`
	SeatOrder     []int        `json:"seat_order"`
	Button        int          `json:"button"`
	Players       []PlayerInfo `json:"players"`
}

// NewGameTableInfo builds a GameTableInfo envelope.
func NewGameTableInfo(startingStack int, seatOrder []int, button int, players []PlayerInfo) GameTableInfo {
	return GameTableInfo{
		Info:          "GameTableInfo",
		StartingStack: startingStack,
		SeatOrder:     seatOrder,
		Button:        button,
		Players:       players,
	}
}

// HoleCardInfo is sent privately to one player when they are dealt in.
type HoleCardInfo struct {
	Info       string    `json:"info"`
	HandNumber int       `json:"hand_number"`
	Cards      [2]string `json:"cards"`
}

// NewHoleCardInfo builds a HoleCardInfo envelope.
func NewHoleCardInfo(handNumber int, cards [2]string) HoleCardInfo {
	return HoleCardInfo{Info: "HoleCardInfo", HandNumber: handNumber, Cards: cards}
}

// StreetInfo announces a new betting street and any newly revealed board
// cards.
type StreetInfo struct {
	Info               string   `json:"info"`
	HandNumber         int      `json:"hand_number"`
	Street             string   `json:"street"`
	Button             int      `json:"button"`
	BoardCardsRevealed []string `json:"board_cards_revealed"`
}

// NewStreetInfo builds a StreetInfo envelope.
func NewStreetInfo(handNumber int, street string, button int, revealed []string) StreetInfo {
	return StreetInfo{
		Info:               "StreetInfo",
		HandNumber:         handNumber,
		Street:             street,
		Button:             button,
		BoardCardsRevealed: revealed,
	}
}

// ToMoveInfo names the player now on the clock.
type ToMoveInfo struct {
	Info       string `json:"info"`
	HandNumber int    `json:"hand_number"`
	PlayerID   int    `json:"player_id"`
}

// NewToMoveInfo builds a ToMoveInfo envelope.
func NewToMoveInfo(handNumber, playerID int) ToMoveInfo {
	return ToMoveInfo{Info: "ToMoveInfo", HandNumber: handNumber, PlayerID: playerID}
}

// MoveType enumerates the normalized moves MoveInfo reports.
type MoveType string

const (
	MoveCheck MoveType = "Check"
	MoveFold  MoveType = "Fold"
	MoveBet   MoveType = "Bet"
	MoveBlind MoveType = "Blind"
)

// MoveInfo reports one player's normalized, already-applied action.
type MoveInfo struct {
	Info       string   `json:"info"`
	HandNumber int      `json:"hand_number"`
	PlayerID   int      `json:"player_id"`
	MoveType   MoveType `json:"move_type"`
	Value      int      `json:"value"`
}

// NewMoveInfo builds a MoveInfo envelope.
func NewMoveInfo(handNumber, playerID int, moveType MoveType, value int) MoveInfo {
	return MoveInfo{Info: "MoveInfo", HandNumber: handNumber, PlayerID: playerID, MoveType: moveType, Value: value}
}

// PayoutInfo reports how a hand's pots were split and which hands were
// revealed to justify the split.
type PayoutInfo struct {
	Info       string         `json:"info"`
	HandNumber int            `json:"hand_number"`
	Reason     string         `json:"reason"`
	Payouts    []Payout       `json:"payouts"`
	HoleCards  []RevealedHand `json:"hole_cards"`
}

// NewPayoutInfo builds a PayoutInfo envelope.
func NewPayoutInfo(handNumber int, reason string, payouts []Payout, revealed []RevealedHand) PayoutInfo {
	return PayoutInfo{Info: "PayoutInfo", HandNumber: handNumber, Reason: reason, Payouts: payouts, HoleCards: revealed}
}

// PlayerEliminatedInfo reports a player busting out at zero chips.
type PlayerEliminatedInfo struct {
	Info     string `json:"info"`
	PlayerID int    `json:"player_id"`
}

// NewPlayerEliminatedInfo builds a PlayerEliminatedInfo envelope.
func NewPlayerEliminatedInfo(playerID int) PlayerEliminatedInfo {
	return PlayerEliminatedInfo{Info: "PlayerEliminatedInfo", PlayerID: playerID}
}

// GameOverInfo reports the game's sole surviving player.
type GameOverInfo struct {
	Info          string `json:"info"`
	WinningPlayer int    `json:"winning_player"`
}

// NewGameOverInfo builds a GameOverInfo envelope.
func NewGameOverInfo(winningPlayer int) GameOverInfo {
	return GameOverInfo{Info: "GameOverInfo", WinningPlayer: winningPlayer}
}
