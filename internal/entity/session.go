package entity

const (
	StatusIdle                 = "idle"
	StatusOngoing              = "ongoing"
	StatusAwaitingFunding      = "awaiting_funding_decision"
	StatusAwaitingAnnouncement = "awaiting_announcement_decision"
)

// Session is the game-plus-dialogue state tracked for one conversation.
// It is mutated by one action at a time; the dispatcher serializes
// access per session.
type Session struct {
	ID        string `json:"id"`
	Board     Board  `json:"board"`
	Turn      string `json:"turn,omitempty"`
	Status    string `json:"status"`
	Winner    string `json:"winner,omitempty"`
	RewardRef string `json:"reward_ref,omitempty"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Status: StatusIdle,
	}
}

// StartGame resets the board and dialogue state and begins a new game
// with the human to move. Valid in any state.
func (that *Session) StartGame() {
	that.Board.Reset()
	that.Turn = PlayerMark
	that.Status = StatusOngoing
	that.Winner = ""
	that.RewardRef = ""
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Session) IsIdle() bool {
	return that.Status == StatusIdle
}

func (that *Session) IsAwaitingFunding() bool {
	return that.Status == StatusAwaitingFunding
}

func (that *Session) IsAwaitingAnnouncement() bool {
	return that.Status == StatusAwaitingAnnouncement
}
