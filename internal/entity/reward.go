package entity

import "time"

// Reward is one granted faucet payout, kept for auditing.
type Reward struct {
	SessionID string    `json:"session_id"`
	TxRef     string    `json:"tx_ref"`
	Token     string    `json:"token"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
