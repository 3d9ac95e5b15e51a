package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gridrush/tictactoe-agent/internal/entity"
)

type RewardRepository interface {
	Record(ctx context.Context, reward *entity.Reward) error
	ListBySession(ctx context.Context, sessionID string) ([]*entity.Reward, error)
}

type dbReward struct {
	db *sql.DB
}

func NewRewardRepository(db *sql.DB) RewardRepository {
	return &dbReward{
		db: db,
	}
}

func (that *dbReward) Record(ctx context.Context, reward *entity.Reward) error {
	query := `INSERT INTO rewards (session_id, tx_ref, token, amount, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := that.db.ExecContext(ctx, query, reward.SessionID, reward.TxRef, reward.Token, reward.Amount, reward.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reward: %w", err)
	}

	return nil
}

func (that *dbReward) ListBySession(ctx context.Context, sessionID string) ([]*entity.Reward, error) {
	query := `SELECT session_id, tx_ref, token, amount, created_at FROM rewards WHERE session_id = ? ORDER BY created_at`

	rows, err := that.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer rows.Close()

	var rewards []*entity.Reward
	for rows.Next() {
		var reward entity.Reward
		if err = rows.Scan(&reward.SessionID, &reward.TxRef, &reward.Token, &reward.Amount, &reward.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, &reward)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rewards: %w", err)
	}

	return rewards, nil
}
