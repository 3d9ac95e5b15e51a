package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gridrush/tictactoe-agent/internal/config"
	"github.com/gridrush/tictactoe-agent/internal/repository"
	"github.com/gridrush/tictactoe-agent/internal/repository/storage"
	"github.com/gridrush/tictactoe-agent/internal/service"
	"github.com/gridrush/tictactoe-agent/internal/transport/announcer"
	"github.com/gridrush/tictactoe-agent/internal/transport/faucet"
	"github.com/gridrush/tictactoe-agent/internal/usecase"
	"github.com/gridrush/tictactoe-agent/transport/rest"
	"github.com/gridrush/tictactoe-agent/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	sessionRepo := repository.NewSessionRepository(redisStorage.Connection)
	rewardRepo := repository.NewRewardRepository(sqliteStorage.Connection)

	faucetClient := faucet.New(conf.Faucet.Endpoint)
	announcerClient := announcer.New(conf.Announcer.Endpoint)

	opponentService := service.NewOpponentService()
	flowService := service.NewGameFlowService(logger, opponentService, faucetClient, announcerClient, rewardRepo, service.RewardOffer{
		Token:        conf.Faucet.Token,
		Amount:       conf.Faucet.Amount,
		Announcement: conf.Announcer.Message,
	})

	dispatcher := usecase.NewDispatcher(logger, sessionRepo, flowService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, dispatcher)
		if httpErr := restServer.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, dispatcher)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
