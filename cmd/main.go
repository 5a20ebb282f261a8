package main

import (
	"chat-bot/command"
	"chat-bot/config"
	"chat-bot/handlers"
	"chat-bot/infrastructure/console"
	"chat-bot/moderation"
	"chat-bot/repositories"
	"chat-bot/runtime"
	"chat-bot/runtime/workers"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the bot lifecycle, and centralizes error reporting.
// Returning instead of exiting lets deferred cleanup (the database) run.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load(envFile())
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)

	prefix, err := config.NewPrefix(cfg.CommandPrefix)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	charReplacement, err := CharacterRune(cfg.CharReplacement)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(cfg.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	settings := repositories.NewSettingsRepository(db)
	history := repositories.NewInvocationRepository(db, log, cfg.LimitInvocations)

	// 3. Commands: register everything once, a collision stops here
	moderator, err := moderation.NewModerator(cfg.CensoredList(), charReplacement, log)
	if err != nil {
		return fmt.Errorf("moderation setup failed: %w", err)
	}
	registry := command.NewRegistry()
	if err = handlers.Register(registry, history); err != nil {
		return err
	}
	registry.Freeze()
	dispatcher := command.NewDispatcher(log, registry, prefix, command.NewFactory(prefix, moderator))

	// 4. Bot & connection
	sup := workers.NewSupervisor(log, cfg.RestartInterval)
	bot := runtime.NewBot(log, sup, registry, dispatcher, moderator, prefix, settings, history,
		cfg.NumberOfWorkers, cfg.BufferSize)
	conn := console.New(log, bot.Inbound(), os.Stdout,
		cfg.BotNick, cfg.ConsoleNick, cfg.ConsoleTarget, cfg.ChannelTypes)
	conn.OnQuit(bot.Stop)
	bot.Attach(conn)
	bot.AddWorkers(conn)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go watchReloads(ctx, log, bot)

	if err = bot.Start(ctx); err != nil {
		return fmt.Errorf("bot failed to start: %w", err)
	}

	// 6. Wait for the console to quit, a signal, or a fatal error
	<-bot.Done()
	if err = bot.Err(); err != nil {
		return err
	}
	log.Info("Program stopped cleanly")
	return nil
}

// watchReloads re-reads the env file on SIGHUP and asks the bot to apply COMMAND_PREFIX.
func watchReloads(ctx context.Context, log *slog.Logger, bot *runtime.Bot) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := godotenv.Overload(envFile()); err != nil {
				log.Warn("Cannot re-read env file", "file", envFile(), "error", err)
			}
			bot.Reload(os.Getenv("COMMAND_PREFIX"), "sighup")
		}
	}
}

func envFile() string {
	if f := os.Getenv("ENV_FILE"); f != "" {
		return f
	}
	return ".env"
}
