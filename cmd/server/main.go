package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bloghq/auth-service/auth"
	"github.com/bloghq/auth-service/internal/config"
	"github.com/bloghq/auth-service/internal/db"
	"github.com/bloghq/auth-service/internal/logging"
	"github.com/bloghq/auth-service/server"
	"github.com/bloghq/auth-service/token"
	"github.com/bloghq/auth-service/token/refresh/redisstore"
	userspostgres "github.com/bloghq/auth-service/users/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error running server: %s\n", err)
		os.Exit(1)
	}
}

func run(configPath string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "config.Load")
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)
	displayAppname(cfg.App.Name)

	ctx := context.Background()

	if err := db.Migrate(cfg.DB.DSN); err != nil {
		return errors.Wrap(err, "db.Migrate")
	}
	pool, err := db.NewPool(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		return errors.Wrap(err, "db.NewPool")
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis.Ping")
	}
	defer redisClient.Close()

	issuer, err := token.NewIssuer(
		[]byte(cfg.Auth.AccessSecret),
		[]byte(cfg.Auth.RefreshSecret),
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
		token.WithIssuer(cfg.Auth.Issuer),
	)
	if err != nil {
		return errors.Wrap(err, "token.NewIssuer")
	}

	authService, err := auth.NewService(
		auth.Repos{
			Users:         userspostgres.NewRepo(pool),
			RefreshTokens: redisstore.NewStore(redisClient, cfg.Auth.RefreshTokenExpiry),
		},
		issuer,
		auth.WithAdminAllowlist(cfg.Auth.AdminAllowlist),
		auth.WithBcryptCost(cfg.Auth.BcryptCost),
		auth.WithLogger(log),
	)
	if err != nil {
		return errors.Wrap(err, "auth.NewService")
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(cfg, authService, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go listenAndServe(httpServer, log)
	waitForStopSignal()
	return shutdown(httpServer, cfg, log)
}

func listenAndServe(httpServer *http.Server, log zerolog.Logger) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server, cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server.Shutdown")
	}
	log.Info().Msg("server stopped")
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
