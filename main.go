package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/carson-networks/finance-tracker/api"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/events"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

func main() {
	app := &cli.App{
		Name:  "finance-tracker",
		Usage: "personal finance tracking API",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Usage: "apply pending migrations before serving"},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations",
				Action: migrate,
			},
			{
				Name:  "adduser",
				Usage: "register a user from the command line",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Usage: "prompted for when omitted"},
				},
				Action: addUser,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("finance-tracker")
	}
}

type deps struct {
	config    *config.Config
	logger    *logrus.Logger
	storage   *storage.Storage
	publisher events.Publisher
	tokens    *auth.TokenIssuer
	service   *service.Service
}

func setup() (*deps, error) {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, fmt.Errorf("config.ProcessEnvironmentVariables: %w", err)
	}
	if err := envConfig.Validate(); err != nil {
		return nil, err
	}

	logger := logging.SetupLogging(envConfig.LogLevel)

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		return nil, err
	}

	var publisher events.Publisher = events.NopPublisher{}
	if envConfig.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(envConfig.AMQPURL, envConfig.AMQPExchange, logger)
		if err != nil {
			dbStorage.Close()
			return nil, err
		}
		publisher = amqpPublisher
	}

	tokens := auth.NewTokenIssuer(envConfig.JWTSecret, envConfig.JWTExpiry)

	return &deps{
		config:    envConfig,
		logger:    logger,
		storage:   dbStorage,
		publisher: publisher,
		tokens:    tokens,
		service:   service.NewService(dbStorage, auth.NewHasher(), tokens, publisher, logger),
	}, nil
}

func (r *deps) close() {
	if err := r.publisher.Close(); err != nil {
		r.logger.WithError(err).Warn("main.close.publisher")
	}
	if err := r.storage.Close(); err != nil {
		r.logger.WithError(err).Warn("main.close.storage")
	}
}

func runMigrations(logger *logrus.Logger, env *config.Config) error {
	result, err := sqlconfig.RunMigrations(env.PostgresURL())
	if err != nil {
		return fmt.Errorf("sqlconfig.RunMigrations: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreMigrationVersion,
		"postMigrationVersion": result.PostMigrationVersion,
	}).Info("Migrations complete")
	return nil
}

func serve(c *cli.Context) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()
	rt.logger.Info("finance-tracker starting")

	if c.Bool("migrate") {
		if err := runMigrations(rt.logger, rt.config); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:  rt.logger,
		Port:    rt.config.ServerPort,
		Service: rt.service,
		Storage: rt.storage,
		Tokens:  rt.tokens,
	}
	return httpRest.Serve(ctx)
}

func migrate(_ *cli.Context) error {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return err
	}
	return runMigrations(logging.SetupLogging(envConfig.LogLevel), envConfig)
}

func addUser(c *cli.Context) error {
	password := c.String("password")
	if password == "" {
		var err error
		password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	created, err := rt.service.Auth.Register(context.Background(), c.String("username"), c.String("email"), password)
	if err != nil {
		return err
	}

	rt.logger.WithFields(logrus.Fields{
		"userID":   created.ID.String(),
		"username": created.Username,
	}).Info("User created")
	return nil
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if strings.TrimSpace(string(first)) == "" {
		return "", errors.New("password cannot be empty")
	}
	return string(first), nil
}
