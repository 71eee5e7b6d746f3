// Command simple-to-do-list serves the multi-user todo API and its browser
// client, and carries the administrative commands that go with it.
//
// @title Todo List API
// @version 1.0
// @description Multi-user todo list. Every response is HTTP 200 with a Status envelope.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/tousif31/simple-to-do-list/auth"
	"github.com/tousif31/simple-to-do-list/config"
	"github.com/tousif31/simple-to-do-list/db"
	"github.com/tousif31/simple-to-do-list/logger"
	"github.com/tousif31/simple-to-do-list/server"
	"github.com/tousif31/simple-to-do-list/store"
	"github.com/tousif31/simple-to-do-list/todos"
	"github.com/tousif31/simple-to-do-list/users"
)

// application is the state shared by every command once Before has run.
type application struct {
	cfg    *config.AppConfig
	logger *slog.Logger
}

func main() {
	app := &application{}

	cliApp := &cli.App{
		Name:  "simple-to-do-list",
		Usage: "multi-user todo list service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file to load before reading the environment",
			},
		},
		Before: app.load,
		Action: app.serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: app.serve,
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations and exit",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "down", Usage: "roll back every applied migration"},
				},
				Action: app.migrate,
			},
			{
				Name:  "users",
				Usage: "administer user accounts",
				Subcommands: []*cli.Command{
					{
						Name:  "show",
						Usage: "print an account profile",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "email", Required: true},
						},
						Action: app.showUser,
					},
					{
						Name:  "delete",
						Usage: "delete an account and all of its todos",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "email", Required: true},
						},
						Action: app.deleteUser,
					},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

// load reads the dotenv file and the configuration and installs the logger.
func (a *application) load(c *cli.Context) error {
	envFile := c.String("env-file")
	if err := godotenv.Load(envFile); err != nil {
		// Only a file the operator asked for by name has to exist.
		if c.IsSet("env-file") || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		log.Printf("Warning: %s not found, using process environment", envFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	a.logger = logger.NewSlog(logger.SlogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(a.logger)

	for _, w := range cfg.Warnings {
		a.logger.Warn("configuration adjusted", "warning", w)
	}
	return nil
}

func (a *application) openStore(c *cli.Context) (store.Store, error) {
	st, err := db.Open(c.Context, a.cfg.Database, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

func (a *application) serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.cfg.Database.AutoMigrate {
		if err := db.RunMigrations(a.cfg.Database, a.logger); err != nil {
			return err
		}
	}

	st, err := a.openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()

	handler := server.NewRouter(server.Deps{
		Auth:               auth.NewService(st, a.cfg.Auth),
		Todos:              todos.NewTodoService(st),
		Users:              users.NewUserService(st),
		Store:              st,
		Logger:             a.logger,
		CORSAllowedOrigins: a.cfg.Server.CORSAllowedOrigins,
	})

	return server.Run(ctx, a.cfg.Server, handler, a.logger)
}

func (a *application) migrate(c *cli.Context) error {
	if a.cfg.Database.Driver() == config.DriverMemory {
		a.logger.Warn("DATABASE_URL is not set, nothing to migrate")
		return nil
	}
	if c.Bool("down") {
		return db.RollbackMigrations(a.cfg.Database, a.logger)
	}
	return db.RunMigrations(a.cfg.Database, a.logger)
}

func (a *application) showUser(c *cli.Context) error {
	st, err := a.openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()

	profile, err := users.NewUserService(st).GetUserProfileByEmail(c.Context, c.String("email"))
	if err != nil {
		return err
	}
	return printJSON(c, profile)
}

func (a *application) deleteUser(c *cli.Context) error {
	st, err := a.openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()

	removed, err := users.NewUserService(st).DeleteUserByEmail(c.Context, c.String("email"))
	if err != nil {
		return err
	}
	a.logger.Info("user deleted", "user_id", removed.ID, "email", removed.Email)
	return printJSON(c, removed)
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
