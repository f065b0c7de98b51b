// Command createuser registers an operator account in the configured store.
//
//	createuser -username coordinator -first-name Grace -last-name Akello
//
// The password is read from -password or, when omitted, from the
// DREAMS_PASSWORD environment variable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/app"
	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/config"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
	"github.com/prodib01/BAYLOR-CDC/internal/logger"
	"github.com/prodib01/BAYLOR-CDC/internal/storage"
)

const timeout = 30 * time.Second

func main() {
	var in app.CreateUserInput
	flag.StringVar(&in.Username, "username", "", "login name (required)")
	flag.StringVar(&in.Password, "password", "", "password (defaults to $DREAMS_PASSWORD)")
	flag.StringVar(&in.FirstName, "first-name", "", "first name")
	flag.StringVar(&in.LastName, "last-name", "", "last name")
	flag.Parse()

	if in.Password == "" {
		in.Password = os.Getenv("DREAMS_PASSWORD")
	}

	if err := run(in); err != nil {
		fmt.Fprintln(os.Stderr, "createuser:", err)
		os.Exit(1)
	}
}

func run(in app.CreateUserInput) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.Logging.Level)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	backend, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer backend.Close()
	if backend.Driver == config.DriverMemory {
		log.Warn("memory storage selected, the user will not outlive this command")
	}

	auth := app.NewAuthService(backend, app.BcryptHasher{Cost: cfg.Auth.BcryptCost}, clock.NewSystem())
	user, err := auth.CreateUser(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return fmt.Errorf("user %q already exists", in.Username)
		}
		return err
	}
	log.Info("created user", "id", user.ID, "username", user.Username)
	return nil
}
