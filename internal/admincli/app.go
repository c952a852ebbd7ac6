// Package admincli implements the bootstrap tool that seeds the first admin
// account directly into the auth store, for fresh deployments where no user
// exists yet to call the registration endpoint.
package admincli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/planfold/planfold/internal/common"
	"github.com/planfold/planfold/internal/server/config"
	"github.com/planfold/planfold/internal/server/store"
	"github.com/planfold/planfold/internal/server/users"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type App struct {
	cfg *config.Config
	in  *bufio.Reader
	out io.Writer
}

func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg, in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// Run prompts for admin credentials and creates the account. Seeding an
// email that already exists is reported, not treated as a failure, so the
// tool is safe to re-run.
func (a *App) Run(ctx context.Context) error {
	manager := store.NewManager()
	if err := manager.Initialize(a.cfg.AuthPath(), a.cfg.DataDir, a.cfg.DefaultTag); err != nil {
		return fmt.Errorf("store init error: %w", err)
	}
	svc := users.NewService(manager, a.cfg)

	email, err := a.getSimpleText("Admin email")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}

	password, err := a.getPassword()
	if err != nil {
		return err
	}
	if len(password) == 0 {
		return fmt.Errorf("password is required")
	}

	user, err := svc.CreateUser(ctx, email, string(password), users.Profile{Note: "bootstrap admin"})
	if errors.Is(err, common.ErrEmailInUse) {
		fmt.Fprintf(a.out, "Admin user already exists: %s\n", email)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Admin user seeded: %s (%s)\n", user.Email, user.ID)
	return nil
}

func (a *App) getSimpleText(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.out, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) getPassword() ([]byte, error) {
	if _, err := fmt.Fprint(a.out, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
