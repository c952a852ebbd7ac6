package admincli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfold/planfold/internal/server/config"
	"github.com/planfold/planfold/internal/server/store"
	"github.com/planfold/planfold/internal/server/users"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer, *config.Config) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()
	cfg.SecretKey = "test-secret-key-0123456789"

	out := &bytes.Buffer{}
	app := &App{cfg: cfg, in: bufio.NewReader(strings.NewReader(input)), out: out}
	return app, out, cfg
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func TestRun_SeedsAdmin(t *testing.T) {
	app, out, cfg := newTestApp(t, "admin@example.com\n")
	stubPassword(t, "bootstrap-secret")

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Admin user seeded: admin@example.com")

	// the account is usable through the normal login path
	m := store.NewManager()
	require.NoError(t, m.Initialize(cfg.AuthPath(), cfg.DataDir, cfg.DefaultTag))
	svc := users.NewService(m, cfg)
	_, err := svc.Login(context.Background(), "admin@example.com", "bootstrap-secret")
	require.NoError(t, err)
}

func TestRun_ExistingAdminIsNotAnError(t *testing.T) {
	app, out, _ := newTestApp(t, "admin@example.com\n")
	stubPassword(t, "bootstrap-secret")
	require.NoError(t, app.Run(context.Background()))

	again := &App{cfg: app.cfg, in: bufio.NewReader(strings.NewReader("admin@example.com\n")), out: out}
	require.NoError(t, again.Run(context.Background()))
	assert.Contains(t, out.String(), "Admin user already exists: admin@example.com")
}

func TestRun_RequiresEmail(t *testing.T) {
	app, _, _ := newTestApp(t, "\n")
	stubPassword(t, "bootstrap-secret")
	assert.Error(t, app.Run(context.Background()))
}

func TestRun_RequiresPassword(t *testing.T) {
	app, _, _ := newTestApp(t, "admin@example.com\n")
	stubPassword(t, "")
	assert.Error(t, app.Run(context.Background()))
}
