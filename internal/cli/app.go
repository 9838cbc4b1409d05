// Package cli implements the interactive metadata shell: session setup, the
// read-eval-print loop, and its text rendering.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/metakv/internal/config"
	"github.com/dmitrijs2005/metakv/internal/database"
	"github.com/dmitrijs2005/metakv/internal/logging"
	"github.com/dmitrijs2005/metakv/internal/repositories/metadata"
	"github.com/google/uuid"
)

// App wires configuration, logger, database session, and REPL together.
type App struct {
	config *config.Config
	logger logging.Logger
	in     io.Reader
	out    io.Writer
}

// NewApp builds the application around cfg. Diagnostics go to stderr through
// the structured logger, tagged with a per-session id; stdout carries only
// the interactive protocol.
func NewApp(cfg *config.Config) *App {
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel).With("session", uuid.NewString())
	return &App{config: cfg, logger: logger, in: os.Stdin, out: os.Stdout}
}

// Run owns one interactive session: optional password prompt, scoped
// database acquisition, the REPL, and guaranteed release on every exit
// path. It returns nil on quit, end of input, or an interrupt while waiting
// for input; startup failures and interrupted in-flight calls return the
// error.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info(ctx, "starting session",
		"driver", a.config.Driver,
		"host", a.config.Host,
		"port", a.config.Port,
		"database", a.config.Database,
		"user", a.config.User,
		"ssl_cert", a.config.SSLCert,
		"file", a.config.FilePath,
	)

	if err := a.ensurePassword(); err != nil {
		return err
	}

	m, err := database.Open(ctx, a.config, a.logger, a.out)
	if err != nil {
		return err
	}
	defer m.Close()

	st, err := metadata.New(m.Driver(), m.DB(), a.logger)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- runREPL(ctx, st, a.in, a.out)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// A signal while the REPL waits for input ends the session cleanly.
		// A signal during an in-flight statement surfaces through the REPL
		// a moment later and must propagate instead.
		select {
		case err := <-done:
			return err
		case <-time.After(200 * time.Millisecond):
			a.logger.Info(context.Background(), "interrupt received")
			return nil
		}
	}
}

// ensurePassword interactively asks for the database password when the
// configuration left it empty: only for the postgres driver, only when no
// explicit DSN overrides the assembled one, and only when stdin is a real
// terminal. A piped session cannot answer a prompt.
func (a *App) ensurePassword() error {
	if a.config.Driver != config.DriverPostgres {
		return nil
	}
	if a.config.Password != "" || a.config.DatabaseDSN != "" {
		return nil
	}
	if !isTerminal(int(os.Stdin.Fd())) {
		return nil
	}

	pw, err := GetPassword(a.out, fmt.Sprintf("Enter password for %s: ", a.config.User))
	if err != nil {
		return err
	}
	a.config.Password = pw
	return nil
}
