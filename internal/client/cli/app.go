package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/musicvideos/internal/client/client"
	"github.com/dmitrijs2005/musicvideos/internal/client/config"
	"github.com/dmitrijs2005/musicvideos/internal/client/services"
	"github.com/dmitrijs2005/musicvideos/internal/filex"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	sessions services.SessionService
	videos   services.VideoService
	closeDB  func() error
	reader   *bufio.Reader
	out      io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if _, err := filex.EnsureParentDir(c.SessionDBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewMusicVideosClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:   c,
		sessions: services.NewSessionService(apiClient, db),
		videos:   services.NewVideoService(apiClient),
		closeDB:  db.Close,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Run restores the saved session and blocks in the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.sessions.Close()
		if a.closeDB != nil {
			_ = a.closeDB()
		}
	}()

	printlnFn("Welcome to musicvideos CLI (type 'help' for commands)")

	s, err := a.sessions.Restore(ctx)
	if err != nil {
		log.Printf("could not restore session: %s", err.Error())
	} else if s != nil {
		printlnFn("Logged in as", s.Username)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current() != nil
}

func (a *App) getStatus() string {
	s := ""
	if cur := a.sessions.Current(); cur != nil {
		s = cur.Username + " "
	}
	if m := a.getMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval until ctx is
// done. With a non-positive interval it checks once and returns.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.sessions.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// callCtx bounds one server round trip by the configured request timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// report prints a user facing message for err and returns it. A token the
// server no longer accepts ends the local session.
func (a *App) report(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		if a.isLoggedIn() {
			if lerr := a.sessions.Logout(ctx); lerr != nil {
				log.Printf("error clearing revoked session: %s", lerr.Error())
			}
			fmt.Fprintln(a.out, "Session expired or revoked, please log in again")
		} else {
			fmt.Fprintln(a.out, "Please log in first")
		}
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, client.ErrInvalidCredentials):
		fmt.Fprintln(a.out, "Invalid username or password")
	case errors.Is(err, client.ErrEmailTaken):
		fmt.Fprintln(a.out, "Email already registered!")
	case errors.Is(err, client.ErrAlreadyExists):
		fmt.Fprintln(a.out, "Username already exists!")
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(a.out, "Video not found")
	default:
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
	}
	return err
}
