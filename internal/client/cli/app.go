package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"
	"sync"

	"newsdesk/internal/client/api"
	"newsdesk/internal/client/auth"
	"newsdesk/internal/client/config"
	"newsdesk/internal/client/repositories/kv"
	"newsdesk/internal/client/services"
	"newsdesk/internal/client/store"
	"newsdesk/internal/logging"
)

type App struct {
	config  *config.Config
	content services.ContentService
	tokens  *auth.Provider
	db      *sql.DB
	reader  *bufio.Reader

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	db, repo, err := kv.Open(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing local state store: %s", err.Error())
		return nil, err
	}

	tokens := auth.NewProvider(c.TokenFile)

	remote := api.New(api.Options{
		Token:                tokens.Token,
		Logger:               logger,
		AttemptTimeout:       c.AttemptTimeout,
		UploadAttemptTimeout: c.UploadAttemptTimeout,
	})

	content, err := services.NewContentService(remote, api.NewEndpoints(c.BaseURLs), store.New(repo), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:   c,
		content:  content,
		tokens:   tokens,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		inflight: make(map[string]struct{}),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

// begin registers an in-flight request for the given item. It reports false
// when a previous request for the same item has not finished yet, so a
// double-clicked command cannot fire twice.
func (a *App) begin(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, busy := a.inflight[id]; busy {
		return false
	}
	a.inflight[id] = struct{}{}
	return true
}

func (a *App) end(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.inflight, id)
}

func (a *App) isLoggedIn() bool {
	_, err := a.tokens.Token(context.Background())
	return err == nil
}
