package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmitrijs2005/contactbook/internal/client/client"
	"github.com/dmitrijs2005/contactbook/internal/client/config"
	"github.com/dmitrijs2005/contactbook/internal/client/notify"
	"github.com/dmitrijs2005/contactbook/internal/client/repositories/cache"
	"github.com/dmitrijs2005/contactbook/internal/client/repositories/journal"
	"github.com/dmitrijs2005/contactbook/internal/client/services"
	"github.com/dmitrijs2005/contactbook/internal/client/store"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"golang.org/x/term"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	contacts services.ContactService
	editor   services.EditService
	store    *store.Store
	notifier *notify.Notifier
	log      logging.Logger
	db       *sql.DB

	reader *bufio.Reader
	out    io.Writer
	styles styles
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.CachePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.CachePath, "error", err)
		return nil, err
	}

	apiClient := client.NewContactServiceClient(c.Endpoint, c.RequestTimeout, log)

	st := store.New(cache.NewSQLiteRepository(db))
	j := journal.NewSQLiteRepository(db)

	return &App{
		config:   c,
		contacts: services.NewContactService(apiClient, st, j, c.PageSize, log),
		editor:   services.NewEditService(apiClient, st, j, log),
		store:    st,
		notifier: notify.New(c.NotifyTimeout),
		log:      log,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		styles:   newStyles(!term.IsTerminal(int(os.Stdout.Fd()))),
	}, nil
}

// Run loads the lists, fetches the first page and runs the REPL until the
// user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.contacts.Load(ctx); err != nil {
		a.fail(ctx, err)
	}
	if _, err := a.contacts.FetchNextPage(ctx); err != nil {
		a.fail(ctx, err)
	}

	printlnFn("Welcome to contactbook (type 'help' for commands)")
	_ = a.List(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	a.notifier.Dismiss()
	if a.contacts != nil {
		_ = a.contacts.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// getStatus is the prompt decoration: the current notification, if any.
func (a *App) getStatus() string {
	msg := a.notifier.Current()
	if msg == "" {
		return ""
	}
	return a.styles.notice.Render("(" + msg + ")")
}

// fail reports err to the user and the log. It returns err so command
// handlers can end with "return a.fail(ctx, err)".
func (a *App) fail(ctx context.Context, err error) error {
	a.log.Warn(ctx, "command failed", "error", err)
	a.notifier.Error(err)
	return err
}
