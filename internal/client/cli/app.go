package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/caseadmin/internal/client/actions"
	"github.com/dmitrijs2005/caseadmin/internal/client/reftypes"
	"github.com/dmitrijs2005/caseadmin/internal/client/session"
	"github.com/dmitrijs2005/caseadmin/internal/client/store"
	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/dmitrijs2005/caseadmin/internal/logging"
	"github.com/dmitrijs2005/caseadmin/internal/metrics"
)

// DefaultPerPage is the list page size used by the console.
const DefaultPerPage = 10

// Deps are the collaborators of the console.
type Deps struct {
	Log     logging.Logger
	Metrics *metrics.Metrics
	Store   *store.Store
	Actions *actions.Set
	Auth    *actions.Auth
	Session *session.Manager
	Refs    *reftypes.Registry
	In      io.Reader
	Out     io.Writer
	PerPage int
}

type App struct {
	log     logging.Logger
	metrics *metrics.Metrics
	store   *store.Store
	set     *actions.Set
	auth    *actions.Auth
	session *session.Manager
	refs    *reftypes.Registry
	reader  *bufio.Reader
	out     io.Writer
	perPage int
}

func NewApp(d Deps) *App {
	a := &App{
		log:     d.Log,
		metrics: d.Metrics,
		store:   d.Store,
		set:     d.Actions,
		auth:    d.Auth,
		session: d.Session,
		refs:    d.Refs,
		out:     d.Out,
		perPage: d.PerPage,
	}
	if a.log == nil {
		a.log = logging.NewNop()
	}
	in := d.In
	if in == nil {
		in = os.Stdin
	}
	a.reader = bufio.NewReader(in)
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.perPage <= 0 {
		a.perPage = DefaultPerPage
	}
	return a
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if u, ok := a.session.User(); ok && a.isLoggedIn() {
		s = u.Email
	}
	if a.session.DarkMode() {
		if s != "" {
			s += " "
		}
		s += "dark"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// drainAlert returns the store's pending alert and clears it.
func (a *App) drainAlert() string {
	al := a.store.Snapshot().Alert
	if al.Error == "" && al.Success == "" {
		return ""
	}
	a.store.Dispatch(store.ClearAlert{})
	if al.Error != "" {
		return "Error: " + al.Error
	}
	return al.Success
}

// Run restores a remembered session, asks for credentials when there is
// none and starts the REPL. It returns when the user exits or the input
// ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to caseadmin (type 'help' for commands)")

	if err := a.session.LoadPreferences(ctx); err != nil {
		a.log.Warn(ctx, "could not load preferences", "err", err)
	}
	ok, err := a.session.Restore(ctx)
	switch {
	case errors.Is(err, common.ErrSessionExpired):
		fmt.Fprintln(a.out, "Your session has expired, please login again")
	case err != nil:
		a.log.Warn(ctx, "could not restore session", "err", err)
	case ok:
		fmt.Fprintln(a.out, "Session restored")
	}
	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
