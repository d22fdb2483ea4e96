package actions

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/caseadmin/internal/client/api"
	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/client/session"
	"github.com/dmitrijs2005/caseadmin/internal/client/store"
	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/dmitrijs2005/caseadmin/internal/logging"
)

// Auth signs users in and out.
type Auth struct {
	fetcher       Fetcher
	store         *store.Store
	session       *session.Manager
	loginEndpoint string
	log           logging.Logger
}

func NewAuth(deps Deps, sess *session.Manager, loginEndpoint string) *Auth {
	log := deps.Log
	if log == nil {
		log = logging.NewNop()
	}
	return &Auth{
		fetcher:       deps.Fetcher,
		store:         deps.Store,
		session:       sess,
		loginEndpoint: loginEndpoint,
		log:           log,
	}
}

type loginResponse struct {
	Token       string         `json:"token"`
	AccessToken string         `json:"access_token"`
	User        models.AppUser `json:"user"`
}

// Login posts form credentials and starts a session.
func (a *Auth) Login(ctx context.Context, username, password string, remember bool) Result {
	if strings.TrimSpace(username) == "" || password == "" {
		return Result{Detail: "Username and password are required"}
	}

	env, err := a.fetcher.Fetch(ctx, a.loginEndpoint, api.Options{
		Method: http.MethodPost,
		Form:   url.Values{"username": {username}, "password": {password}},
		NoAuth: true,
	})
	if err != nil {
		a.log.Error(ctx, "login failed", "action", "USER_LOGIN_FAILURE", "err", err)
		return Result{Detail: common.MsgSomethingWentWrong}
	}
	if msg := env.Err(); msg != "" {
		return Result{Detail: msg}
	}

	var resp loginResponse
	if err := env.Decode(&resp); err != nil {
		a.log.Error(ctx, "login response", "action", "USER_LOGIN_FAILURE", "err", err)
		return Result{Detail: common.MsgSomethingWentWrong}
	}
	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}

	if err := a.session.Login(ctx, token, resp.User, remember); err != nil {
		switch {
		case errors.Is(err, common.ErrSessionExpired):
			return Result{Detail: "Session expired, please sign in again"}
		case errors.Is(err, common.ErrInvalidToken):
			return Result{Detail: "Invalid token received"}
		}
		// the in-memory session is usable even if remembering it failed
		a.log.Warn(ctx, "could not remember session", "err", err)
	}
	return Result{Success: true, Detail: "Signed in as " + username}
}

// Logout clears the session and resets the store.
func (a *Auth) Logout(ctx context.Context) Result {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "could not clear remembered session", "err", err)
	}
	a.store.Dispatch(store.Logout{})
	return Result{Success: true, Detail: "Signed out"}
}
