package http

import (
	"encoding/json"
	"net/http"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/service"
	"github.com/pfennigfuchs/pfennig/internal/finance/session"
	"github.com/pfennigfuchs/pfennig/pkg/httpx"
)

// AuthHandler serves the session lifecycle endpoints. Any session id the
// client presents with a login or registration attempt is dead after the
// call, whatever the outcome: on failure the cookie is cleared, on success it
// is replaced with a freshly minted id.
type AuthHandler struct {
	Sessions *service.SessionCoordinator
}

// sessionPayload is the success body for every endpoint that establishes or
// confirms a session. Timeout is the absolute expiry of the inactivity
// window in Unix milliseconds, as recorded by the session store.
type sessionPayload struct {
	Username string `json:"username"`
	Timeout  int64  `json:"sessionTimeout"`
}

func payload(user domain.User, sess session.Session) sessionPayload {
	return sessionPayload{Username: user.Username, Timeout: sess.ExpiresAt.UnixMilli()}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	// A body that does not parse fails before the presented session is
	// touched, so no cookie change is signalled.
	var creds domain.RegisterCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sess, user, err := h.Sessions.Register(r.Context(), cookieID(r), creds)
	h.finishAuth(w, r, sess, user, err, http.StatusCreated)
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	var creds domain.LoginCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sess, user, err := h.Sessions.Login(r.Context(), cookieID(r), creds)
	h.finishAuth(w, r, sess, user, err, http.StatusOK)
}

func (h *AuthHandler) finishAuth(w http.ResponseWriter, r *http.Request, sess session.Session, user domain.User, err error, code int) {
	if err != nil {
		clearSessionCookie(w)
		writeServiceError(w, r, err)
		return
	}
	setSessionCookie(w, sess.ID)
	httpx.WriteSuccess(w, code, payload(user, sess))
}

// HandleRefresh extends the inactivity timeout of the presented session. An
// unauthenticated request gets a 401 without any Set-Cookie header.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	sess, user, err := h.Sessions.Refresh(r.Context(), cookieID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, payload(user, sess))
}

// HandleWhoami reports the session user. Reading the session counts as
// activity and pushes the expiry out.
func (h *AuthHandler) HandleWhoami(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	sess, user, err := h.Sessions.Whoami(r.Context(), cookieID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, payload(user, sess))
}

// HandleLogout invalidates the presented session and drops the cookie.
// Without a valid session it reports 401 like any other protected endpoint.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	if err := h.Sessions.Logout(r.Context(), cookieID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	clearSessionCookie(w)
	httpx.WriteSuccess(w, http.StatusOK, nil)
}
