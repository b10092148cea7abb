package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"oumybeauty/internal/usecase"
	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/response"
)

// SessionName is the cookie holding the per-client admin flag.
const SessionName = "oumy_admin"

// Sessions installs the cookie session store the admin flag lives in.
func Sessions(secret string, secure bool) echo.MiddlewareFunc {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return session.Middleware(store)
}

// SessionFlags exposes a session as a usecase.FlagStore. Call Save after
// changing it.
type SessionFlags struct {
	sess *sessions.Session
	c    echo.Context
}

func LoadSessionFlags(c echo.Context) (*SessionFlags, error) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		// a cookie signed with another secret decodes as a fresh session
		if sess == nil {
			return nil, err
		}
	}
	return &SessionFlags{sess: sess, c: c}, nil
}

func (f *SessionFlags) Get(key string) (string, bool) {
	v, ok := f.sess.Values[key].(string)
	return v, ok
}

func (f *SessionFlags) Set(key, value string) {
	f.sess.Values[key] = value
}

func (f *SessionFlags) Delete(key string) {
	delete(f.sess.Values, key)
}

func (f *SessionFlags) Save() error {
	return f.sess.Save(f.c.Request(), f.c.Response())
}

type AdminMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAdminMiddleware(authUseCase *usecase.AuthUseCase) *AdminMiddleware {
	return &AdminMiddleware{
		authUseCase: authUseCase,
	}
}

// AdminOnly gates catalog writes on the adminAuthenticated flag.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		flags, err := LoadSessionFlags(c)
		if err != nil || !m.authUseCase.IsAuthenticated(flags) {
			return response.Error(c, errors.Unauthorized("Admin authentication required", err))
		}
		return next(c)
	}
}
