package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Session cookie settings
const (
	SessionName = "session"

	keyUserID   = "user_id"
	keyUsername = "username"
)

// Manager implements session-cookie authentication backed by the user
// store. It satisfies the server's Authenticator capability.
type Manager struct {
	store      *Store
	secret     string
	production bool
}

// NewManager creates a session manager over the given user store.
func NewManager(store *Store, secret string, production bool) *Manager {
	return &Manager{store: store, secret: secret, production: production}
}

// SessionLayer returns the middleware that attaches the cookie-backed
// session to every request. Install it engine-wide before any route.
func (m *Manager) SessionLayer() gin.HandlerFunc {
	store := cookie.NewStore([]byte(m.secret))

	sameSite := http.SameSiteLaxMode
	if m.production {
		// Cross-origin frontend deployments need None+Secure.
		sameSite = http.SameSiteNoneMode
	}
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   m.production,
		SameSite: sameSite,
	})

	return sessions.Sessions(SessionName, store)
}

// RequireAuth rejects requests without an authenticated session.
func (m *Manager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(keyUserID) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}
		c.Next()
	}
}

// Register mounts the login, logout and session-check routes.
func (m *Manager) Register(api gin.IRouter) {
	api.POST("/login", m.handleLogin)
	api.POST("/logout", m.RequireAuth(), m.handleLogout)
	api.GET("/me", m.handleMe)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (m *Manager) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se enviaron datos"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuario y contraseña requeridos"})
		return
	}

	user, err := m.store.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
			return
		}
		log.Error().Err(err).Msg("login lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}

	session := sessions.Default(c)
	session.Set(keyUserID, user.ID)
	session.Set(keyUsername, user.Username)
	if err := session.Save(); err != nil {
		log.Error().Err(err).Msg("failed to save session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}

	log.Info().Str("username", user.Username).Msg("login")
	c.JSON(http.StatusOK, gin.H{"mensaje": "Login exitoso", "username": user.Username})
}

func (m *Manager) handleLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error().Err(err).Msg("failed to clear session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Sesión cerrada"})
}

// handleMe lets the frontend check whether the session is still active
// after a page reload.
func (m *Manager) handleMe(c *gin.Context) {
	session := sessions.Default(c)
	username, ok := session.Get(keyUsername).(string)
	if session.Get(keyUserID) == nil || !ok {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "username": username})
}
