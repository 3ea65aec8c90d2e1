package metro

import (
	"context"
	"net/http"
	"time"

	"github.com/transitline/metro-console/internal/core/domain"
)

// wireUser is the unified user shape the collaborator sends: one record with
// optional fields for either variant, discriminated by is_admin. Decoding
// folds it into the domain's closed Identity union, so the boolean cannot
// disagree with the in-memory shape afterwards.
type wireUser struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	IsAdmin      bool       `json:"is_admin"`
	Roles        []string   `json:"roles"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	IsActive     bool       `json:"is_active"`
	Is2FAEnabled bool       `json:"is_2fa_enabled"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (w *wireUser) toIdentity() domain.Identity {
	if w.IsAdmin {
		return &domain.Administrator{
			ID:               w.ID,
			Email:            w.Email,
			Username:         w.Username,
			FullName:         w.FullName,
			Roles:            w.Roles,
			Active:           w.IsActive,
			TwoFactorEnabled: w.Is2FAEnabled,
			LastLogin:        w.LastLogin,
			CreatedAt:        w.CreatedAt,
			UpdatedAt:        w.UpdatedAt,
		}
	}
	return &domain.Passenger{
		ID:        w.ID,
		Email:     w.Email,
		Name:      w.Name,
		Roles:     w.Roles,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// authEnvelope is the login/register response shape.
type authEnvelope struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        *wireUser `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (string, domain.Identity, error) {
	env, err := c.doAuth(ctx, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", nil, err
	}
	return env.AccessToken, env.User.toIdentity(), nil
}

// Register creates an account. The backend auto-logs-in on success, so the
// response carries a token and identity just like Login.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, domain.Identity, error) {
	env, err := c.doAuth(ctx, "/auth/register", registerRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return "", nil, err
	}
	return env.AccessToken, env.User.toIdentity(), nil
}

// CurrentIdentity resolves the stored token to its identity. A 401 surfaces
// as domain.ErrSessionExpired.
func (c *Client) CurrentIdentity(ctx context.Context) (domain.Identity, error) {
	var w wireUser
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &w); err != nil {
		return nil, err
	}
	return w.toIdentity(), nil
}
