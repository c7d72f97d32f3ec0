package apiclient

import "context"

// User is the authenticated account as returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a token and user. The token is NOT stored
// here; the session store decides whether a login sticks.
func (c *Client) Login(ctx context.Context, email, password string) (*User, string, error) {
	var res authResponse
	err := c.sendJSON(ctx, "POST", "/auth/login", loginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, "", err
	}
	return &res.User, res.Token, nil
}

// Refresh exchanges the stored token for a fresh one.
func (c *Client) Refresh(ctx context.Context) (*User, string, error) {
	var res authResponse
	if err := c.getJSON(ctx, "/auth/refresh", &res); err != nil {
		return nil, "", err
	}
	return &res.User, res.Token, nil
}

// CreateUser registers a new account (ADMIN only).
func (c *Client) CreateUser(ctx context.Context, email, password, role string) (*User, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role,omitempty"`
	}{email, password, role}
	var user User
	if err := c.sendJSON(ctx, "POST", "/users", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
