package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"findcourse/internal/cli/api"
	fsrepo "findcourse/internal/cli/repo/fs"
	"findcourse/internal/model"
)

// State is the session lifecycle. The registration flow passes through
// Registering/AwaitingOtp/Verified transiently inside Register and
// VerifyOTP; only Anonymous and Authenticated survive between runs.
type State int

const (
	Anonymous State = iota
	Registering
	AwaitingOtp
	Verified
	LoggingIn
	Authenticated
)

var (
	// ErrLoginRequired is returned by operations that need a session.
	ErrLoginRequired = errors.New("login required")

	// ErrSessionExpired means a 401 on the profile fetch cleared the
	// stored tokens; the user has to log in again.
	ErrSessionExpired = errors.New("session expired, please login again")
)

// Session is the explicit session object threaded through the command
// layer instead of ambient token reads scattered per screen.
type Session struct {
	client *api.Client
	store  fsrepo.TokenFSStore

	state  State
	claims *Claims
}

// Resolve loads the stored access token, decodes its payload, and
// returns a session. A missing token or a decode failure both yield an
// anonymous session, never an error.
func Resolve(client *api.Client, store fsrepo.TokenFSStore) *Session {
	s := &Session{client: client, store: store, state: Anonymous}
	token, err := store.LoadAccess()
	if err != nil {
		return s
	}
	claims, err := DecodeClaims(token)
	if err != nil {
		return s
	}
	s.state = Authenticated
	s.claims = claims
	client.SetToken(token)
	return s
}

func (s *Session) State() State         { return s.state }
func (s *Session) Authenticated() bool  { return s.state == Authenticated }
func (s *Session) Claims() *Claims      { return s.claims }
func (s *Session) Client() *api.Client  { return s.client }

// UserID returns the decoded (advisory) user id, 0 when anonymous.
func (s *Session) UserID() int64 {
	if s.claims == nil {
		return 0
	}
	return s.claims.UserID
}

// IsCEO reports whether the decoded role is CEO. UI gating only.
func (s *Session) IsCEO() bool {
	return s.claims != nil && s.claims.Role == model.RoleCEO
}

// Login obtains a token pair, immediately exchanges the refresh token
// for a renewed pair, and persists the tokens of the second response.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}
	s.state = LoggingIn

	var first model.TokenPair
	if err := s.client.PostJSON(ctx, "/users/login", map[string]string{
		"email": email, "password": password,
	}, &first); err != nil {
		s.state = Anonymous
		return err
	}
	if first.RefreshToken == "" {
		s.state = Anonymous
		return errors.New("login response carried no refreshToken")
	}
	// the web client persists the first pair before rotating; keep the
	// same order so an interrupted rotation still leaves a session
	if err := s.persist(first); err != nil {
		s.state = Anonymous
		return err
	}

	var renewed model.TokenPair
	if err := s.client.PostJSON(ctx, "/users/refreshToken", map[string]string{
		"refreshToken": first.RefreshToken,
	}, &renewed); err != nil {
		s.state = Anonymous
		return fmt.Errorf("refreshing token: %w", err)
	}
	if renewed.RefreshToken == "" {
		// rotation may omit the refresh token; the previous one stays valid
		renewed.RefreshToken = first.RefreshToken
	}
	if err := s.persist(renewed); err != nil {
		s.state = Anonymous
		return err
	}

	claims, err := DecodeClaims(renewed.AccessToken)
	if err != nil {
		s.state = Anonymous
		return fmt.Errorf("decoding access token: %w", err)
	}
	s.claims = claims
	s.state = Authenticated
	s.client.SetToken(renewed.AccessToken)
	return nil
}

func (s *Session) persist(pair model.TokenPair) error {
	if err := s.store.SaveAccess(pair.AccessToken); err != nil {
		return fmt.Errorf("saving access token: %w", err)
	}
	if err := s.store.SaveRefresh(pair.RefreshToken); err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}
	return nil
}

// RegisterInput is the registration form.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Image     string `json:"image,omitempty"`
}

// Validate reports the first missing required field. It runs before
// any request is issued.
func (in RegisterInput) Validate() error {
	switch {
	case strings.TrimSpace(in.FirstName) == "":
		return errors.New("firstName is required")
	case strings.TrimSpace(in.LastName) == "":
		return errors.New("lastName is required")
	case strings.TrimSpace(in.Email) == "":
		return errors.New("email is required")
	case strings.TrimSpace(in.Phone) == "":
		return errors.New("phone is required")
	case in.Password == "":
		return errors.New("password is required")
	}
	if in.Role != model.RoleUser && in.Role != model.RoleCEO {
		return fmt.Errorf("role must be %s or %s", model.RoleUser, model.RoleCEO)
	}
	return nil
}

// Register creates the account and triggers the OTP email. On success
// the session is left in AwaitingOtp with the email carried forward by
// the caller; a failure at either step leaves the machine where it was.
func (s *Session) Register(ctx context.Context, in RegisterInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	s.state = Registering
	if err := s.client.PostJSON(ctx, "/users/register", in, nil); err != nil {
		return err
	}
	if err := s.client.PostJSON(ctx, "/users/send-otp", map[string]string{"email": in.Email}, nil); err != nil {
		return fmt.Errorf("sending otp: %w", err)
	}
	s.state = AwaitingOtp
	return nil
}

// VerifyOTP confirms the emailed code for the carried-forward email.
func (s *Session) VerifyOTP(ctx context.Context, email, otp string) error {
	if email == "" || otp == "" {
		return errors.New("email and otp are required")
	}
	if err := s.client.PostJSON(ctx, "/users/verify-otp", map[string]string{
		"email": email, "otp": otp,
	}, nil); err != nil {
		return err
	}
	s.state = Verified
	return nil
}

// Logout clears both token files and reverts to anonymous.
func (s *Session) Logout() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.state = Anonymous
	s.claims = nil
	s.client.SetToken("")
	return nil
}

// Mydata fetches the full profile (display fields, likes, receptions).
// A 401 here is the one distinguished failure: it clears the stored
// tokens and reports ErrSessionExpired.
func (s *Session) Mydata(ctx context.Context) (*model.Profile, error) {
	if !s.Authenticated() {
		return nil, ErrLoginRequired
	}
	var resp struct {
		Data model.Profile `json:"data"`
	}
	if err := s.client.GetJSON(ctx, "/users/mydata", &resp); err != nil {
		if api.IsUnauthorized(err) {
			_ = s.Logout()
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	return &resp.Data, nil
}
