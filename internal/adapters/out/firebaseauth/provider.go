// internal/adapters/out/firebaseauth/provider.go
package firebaseauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/go-resty/resty/v2"

	identitydom "storefront/internal/domain/identity"
)

// DefaultSignInEndpoint is the Identity Toolkit password sign-in REST endpoint.
// Password verification is a client-side operation in Firebase, so the Admin SDK has no equivalent.
const DefaultSignInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// AdminAuth is the part of *auth.Client used here.
type AdminAuth interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

// Provider implements identity.Provider with Firebase Auth.
//
// - sign-in: Identity Toolkit REST (web API key)
// - sign-up / profile / sign-out / token verification: Admin SDK
type Provider struct {
	Admin    AdminAuth
	APIKey   string
	Endpoint string

	httpOnce sync.Once
	http     *resty.Client
}

func NewProvider(admin AdminAuth, apiKey string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		Admin:    admin,
		APIKey:   strings.TrimSpace(apiKey),
		Endpoint: DefaultSignInEndpoint,
		http:     resty.New().SetTimeout(timeout),
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

type restError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*identitydom.Identity, error) {
	if p == nil || p.APIKey == "" {
		return nil, errors.New("firebaseauth: web API key is not configured")
	}

	var out signInResponse
	var apiErr restError
	resp, err := p.client().R().
		SetContext(ctx).
		SetQueryParam("key", p.APIKey).
		SetBody(signInRequest{Email: email, Password: password, ReturnSecureToken: true}).
		SetResult(&out).
		SetError(&apiErr).
		Post(p.endpoint())
	if err != nil {
		return nil, fmt.Errorf("firebaseauth: sign in: %w", err)
	}
	if resp.IsError() {
		msg := strings.TrimSpace(apiErr.Error.Message)
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("%w: %s", identitydom.ErrRejected, msg)
	}
	if strings.TrimSpace(out.LocalID) == "" {
		return nil, errors.New("firebaseauth: sign in response has no localId")
	}

	return &identitydom.Identity{
		UID:         out.LocalID,
		Email:       out.Email,
		DisplayName: out.DisplayName,
		Favorites:   []string{},
	}, nil
}

func (p *Provider) SignUp(ctx context.Context, email, password, displayName string) (*identitydom.Identity, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	rec, err := p.Admin.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, fmt.Errorf("%w: EMAIL_EXISTS", identitydom.ErrRejected)
		}
		return nil, fmt.Errorf("firebaseauth: create user: %w", err)
	}
	return fromRecord(rec), nil
}

// SignOut revokes the refresh tokens of uid. ID tokens already issued stay valid until expiry.
func (p *Provider) SignOut(ctx context.Context, uid string) error {
	if err := p.ready(); err != nil {
		return err
	}
	if err := p.Admin.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("firebaseauth: revoke tokens: %w", err)
	}
	return nil
}

func (p *Provider) UpdateProfile(ctx context.Context, uid, displayName string) (*identitydom.Identity, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	rec, err := p.Admin.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).DisplayName(displayName))
	if err != nil {
		return nil, fmt.Errorf("firebaseauth: update user: %w", err)
	}
	return fromRecord(rec), nil
}

func (p *Provider) VerifyIDToken(ctx context.Context, idToken string) (*identitydom.Identity, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	tok, err := p.Admin.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", identitydom.ErrRejected)
	}

	uid := strings.TrimSpace(tok.UID)
	if uid == "" {
		return nil, fmt.Errorf("%w: invalid uid in token", identitydom.ErrRejected)
	}

	// displayName は token claims に無いことがあるので user record を優先
	if rec, err := p.Admin.GetUser(ctx, uid); err == nil {
		return fromRecord(rec), nil
	}

	return &identitydom.Identity{
		UID:         uid,
		Email:       claimString(tok.Claims, "email"),
		DisplayName: claimString(tok.Claims, "name"),
		Favorites:   []string{},
	}, nil
}

func (p *Provider) ready() error {
	if p == nil || p.Admin == nil {
		return errors.New("firebaseauth: admin auth client is nil")
	}
	return nil
}

// client returns the REST client. A Provider built without NewProvider gets a default one once.
func (p *Provider) client() *resty.Client {
	p.httpOnce.Do(func() {
		if p.http == nil {
			p.http = resty.New().SetTimeout(10 * time.Second)
		}
	})
	return p.http
}

func (p *Provider) endpoint() string {
	if e := strings.TrimSpace(p.Endpoint); e != "" {
		return e
	}
	return DefaultSignInEndpoint
}

func fromRecord(rec *auth.UserRecord) *identitydom.Identity {
	if rec == nil || rec.UserInfo == nil {
		return &identitydom.Identity{Favorites: []string{}}
	}
	return &identitydom.Identity{
		UID:         rec.UID,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
		Favorites:   []string{},
	}
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok2 := v.(string); ok2 {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
