// Package gauth provides the authentication collaborator: bearer
// tokens for the Google APIs and the account display name used on the
// cover slide.
package gauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// DefaultDisplayName is used when the account name cannot be fetched.
const DefaultDisplayName = "사용자"

// Authenticator is the surface the pipeline needs from the auth layer.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
	AccessToken(ctx context.Context) (string, error)
	AccountDisplayName(ctx context.Context) (string, error)
}

// AuthError is a fatal authentication failure; the pipeline aborts
// before any remote mutation when it occurs.
type AuthError struct {
	Reason string
	Cause  error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// GoogleAuthenticator authenticates against Google via an oauth2 token
// source and resolves the display name through the userinfo endpoint.
type GoogleAuthenticator struct {
	ts       oauth2.TokenSource
	userinfo *googleoauth.Service
}

// New builds an authenticator from a token source. The token source is
// responsible for refresh; this layer only hands out valid bearer
// credentials.
func New(ctx context.Context, ts oauth2.TokenSource) (*GoogleAuthenticator, error) {
	if ts == nil {
		return nil, &AuthError{Reason: "no token source configured"}
	}
	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, &AuthError{Reason: "failed to create userinfo service", Cause: err}
	}
	return &GoogleAuthenticator{ts: ts, userinfo: svc}, nil
}

// StaticTokenSource wraps a raw access token, for callers that already
// completed the sign-in flow elsewhere.
func StaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}

// IsAuthenticated reports whether a usable bearer token is available.
func (a *GoogleAuthenticator) IsAuthenticated(ctx context.Context) bool {
	_, err := a.AccessToken(ctx)
	return err == nil
}

// AccessToken returns a valid bearer token, refreshing if the source
// supports it.
func (a *GoogleAuthenticator) AccessToken(_ context.Context) (string, error) {
	tok, err := a.ts.Token()
	if err != nil {
		return "", &AuthError{Reason: "could not obtain access token", Cause: err}
	}
	if tok.AccessToken == "" {
		return "", &AuthError{Reason: "token source returned an empty token"}
	}
	return tok.AccessToken, nil
}

// AccountDisplayName fetches the signed-in account's name. Callers
// treat failure as non-fatal and substitute DefaultDisplayName.
func (a *GoogleAuthenticator) AccountDisplayName(ctx context.Context) (string, error) {
	info, err := a.userinfo.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch account info: %w", err)
	}
	if info.Name == "" {
		return "", fmt.Errorf("account info has no display name")
	}
	return info.Name, nil
}
