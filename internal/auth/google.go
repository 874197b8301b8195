package auth

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// ErrInvalidAssertion is returned when a Google ID token fails verification.
var ErrInvalidAssertion = errors.New("invalid google token")

// GoogleClaims are the verified claims extracted from a Google ID token.
type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier validates Google ID tokens against Google's published
// signing keys and the application's registered client ID. No claim is read
// before the token is verified.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, assertion string) (GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, assertion, v.clientID)
	if err != nil {
		return GoogleClaims{}, ErrInvalidAssertion
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return GoogleClaims{}, ErrInvalidAssertion
	}
	name, _ := payload.Claims["name"].(string)

	return GoogleClaims{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
	}, nil
}
