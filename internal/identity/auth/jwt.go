// Package auth mints and introspects the signed, time-bounded assertions the
// identity service hands out after a successful login.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the assertion payload: iss, sub, scope, iat, exp.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope,omitempty"`
}

// Principal is the subject and role an assertion vouches for.
type Principal = common.Principal

// Issuer signs assertions with a symmetric secret. It keeps no record of
// what it has issued.
type Issuer struct {
	secret   []byte
	issuer   string
	validity time.Duration
	now      func() time.Time
}

func NewIssuer(secretKey []byte, issuer string, validity time.Duration) *Issuer {
	return &Issuer{secret: secretKey, issuer: issuer, validity: validity, now: time.Now}
}

// Issue returns an HS256 assertion for subjectID and role.
func (i *Issuer) Issue(subjectID string, role common.Role) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		Scope: string(role),
	})

	return token.SignedString(i.secret)
}

// Verifier is the introspection authority: it decides whether an assertion
// is trusted and what it says.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewVerifier(secretKey []byte, issuer string) *Verifier {
	return &Verifier{secret: secretKey, issuer: issuer, now: time.Now}
}

// Introspect validates tokenString and returns its principal.
//
// Bad signature, malformed structure, wrong algorithm, wrong issuer, a
// missing subject or scope, or an unrecognized role yield
// common.ErrInvalidToken; an expiry at or before now yields
// common.ErrTokenExpired.
func (v *Verifier) Introspect(tokenString string) (*Principal, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.NewError(common.KindInvalidToken, "Invalid token", err)
	}

	// explicit re-check; exp must be strictly in the future
	if claims.ExpiresAt == nil || !v.now().Before(claims.ExpiresAt.Time) {
		return nil, common.ErrTokenExpired
	}
	if claims.Issuer != v.issuer {
		return nil, common.ErrInvalidToken
	}
	if claims.Subject == "" || claims.Scope == "" {
		return nil, common.ErrInvalidToken
	}
	role, ok := common.ParseRole(claims.Scope)
	if !ok {
		return nil, common.ErrInvalidToken
	}

	return &Principal{SubjectID: claims.Subject, Role: role}, nil
}
