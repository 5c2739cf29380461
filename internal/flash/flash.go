// Package flash carries a submission outcome across the post/redirect/get
// of the registration form in a short lived signed cookie.
package flash

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "registration_outcome"
	Duration   = 10 * time.Minute
)

var ErrNoOutcome = errors.New("no registration outcome")

type Outcome struct {
	MissionID int64
	// Kind is "success" or "already_registered".
	Kind      string
	FirstName string
}

type Signer struct {
	secret []byte
	secure bool
}

func NewSigner(secret string, secureCookies bool) *Signer {
	return &Signer{secret: []byte(secret), secure: secureCookies}
}

func (s *Signer) GenerateToken(o Outcome) (string, error) {
	claims := jwt.MapClaims{
		"mission_id": strconv.FormatInt(o.MissionID, 10),
		"outcome":    o.Kind,
		"first_name": o.FirstName,
		"exp":        time.Now().Add(Duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Signer) ParseToken(tokenString string) (Outcome, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Outcome{}, fmt.Errorf("flash.ParseToken: %w", ErrNoOutcome)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Outcome{}, fmt.Errorf("flash.ParseToken: %w", ErrNoOutcome)
	}
	idStr, _ := claims["mission_id"].(string)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return Outcome{}, fmt.Errorf("flash.ParseToken: %w", ErrNoOutcome)
	}
	kind, _ := claims["outcome"].(string)
	name, _ := claims["first_name"].(string)
	return Outcome{MissionID: id, Kind: kind, FirstName: name}, nil
}

// Set writes the outcome cookie, scoped to the mission's registration pages.
func (s *Signer) Set(w http.ResponseWriter, o Outcome) error {
	token, err := s.GenerateToken(o)
	if err != nil {
		return fmt.Errorf("flash.Set: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/registration/",
		Expires:  time.Now().Add(Duration),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Take reads the outcome for missionID and clears the cookie, so a reload of
// the done page does not show it again.
func (s *Signer) Take(w http.ResponseWriter, r *http.Request, missionID int64) (Outcome, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Outcome{}, ErrNoOutcome
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/registration/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	o, err := s.ParseToken(cookie.Value)
	if err != nil {
		return Outcome{}, err
	}
	if o.MissionID != missionID {
		return Outcome{}, ErrNoOutcome
	}
	return o, nil
}
