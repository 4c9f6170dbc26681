package domain

import (
	"slices"
	"strconv"
	"strings"
)

// User is a registered learner. Email is stored normalized and is unique.
// Password is kept in plaintext; this mirrors the demo backend and is not
// a security model.
type User struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Interests []string `json:"interests"`
	Bio       string   `json:"bio"`
	Avatar    string   `json:"avatar"`
}

// NormalizeEmail is the only form in which emails are compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u User) MatchesID(id string) bool {
	return strconv.Itoa(u.ID) == strings.TrimSpace(id)
}

func (u User) Clone() User {
	out := u
	out.Interests = slices.Clone(u.Interests)
	return out
}
