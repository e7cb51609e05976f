package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered user.
// LastLogin is set at creation and moves forward on every token login;
// Token always holds the most recently issued JWT for this user.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Created      time.Time
	LastLogin    time.Time
	Token        string
	IsActive     bool
	Phones       []Phone
}

// Phone is owned by its User: it is created together with the user at
// sign-up and removed when the user row is deleted.
type Phone struct {
	Number      int64
	CityCode    int
	CountryCode string
}
