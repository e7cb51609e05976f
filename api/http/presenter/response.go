package presenter

import (
	"time"

	"github.com/artem13815/user-management/pkg/user"
)

// All externally visible timestamps use one fixed human-readable pattern,
// rendered in America/Bogota regardless of server timezone.
const timeLayout = "Jan 02, 2006 03:04:05 PM"

var bogota = mustLoadLocation("America/Bogota")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func FormatTime(t time.Time) string {
	return t.In(bogota).Format(timeLayout)
}

type PhoneResponse struct {
	Number      int64  `json:"number"`
	CityCode    int    `json:"citycode"`
	CountryCode string `json:"countrycode"`
}

// SignUpResponse echoes only the fields a fresh registration needs;
// the password and phone list are never sent back.
type SignUpResponse struct {
	ID        string `json:"id"`
	Created   string `json:"created"`
	LastLogin string `json:"lastLogin"`
	Token     string `json:"token"`
	IsActive  bool   `json:"isActive"`
}

// LoginResponse carries the full profile. The password field holds the
// stored hash, never the plaintext.
type LoginResponse struct {
	ID        string          `json:"id"`
	Created   string          `json:"created"`
	LastLogin string          `json:"lastLogin"`
	Token     string          `json:"token"`
	IsActive  bool            `json:"isActive"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Phones    []PhoneResponse `json:"phones"`
}

func NewSignUpResponse(u user.User) SignUpResponse {
	return SignUpResponse{
		ID:        u.ID.String(),
		Created:   FormatTime(u.Created),
		LastLogin: FormatTime(u.LastLogin),
		Token:     u.Token,
		IsActive:  u.IsActive,
	}
}

func NewLoginResponse(u user.User) LoginResponse {
	phones := make([]PhoneResponse, 0, len(u.Phones))
	for _, p := range u.Phones {
		phones = append(phones, PhoneResponse{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}
	return LoginResponse{
		ID:        u.ID.String(),
		Created:   FormatTime(u.Created),
		LastLogin: FormatTime(u.LastLogin),
		Token:     u.Token,
		IsActive:  u.IsActive,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Phones:    phones,
	}
}
