package models

import (
	"fmt"
	"time"
)

// Profile is one user record returned by the profile API.
type Profile struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	PictureURL  string    `json:"picture_url"`
	Street      Street    `json:"street"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Postcode    string    `json:"postcode"`
	DateOfBirth time.Time `json:"date_of_birth"`
}

type Street struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// FullName returns "first last", the string search matches against.
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Location returns "city, state" as shown on a card.
func (p Profile) Location() string {
	return fmt.Sprintf("%s, %s", p.City, p.State)
}

// AddressLine returns "number name, country, postcode".
func (p Profile) AddressLine() string {
	return fmt.Sprintf("%d %s, %s, %s", p.Street.Number, p.Street.Name, p.Country, p.Postcode)
}

// Birthday formats the date of birth as MM/DD/YYYY using its UTC calendar date.
func (p Profile) Birthday() string {
	return FormatBirthday(p.DateOfBirth)
}

// FormatBirthday renders t as MM/DD/YYYY in UTC, independent of the local zone.
func FormatBirthday(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("01/02/2006")
}
