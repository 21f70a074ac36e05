package randomuser

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/vytor/userdirectory/internal/models"
)

// response mirrors the subset of the API payload the directory renders.
type response struct {
	Results []user `json:"results"`
	Error   string `json:"error"`
}

type user struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Email   string `json:"email"`
	Cell    string `json:"cell"`
	Picture struct {
		Large string `json:"large"`
	} `json:"picture"`
	Location struct {
		Street struct {
			Number int    `json:"number"`
			Name   string `json:"name"`
		} `json:"street"`
		City     string   `json:"city"`
		State    string   `json:"state"`
		Country  string   `json:"country"`
		Postcode postcode `json:"postcode"`
	} `json:"location"`
	DOB struct {
		Date string `json:"date"`
	} `json:"dob"`
}

// postcode is a number for some nationalities and a string for others.
type postcode string

func (p *postcode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = postcode(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = postcode(n.String())
	return nil
}

func (u user) toProfile() models.Profile {
	return models.Profile{
		FirstName:  u.Name.First,
		LastName:   u.Name.Last,
		Email:      u.Email,
		Phone:      u.Cell,
		PictureURL: u.Picture.Large,
		Street: models.Street{
			Number: u.Location.Street.Number,
			Name:   u.Location.Street.Name,
		},
		City:        u.Location.City,
		State:       u.Location.State,
		Country:     u.Location.Country,
		Postcode:    string(u.Location.Postcode),
		DateOfBirth: parseDOB(u.DOB.Date),
	}
}

// parseDOB accepts the API's RFC 3339 timestamps; anything else yields the
// zero time, which renders as an empty birthday.
func parseDOB(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if d, derr := time.Parse("2006-01-02", s); derr == nil {
			return d
		}
		return time.Time{}
	}
	return t.UTC()
}
