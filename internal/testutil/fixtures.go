package testutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/vytor/userdirectory/internal/models"
)

// Profiles builds one profile per "First Last" name with deterministic
// contact details derived from the name and its position.
func Profiles(names ...string) []models.Profile {
	out := make([]models.Profile, 0, len(names))
	for i, name := range names {
		first, last, _ := strings.Cut(name, " ")
		slug := strings.ToLower(first + "." + last)
		out = append(out, models.Profile{
			FirstName:   first,
			LastName:    last,
			Email:       slug + "@example.com",
			Phone:       fmt.Sprintf("(555) 010-%04d", i),
			PictureURL:  fmt.Sprintf("https://randomuser.me/api/portraits/lego/%d.jpg", i%10),
			Street:      models.Street{Number: 100 + i, Name: "Main Street"},
			City:        "Springfield",
			State:       "Oregon",
			Country:     "United States",
			Postcode:    fmt.Sprintf("%05d", 97400+i),
			DateOfBirth: time.Date(1980+i, time.Month(i%12+1), i%28+1, 0, 0, 0, 0, time.UTC),
		})
	}
	return out
}
