// Package vcard exports directory profiles as vCard 4.0 contacts.
package vcard

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	govcard "github.com/emersion/go-vcard"
	"github.com/vytor/userdirectory/internal/models"
)

const ContentType = "text/vcard; charset=utf-8"

// Card builds the vCard for p.
func Card(p models.Profile) govcard.Card {
	card := make(govcard.Card)

	card.SetValue(govcard.FieldFormattedName, p.FullName())
	card.SetName(&govcard.Name{
		GivenName:  p.FirstName,
		FamilyName: p.LastName,
	})
	if p.Email != "" {
		card.SetValue(govcard.FieldEmail, p.Email)
	}
	if p.Phone != "" {
		card.Set(govcard.FieldTelephone, &govcard.Field{
			Value:  p.Phone,
			Params: govcard.Params{govcard.ParamType: {govcard.TypeCell}},
		})
	}
	if p.PictureURL != "" {
		card.SetValue(govcard.FieldPhoto, p.PictureURL)
	}
	card.SetAddress(&govcard.Address{
		StreetAddress: strings.TrimSpace(strconv.Itoa(p.Street.Number) + " " + p.Street.Name),
		Locality:      p.City,
		Region:        p.State,
		PostalCode:    p.Postcode,
		Country:       p.Country,
	})
	if !p.DateOfBirth.IsZero() {
		card.SetValue(govcard.FieldBirthday, p.DateOfBirth.UTC().Format("20060102"))
	}

	govcard.ToV4(card)
	return card
}

// Encode writes p as a single vCard.
func Encode(w io.Writer, p models.Profile) error {
	if err := govcard.NewEncoder(w).Encode(Card(p)); err != nil {
		return fmt.Errorf("encode vcard: %w", err)
	}
	return nil
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// Filename returns a download name such as "ann-lee.vcf".
func Filename(p models.Profile) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(p.FullName()), "-"), "-")
	if base == "" {
		base = "contact"
	}
	return base + ".vcf"
}
