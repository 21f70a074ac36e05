package directory

import "github.com/vytor/userdirectory/internal/models"

// Renderer is the display surface a Controller drives. RenderList replaces
// every previously rendered card. RenderOverlay either opens the overlay or
// updates the open one in place; CloseOverlay tears it down.
type Renderer interface {
	RenderList(cards []Card)
	RenderOverlay(view OverlayView)
	CloseOverlay()
}

// Card is the list view of one profile. Index is the profile's position in
// the ResultSet the card was rendered from; activating the card opens the
// overlay at that index.
type Card struct {
	Index      int
	Name       string
	Email      string
	Location   string
	PictureURL string
	Alt        string
}

// OverlayView is the detail view of the profile at Index.
type OverlayView struct {
	Index      int
	Total      int
	Name       string
	Email      string
	City       string
	Phone      string
	Address    string
	Birthday   string
	PictureURL string
	Alt        string
	ShowPrev   bool
	ShowNext   bool
}

func altText(p models.Profile) string {
	return "profile picture of " + p.FullName()
}

// NewCard builds the card for p at position i.
func NewCard(i int, p models.Profile) Card {
	return Card{
		Index:      i,
		Name:       p.FullName(),
		Email:      p.Email,
		Location:   p.Location(),
		PictureURL: p.PictureURL,
		Alt:        altText(p),
	}
}

// Cards builds one card per profile, in order.
func Cards(rs ResultSet) []Card {
	cards := make([]Card, len(rs))
	for i, p := range rs {
		cards[i] = NewCard(i, p)
	}
	return cards
}

// NewOverlayView builds the overlay for rs[i]. Prev and Next are shown only
// when there is a profile to move to. i must be in range.
func NewOverlayView(rs ResultSet, i int) OverlayView {
	p := rs[i]
	return OverlayView{
		Index:      i,
		Total:      len(rs),
		Name:       p.FullName(),
		Email:      p.Email,
		City:       p.City,
		Phone:      p.Phone,
		Address:    p.AddressLine(),
		Birthday:   "Birthday: " + p.Birthday(),
		PictureURL: p.PictureURL,
		Alt:        altText(p),
		ShowPrev:   i > 0,
		ShowNext:   i < len(rs)-1,
	}
}
