package house

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no house matches a lookup.
var ErrNotFound = errors.New("house not found")

// House is one of the four Hogwarts houses. Values are fixed at build time.
type House struct {
	Slug    string    `json:"slug"`
	Name    string    `json:"name"`
	Colors  [2]string `json:"colors"`
	Symbol  string    `json:"symbol"`
	Motto   string    `json:"motto"`
	Blurb   string    `json:"blurb"`
	Founder string    `json:"founder"`
}

var houses = [...]House{
	{
		Slug:    "gryffindor",
		Name:    "Gryffindor",
		Colors:  [2]string{"#740001", "#d3a625"},
		Symbol:  "🦁",
		Motto:   "Bravery, daring and chivalry",
		Blurb:   "The house that prizes courage, honesty and a readiness for great deeds.",
		Founder: "Godric Gryffindor",
	},
	{
		Slug:    "slytherin",
		Name:    "Slytherin",
		Colors:  [2]string{"#1a472a", "#aaaaaa"},
		Symbol:  "🐍",
		Motto:   "Ambition, cunning and resourcefulness",
		Blurb:   "The house of the ambitious and the determined.",
		Founder: "Salazar Slytherin",
	},
	{
		Slug:    "hufflepuff",
		Name:    "Hufflepuff",
		Colors:  [2]string{"#ecb939", "#372e29"},
		Symbol:  "🦡",
		Motto:   "Hard work, loyalty and fair play",
		Blurb:   "A house that values honest work, kindness and patience.",
		Founder: "Helga Hufflepuff",
	},
	{
		Slug:    "ravenclaw",
		Name:    "Ravenclaw",
		Colors:  [2]string{"#0e1a40", "#946b2d"},
		Symbol:  "🦅",
		Motto:   "Wisdom, creativity and a sharp mind",
		Blurb:   "The house for the curious and the quick-witted.",
		Founder: "Rowena Ravenclaw",
	},
}

// All returns the houses in their canonical order. The slice is a copy.
func All() []House {
	out := make([]House, len(houses))
	copy(out, houses[:])
	return out
}

// BySlug finds a house by slug or name, ignoring case.
func BySlug(slug string) (House, error) {
	slug = strings.TrimSpace(slug)
	for _, h := range houses {
		if strings.EqualFold(h.Slug, slug) || strings.EqualFold(h.Name, slug) {
			return h, nil
		}
	}
	return House{}, ErrNotFound
}
