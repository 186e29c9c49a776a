package scryfall

import (
	"cardvault/internal/card"
	"fmt"
)

// apiCard holds the subset of the Scryfall card object the vault keeps.
type apiCard struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	TypeLine  string     `json:"type_line"`
	Colors    []string   `json:"colors"`
	ImageURIs *imageURIs `json:"image_uris,omitempty"`
	CardFaces []cardFace `json:"card_faces,omitempty"`
}

type cardFace struct {
	Name      string     `json:"name"`
	ImageURIs *imageURIs `json:"image_uris,omitempty"`
}

type imageURIs struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
	Large  string `json:"large"`
}

type searchResponse struct {
	Object     string    `json:"object"`
	TotalCards int       `json:"total_cards"`
	HasMore    bool      `json:"has_more"`
	Data       []apiCard `json:"data"`
}

// APIError is the error object Scryfall returns with non-2xx responses.
type APIError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scryfall API error (%d %s): %s", e.Status, e.Code, e.Details)
}

func (c apiCard) imageURL() string {
	if c.ImageURIs != nil && c.ImageURIs.Normal != "" {
		return c.ImageURIs.Normal
	}
	// Double-faced cards carry images per face only.
	for _, f := range c.CardFaces {
		if f.ImageURIs != nil && f.ImageURIs.Normal != "" {
			return f.ImageURIs.Normal
		}
	}
	return ""
}

func (c apiCard) record() card.Record {
	colors := make([]card.Color, 0, len(c.Colors))
	for _, col := range c.Colors {
		colors = append(colors, card.Color(col))
	}
	if len(colors) == 0 {
		colors = nil
	}
	return card.Record{
		ID:       c.ID,
		Name:     c.Name,
		ImageURL: c.imageURL(),
		TypeLine: c.TypeLine,
		Colors:   colors,
	}
}
