package render

import (
	"encoding/json"

	"github.com/louisbranch/almost2simple/internal/services/landing/content"
)

const (
	schemaContext  = "https://schema.org"
	schemaType     = "ProfessionalService"
	areaServed     = "Western Cape, South Africa"
	addressRegion  = "Western Cape"
	addressCountry = "ZA"
	// ldJSONType is the script type for structured data.
	ldJSONType = "application/ld+json"
)

type postalAddress struct {
	Type    string `json:"@type"`
	Region  string `json:"addressRegion"`
	Country string `json:"addressCountry"`
}

type businessSchema struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	Name       string        `json:"name"`
	AreaServed string        `json:"areaServed"`
	Address    postalAddress `json:"address"`
	Email      string        `json:"email,omitempty"`
	URL        string        `json:"url"`
}

// businessJSONLD encodes the ProfessionalService description of the business.
func businessJSONLD(s content.Settings, fallbackName string, pageURL string) (string, error) {
	data, err := json.Marshal(businessSchema{
		Context:    schemaContext,
		Type:       schemaType,
		Name:       content.Or(s.BusinessName, fallbackName),
		AreaServed: areaServed,
		Address: postalAddress{
			Type:    "PostalAddress",
			Region:  addressRegion,
			Country: addressCountry,
		},
		Email: s.Email,
		URL:   pageURL,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
