package sitemap

import (
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
)

const (
	openSearchNamespace = "http://a9.com/-/spec/opensearch/1.1/"

	openSearchMaxNameLength        = 16
	openSearchMaxDescriptionLength = 1024
)

type openSearchDescription struct {
	XMLName     xml.Name      `xml:"OpenSearchDescription"`
	Xmlns       string        `xml:"xmlns,attr"`
	ShortName   string        `xml:"ShortName"`
	Description string        `xml:"Description"`
	URL         openSearchURL `xml:"Url"`
}

type openSearchURL struct {
	Type     string `xml:"type,attr"`
	Template string `xml:"template,attr"`
}

// OpenSearch renders the browser search-provider descriptor and the
// HTML header link that advertises it.
type OpenSearch struct {
	name        string
	description string
	siteBaseURL *url.URL
}

func NewOpenSearch(name, description, siteBaseURL string) (*OpenSearch, error) {
	if name == "" {
		return nil, &errors.ErrMissingRequiredField{FieldName: "name"}
	}

	if len(name) > openSearchMaxNameLength {
		return nil, &errors.ErrInvalidValue{
			FieldName: "name",
			Value:     name,
			Reason:    "the name must be 16 characters or less",
		}
	}

	if len(description) > openSearchMaxDescriptionLength {
		return nil, &errors.ErrInvalidValue{
			FieldName: "description",
			Value:     description,
			Reason:    "the description must be 1024 characters or less",
		}
	}

	base, err := url.Parse(siteBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site base URL: %w", err)
	}

	return &OpenSearch{
		name:        name,
		description: description,
		siteBaseURL: base,
	}, nil
}

// Descriptor renders the OpenSearch XML document.
func (o *OpenSearch) Descriptor() ([]byte, error) {
	searchURL := o.siteBaseURL.ResolveReference(&url.URL{
		Path:     "/search.aspx",
		RawQuery: "q={searchTerms}",
	})

	doc := openSearchDescription{
		Xmlns:       openSearchNamespace,
		ShortName:   o.name,
		Description: o.description,
		URL: openSearchURL{
			Type:     "text/html",
			Template: searchURL.String(),
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal descriptor: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}

// HeaderLink returns the <link> element advertising the descriptor,
// suitable for injection into the page head.
func (o *OpenSearch) HeaderLink() string {
	href := o.siteBaseURL.ResolveReference(&url.URL{Path: "/opensearch.xml"})

	return fmt.Sprintf(
		`<link rel="search" type="application/opensearchdescription+xml" href="%s" title="%s">`,
		href.String(),
		o.name,
	)
}
