package domain

import "time"

// Record is the normalizer's canonical output: one publication as seen
// on the remote platform at fetch time, before version reconciliation.
type Record struct {
	ArticleID   string
	Slug        string
	Title       string
	Description string
	DOI         string
	License     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
	Content     string
	Authors     []Author
	Collections []string
	Keywords    []string
	URL         string
	PDFURL      string
}

// Author is one entry of a publication's ordered attribution list.
type Author struct {
	Name          string   `json:"name"`
	Affiliation   string   `json:"affiliation,omitempty"`
	ORCID         string   `json:"orcid,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	Corresponding bool     `json:"corresponding,omitempty"`
}
