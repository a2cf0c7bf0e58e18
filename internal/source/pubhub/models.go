package pubhub

// Pub is the raw publication object returned by the platform's
// paginated /pubs endpoint. Most fields are optional; the normalizer
// owns the fallback rules.
type Pub struct {
	ID                string        `json:"id"`
	Slug              string        `json:"slug"`
	Title             string        `json:"title"`
	Description       *string       `json:"description"`
	DOI               *string       `json:"doi"`
	CreatedAt         string        `json:"createdAt"`
	UpdatedAt         string        `json:"updatedAt"`
	CustomPublishedAt *string       `json:"customPublishedAt"`
	Attributions      []Attribution `json:"attributions"`
	LicenseSlug       *string       `json:"licenseSlug"`
	Labels            []Label       `json:"labels"`
	Downloads         []Download    `json:"downloads"`

	// Content is not part of the API payload; the source fills it from a
	// plain-text download or the HTML fallback.
	Content string `json:"-"`
}

// Attribution is one entry of a pub's ordered author list.
type Attribution struct {
	Name            string   `json:"name"`
	Affiliation     *string  `json:"affiliation"`
	ORCID           *string  `json:"orcid"`
	Roles           []string `json:"roles"`
	IsCorresponding bool     `json:"isCorresponding"`
	Order           float64  `json:"order"`
	User            *PubUser `json:"user"`
}

// PubUser carries the registered-user fields of an attribution, used as
// fallbacks when the attribution itself is bare.
type PubUser struct {
	FullName string  `json:"fullName"`
	ORCID    *string `json:"orcid"`
}

type Label struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type Download struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}
