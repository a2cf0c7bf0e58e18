// Package normalize maps raw platform records onto the canonical
// domain.Record shape. Every optional field has one documented default;
// only the two identity fields are required.
package normalize

import (
	"sort"
	"time"

	"pub_archiver/internal/domain"
	"pub_archiver/internal/source/pubhub"
)

// Fallbacks applied to optional fields (field -> default):
//
//	title        -> "Untitled"
//	description  -> ""
//	doi          -> ""
//	license      -> ""
//	publishedAt  -> customPublishedAt, else createdAt, else nil
//	content      -> ""
//	authors      -> []
//	collections  -> []
//	keywords     -> []
//	pdfUrl       -> ""
const defaultTitle = "Untitled"

// Record converts one raw pub into the canonical record. It returns a
// domain.ValidationError when the record lacks articleId or slug and
// never fails on missing optional fields.
func Record(baseURL string, pub *pubhub.Pub) (*domain.Record, error) {
	if pub.ID == "" {
		return nil, &domain.ValidationError{Field: "articleId"}
	}
	if pub.Slug == "" {
		return nil, &domain.ValidationError{Field: "slug"}
	}

	rec := &domain.Record{
		ArticleID:   pub.ID,
		Slug:        pub.Slug,
		Title:       pub.Title,
		Description: strOrEmpty(pub.Description),
		DOI:         strOrEmpty(pub.DOI),
		License:     strOrEmpty(pub.LicenseSlug),
		CreatedAt:   parseTime(pub.CreatedAt),
		UpdatedAt:   parseTime(pub.UpdatedAt),
		Content:     pub.Content,
		Authors:     authors(pub.Attributions),
		Collections: collections(pub.Labels),
		Keywords:    []string{},
		URL:         baseURL + "/pub/" + pub.Slug,
		PDFURL:      pdfURL(pub.Downloads),
	}

	if rec.Title == "" {
		rec.Title = defaultTitle
	}

	rec.PublishedAt = publishedAt(pub)

	return rec, nil
}

func publishedAt(pub *pubhub.Pub) *time.Time {
	if pub.CustomPublishedAt != nil {
		if t := parseTime(*pub.CustomPublishedAt); !t.IsZero() {
			return &t
		}
	}
	if t := parseTime(pub.CreatedAt); !t.IsZero() {
		return &t
	}
	return nil
}

func authors(attrs []pubhub.Attribution) []domain.Author {
	sorted := make([]pubhub.Attribution, len(attrs))
	copy(sorted, attrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	out := make([]domain.Author, 0, len(sorted))
	for _, a := range sorted {
		author := domain.Author{
			Name:          a.Name,
			Affiliation:   strOrEmpty(a.Affiliation),
			ORCID:         strOrEmpty(a.ORCID),
			Roles:         a.Roles,
			Corresponding: a.IsCorresponding,
		}
		if a.User != nil {
			if author.Name == "" {
				author.Name = a.User.FullName
			}
			if author.ORCID == "" {
				author.ORCID = strOrEmpty(a.User.ORCID)
			}
		}
		if author.Name == "" {
			continue
		}
		out = append(out, author)
	}
	return out
}

func collections(labels []pubhub.Label) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.Title != "" {
			out = append(out, l.Title)
		}
	}
	return out
}

func pdfURL(downloads []pubhub.Download) string {
	for _, d := range downloads {
		if d.Type == "pdf" {
			return d.URL
		}
	}
	return ""
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
