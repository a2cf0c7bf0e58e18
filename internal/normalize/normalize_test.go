package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pub_archiver/internal/domain"
	"pub_archiver/internal/source/pubhub"
)

const baseURL = "https://pubs.example.org"

func strPtr(s string) *string { return &s }

func fullPub() *pubhub.Pub {
	return &pubhub.Pub{
		ID:                "pub-1",
		Slug:              "quantum-widgets",
		Title:             "Quantum Widgets",
		Description:       strPtr("A study of widgets."),
		DOI:               strPtr("10.1234/qw.1"),
		CreatedAt:         "2024-01-01T10:00:00Z",
		UpdatedAt:         "2024-02-01T10:00:00Z",
		CustomPublishedAt: strPtr("2024-01-15T00:00:00Z"),
		LicenseSlug:       strPtr("cc-by-4.0"),
		Attributions: []pubhub.Attribution{
			{Name: "B. Second", Order: 2},
			{Name: "A. First", Order: 1, ORCID: strPtr("0000-0001-2345-6789"), IsCorresponding: true, Roles: []string{"Writing"}},
		},
		Labels:    []pubhub.Label{{Slug: "physics", Title: "Physics"}},
		Downloads: []pubhub.Download{{Type: "pdf", URL: "https://cdn.example.org/qw.pdf"}},
		Content:   "body text",
	}
}

func TestRecord_FullPub(t *testing.T) {
	rec, err := Record(baseURL, fullPub())
	require.NoError(t, err)

	assert.Equal(t, "pub-1", rec.ArticleID)
	assert.Equal(t, "quantum-widgets", rec.Slug)
	assert.Equal(t, "Quantum Widgets", rec.Title)
	assert.Equal(t, "A study of widgets.", rec.Description)
	assert.Equal(t, "10.1234/qw.1", rec.DOI)
	assert.Equal(t, "cc-by-4.0", rec.License)
	assert.Equal(t, "body text", rec.Content)
	assert.Equal(t, []string{"Physics"}, rec.Collections)
	assert.Equal(t, "https://cdn.example.org/qw.pdf", rec.PDFURL)
	assert.Equal(t, baseURL+"/pub/quantum-widgets", rec.URL)

	require.NotNil(t, rec.PublishedAt)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *rec.PublishedAt)

	require.Len(t, rec.Authors, 2)
	assert.Equal(t, "A. First", rec.Authors[0].Name)
	assert.True(t, rec.Authors[0].Corresponding)
	assert.Equal(t, "B. Second", rec.Authors[1].Name)
}

func TestRecord_MissingArticleID(t *testing.T) {
	pub := fullPub()
	pub.ID = ""

	_, err := Record(baseURL, pub)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "articleId", ve.Field)
}

func TestRecord_MissingSlug(t *testing.T) {
	pub := fullPub()
	pub.Slug = ""

	_, err := Record(baseURL, pub)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestRecord_DefaultsForMissingOptionals(t *testing.T) {
	pub := &pubhub.Pub{ID: "pub-2", Slug: "bare"}

	rec, err := Record(baseURL, pub)
	require.NoError(t, err)

	assert.Equal(t, "Untitled", rec.Title)
	assert.Empty(t, rec.Description)
	assert.Empty(t, rec.DOI)
	assert.Empty(t, rec.License)
	assert.Empty(t, rec.Content)
	assert.Empty(t, rec.Authors)
	assert.Empty(t, rec.Collections)
	assert.Empty(t, rec.Keywords)
	assert.Empty(t, rec.PDFURL)
	assert.Nil(t, rec.PublishedAt)
	assert.True(t, rec.UpdatedAt.IsZero())
}

func TestRecord_PublishedAtFallsBackToCreatedAt(t *testing.T) {
	pub := fullPub()
	pub.CustomPublishedAt = nil

	rec, err := Record(baseURL, pub)
	require.NoError(t, err)
	require.NotNil(t, rec.PublishedAt)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), *rec.PublishedAt)
}

func TestRecord_AuthorFallsBackToUserFields(t *testing.T) {
	pub := fullPub()
	pub.Attributions = []pubhub.Attribution{
		{User: &pubhub.PubUser{FullName: "C. User", ORCID: strPtr("0000-0002-0000-0000")}},
		{}, // no name anywhere, dropped
	}

	rec, err := Record(baseURL, pub)
	require.NoError(t, err)
	require.Len(t, rec.Authors, 1)
	assert.Equal(t, "C. User", rec.Authors[0].Name)
	assert.Equal(t, "0000-0002-0000-0000", rec.Authors[0].ORCID)
}
