package pubhub

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fetchHTMLContent scrapes a pub's public page when the API exposes no
// text download. It collects the body paragraphs, falling back to the
// meta description when the page carries no readable body.
func (s *Source) fetchHTMLContent(ctx context.Context, slug string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(s.baseURL + "/pub/" + slug)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var parts []string
	doc.Find(".pub-body-component p, article p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n"), nil
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		desc = strings.TrimSpace(desc)
		if desc != "" {
			return desc, nil
		}
	}

	return "", errNoContent
}
