package pubhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"pub_archiver/internal/retry"
)

const SourceName = "PubHub"

// Config holds source configuration.
type Config struct {
	BaseURL        string
	PageSize       int
	Timeout        time.Duration
	PageDelay      time.Duration
	MaxEmptyPages  int
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// FetchOptions narrows one fetch pass.
type FetchOptions struct {
	// Limit caps the number of records returned; 0 means no cap.
	Limit int
	// UpdatedSince restricts the fetch to records updated after this
	// time (incremental mode). Nil fetches everything.
	UpdatedSince *time.Time
}

// Source fetches publication records page by page from the platform API.
type Source struct {
	client        *resty.Client
	baseURL       string
	pageSize      int
	pageDelay     time.Duration
	maxEmptyPages int
	policy        retry.Policy
	logger        *slog.Logger
}

// New creates a new PubHub source.
func New(cfg Config, logger *slog.Logger) *Source {
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "PubArchiver/1.0")

	return &Source{
		client:        client,
		baseURL:       cfg.BaseURL,
		pageSize:      cfg.PageSize,
		pageDelay:     cfg.PageDelay,
		maxEmptyPages: cfg.MaxEmptyPages,
		policy: retry.Policy{
			MaxAttempts:    cfg.MaxAttempts,
			InitialBackoff: cfg.InitialBackoff,
			MaxBackoff:     cfg.MaxBackoff,
		},
		logger: logger.With("source", SourceName),
	}
}

// Name returns the human-readable source name.
func (s *Source) Name() string {
	return SourceName
}

// Fetch retrieves publication records until the source is drained, the
// limit is hit, or a fetch gives up. On retry exhaustion or a
// non-retryable error it returns the records collected so far together
// with the error, so a partial run still gets reconciled.
func (s *Source) Fetch(ctx context.Context, opts FetchOptions) ([]Pub, error) {
	var all []Pub
	emptyPages := 0

	for page := 0; ; page++ {
		pubs, err := s.fetchPage(ctx, page, opts.UpdatedSince)
		if err != nil {
			return all, fmt.Errorf("fetch page %d: %w", page, err)
		}

		if len(pubs) == 0 {
			emptyPages++
			if emptyPages >= s.maxEmptyPages {
				break
			}
		} else {
			emptyPages = 0
		}

		for i := range pubs {
			s.fillContent(ctx, &pubs[i])
			all = append(all, pubs[i])
			if opts.Limit > 0 && len(all) >= opts.Limit {
				s.logger.Debug("record limit reached", "limit", opts.Limit)
				return all, nil
			}
		}

		s.logger.Debug("fetched page",
			"page", page,
			"records", len(pubs),
			"total", len(all),
		)

		if len(pubs) < s.pageSize && len(pubs) > 0 {
			break
		}

		select {
		case <-ctx.Done():
			return all, ctx.Err()
		case <-time.After(s.pageDelay):
		}
	}

	return all, nil
}

func (s *Source) fetchPage(ctx context.Context, page int, updatedSince *time.Time) ([]Pub, error) {
	var pubs []Pub

	err := s.policy.Do(ctx, func() error {
		req := s.client.R().
			SetContext(ctx).
			SetQueryParam("limit", fmt.Sprintf("%d", s.pageSize)).
			SetQueryParam("offset", fmt.Sprintf("%d", page*s.pageSize))
		if updatedSince != nil {
			req.SetQueryParam("updatedSince", updatedSince.UTC().Format(time.RFC3339))
		}

		resp, err := req.Get(s.baseURL + "/api/pubs")
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}
		if err := classifyStatus(resp.StatusCode()); err != nil {
			return err
		}

		pubs = pubs[:0]
		if err := json.Unmarshal(resp.Body(), &pubs); err != nil {
			return retry.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pubs, nil
}

// classifyStatus maps HTTP statuses onto the retry taxonomy: rate limits
// and server errors are transient, auth and client errors are not.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("unexpected status: %d", status)
	default:
		return retry.Permanent(fmt.Errorf("unexpected status: %d", status))
	}
}

// fillContent populates the full-text blob: a plain-text download wins,
// otherwise the pub's public HTML page is scraped. Failures leave the
// content empty and are never fatal.
func (s *Source) fillContent(ctx context.Context, pub *Pub) {
	for _, d := range pub.Downloads {
		if d.Type != "text" && d.Type != "plain" {
			continue
		}
		text, err := s.fetchText(ctx, d.URL)
		if err != nil {
			s.logger.Warn("failed to fetch text download",
				"pub", pub.Slug,
				"url", d.URL,
				"error", err,
			)
			break
		}
		pub.Content = text
		return
	}

	text, err := s.fetchHTMLContent(ctx, pub.Slug)
	if err != nil {
		s.logger.Debug("html fallback failed",
			"pub", pub.Slug,
			"error", err,
		)
		return
	}
	pub.Content = text
}

func (s *Source) fetchText(ctx context.Context, url string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode())
	}
	return string(resp.Body()), nil
}

var errNoContent = errors.New("no content found on page")
