// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/arxiv-trends/internal/httputil"
	"github.com/pdiddy/arxiv-trends/pkg/types"
)

// Client fetches result feeds from the arXiv API. It is safe for
// concurrent use; the limiter spaces request starts by MinInterval.
type Client struct {
	HTTP    *http.Client
	cfg     types.FetchConfig
	limiter *rate.Limiter
}

// NewClient returns a client configured from cfg.
func NewClient(cfg types.FetchConfig) *Client {
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &Client{
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Fetch implements Source.
func (c *Client) Fetch(ctx context.Context, url string) ([]types.Entry, error) {
	f, err := c.FetchFeed(ctx, url)
	if err != nil {
		return nil, err
	}
	return f.Entries, nil
}

// FetchFeed requests url and decodes the Atom response.
func (c *Client) FetchFeed(ctx context.Context, url string) (*Feed, error) {
	log := zerolog.Ctx(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for arXiv rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL(url), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())

	log.Debug().Str("url", req.URL.String()).Msg("fetching arXiv feed")

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	f, err := Decode(resp.Body)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("entries", len(f.Entries)).
		Int("total_results", f.TotalResults).
		Msg("decoded arXiv feed")
	return f, nil
}

func (c *Client) userAgent() string {
	ua := c.cfg.UserAgent
	if ua == "" {
		ua = types.DefaultConfig().Fetch.UserAgent
	}
	if c.cfg.ContactEmail != "" {
		ua += " (mailto:" + c.cfg.ContactEmail + ")"
	}
	return ua
}

// requestURL escapes the characters a serialized query may carry that
// cannot appear in an HTTP request line: the quotes and spaces of id_list.
func requestURL(url string) string {
	return strings.NewReplacer(" ", "%20", `"`, "%22").Replace(url)
}

// Decode parses an arXiv Atom feed.
func Decode(r io.Reader) (*Feed, error) {
	var af atomFeed
	if err := xml.NewDecoder(r).Decode(&af); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	f := &Feed{TotalResults: af.TotalResults}
	for _, ae := range af.Entries {
		if strings.Contains(ae.ID, "/api/errors") {
			return nil, fmt.Errorf("%w: %s", ErrAPI, strings.TrimSpace(ae.Summary))
		}
		f.Entries = append(f.Entries, ae.toEntry())
	}
	return f, nil
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	TotalResults int         `xml:"http://a9.com/-/spec/opensearch/1.1/ totalResults"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string         `xml:"id"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Published       string         `xml:"published"`
	Updated         string         `xml:"updated"`
	Authors         []atomAuthor   `xml:"author"`
	Categories      []atomCategory `xml:"category"`
	Links           []atomLink     `xml:"link"`
	PrimaryCategory *atomCategory  `xml:"http://arxiv.org/schemas/atom primary_category"`
	Comment         *string        `xml:"http://arxiv.org/schemas/atom comment"`
	JournalRef      *string        `xml:"http://arxiv.org/schemas/atom journal_ref"`
	DOI             *string        `xml:"http://arxiv.org/schemas/atom doi"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// toEntry flattens the XML entry. Optional elements missing from the
// feed are left out of the map rather than stored as empty strings.
func (ae atomEntry) toEntry() types.Entry {
	e := types.Entry{
		types.FieldID:        strings.TrimSpace(ae.ID),
		types.FieldTitle:     strings.TrimSpace(ae.Title),
		types.FieldSummary:   strings.TrimSpace(ae.Summary),
		types.FieldPublished: strings.TrimSpace(ae.Published),
	}
	if id := extractArxivID(ae.ID); id != "" {
		e[types.FieldArxivID] = id
	}
	if ae.Updated != "" {
		e[types.FieldUpdated] = strings.TrimSpace(ae.Updated)
	}

	if len(ae.Authors) > 0 {
		names := make([]string, len(ae.Authors))
		for i, a := range ae.Authors {
			names[i] = strings.TrimSpace(a.Name)
		}
		e[types.FieldAuthor] = names[0]
		e[types.FieldAuthors] = strings.Join(names, ", ")
	}

	if len(ae.Categories) > 0 {
		terms := make([]string, len(ae.Categories))
		for i, c := range ae.Categories {
			terms[i] = c.Term
		}
		e[types.FieldCategory] = terms[0]
		e[types.FieldCategories] = strings.Join(terms, " ")
	}
	if ae.PrimaryCategory != nil {
		e[types.FieldPrimaryCategory] = ae.PrimaryCategory.Term
	}

	for _, l := range ae.Links {
		if l.Rel == "alternate" {
			e[types.FieldLink] = l.Href
			break
		}
	}

	optional := map[string]*string{
		types.FieldComment:    ae.Comment,
		types.FieldJournalRef: ae.JournalRef,
		types.FieldDOI:        ae.DOI,
	}
	for name, v := range optional {
		if v != nil {
			e[name] = strings.TrimSpace(*v)
		}
	}
	return e
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := strings.TrimSpace(idURL[idx+len(prefix):])

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
