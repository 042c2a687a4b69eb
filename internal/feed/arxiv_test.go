// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-trends/internal/httputil"
	"github.com/pdiddy/arxiv-trends/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

const sampleFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/"
      xmlns:arxiv="http://arxiv.org/schemas/atom">
  <title type="html">ArXiv Query: search_query=abs:causal</title>
  <opensearch:totalResults>1234</opensearch:totalResults>
  <opensearch:startIndex>0</opensearch:startIndex>
  <opensearch:itemsPerPage>2</opensearch:itemsPerPage>
  <entry>
    <id>http://arxiv.org/abs/2301.07041v2</id>
    <updated>2023-02-01T10:00:00Z</updated>
    <published>2023-01-17T18:59:59Z</published>
    <title>Causal Discovery with
  Language Models</title>
    <summary>  We study causal discovery.
We propose a method.
</summary>
    <author><name>Ada Lovelace</name></author>
    <author><name>Alan Turing</name></author>
    <arxiv:doi>10.1000/xyz123</arxiv:doi>
    <link href="http://arxiv.org/abs/2301.07041v2" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2301.07041v2" rel="related" type="application/pdf"/>
    <arxiv:comment>12 pages, 3 figures</arxiv:comment>
    <arxiv:journal_ref>J. Causal Inf. 1 (2023)</arxiv:journal_ref>
    <arxiv:primary_category term="cs.LG" scheme="http://arxiv.org/schemas/atom"/>
    <category term="cs.LG" scheme="http://arxiv.org/schemas/atom"/>
    <category term="stat.ML" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <updated>2023-08-02T00:41:18Z</updated>
    <published>2017-06-12T17:57:34Z</published>
    <title>Attention Is All You Need</title>
    <summary>The dominant sequence transduction models.</summary>
    <author><name>Ashish Vaswani</name></author>
    <arxiv:primary_category term="cs.CL" scheme="http://arxiv.org/schemas/atom"/>
    <category term="cs.CL" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
</feed>`

const sampleErrorXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/">
  <opensearch:totalResults>1</opensearch:totalResults>
  <entry>
    <id>http://arxiv.org/api/errors#max_results_must_be_less_than_30000</id>
    <title>Error</title>
    <summary>max_results must be less than 30000</summary>
  </entry>
</feed>`

func testFetchConfig() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxRetries: 2,
	}
}

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleFeedXML))
	require.NoError(t, err)

	assert.Equal(t, 1234, f.TotalResults)
	require.Len(t, f.Entries, 2)

	want := types.Entry{
		types.FieldID:              "http://arxiv.org/abs/2301.07041v2",
		types.FieldArxivID:         "2301.07041",
		types.FieldTitle:           "Causal Discovery with\n  Language Models",
		types.FieldSummary:         "We study causal discovery.\nWe propose a method.",
		types.FieldPublished:       "2023-01-17T18:59:59Z",
		types.FieldUpdated:         "2023-02-01T10:00:00Z",
		types.FieldAuthor:          "Ada Lovelace",
		types.FieldAuthors:         "Ada Lovelace, Alan Turing",
		types.FieldCategory:        "cs.LG",
		types.FieldCategories:      "cs.LG stat.ML",
		types.FieldPrimaryCategory: "cs.LG",
		types.FieldComment:         "12 pages, 3 figures",
		types.FieldJournalRef:      "J. Causal Inf. 1 (2023)",
		types.FieldDOI:             "10.1000/xyz123",
		types.FieldLink:            "http://arxiv.org/abs/2301.07041v2",
	}
	assert.Equal(t, want, f.Entries[0])
}

func TestDecodeOmitsMissingOptionalFields(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleFeedXML))
	require.NoError(t, err)

	e := f.Entries[1]
	for _, name := range []string{types.FieldComment, types.FieldJournalRef, types.FieldDOI, types.FieldLink} {
		_, ok := e.Lookup(name)
		assert.False(t, ok, "field %s should be absent", name)
	}
	assert.Equal(t, "cs.CL", e[types.FieldCategory])
}

func TestDecodeErrorEntry(t *testing.T) {
	_, err := Decode(strings.NewReader(sampleErrorXML))
	require.ErrorIs(t, err, ErrAPI)
	assert.Contains(t, err.Error(), "max_results must be less than 30000")
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader("<feed><entry>"))
	assert.Error(t, err)
}

func TestClientFetch(t *testing.T) {
	var gotQuery, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, sampleFeedXML)
	}))
	defer ts.Close()

	cfg := testFetchConfig()
	cfg.ContactEmail = "me@example.org"
	c := NewClient(cfg)

	url := ts.URL + `/api/query?search_query=abs:%22causal+discovery%22&id_list="2301.07041 1706.03762"&start=0&max_results=2`
	entries, err := c.Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	assert.Equal(t, `search_query=abs:%22causal+discovery%22&id_list=%222301.07041%201706.03762%22&start=0&max_results=2`, gotQuery)
	assert.Equal(t, "test/0.1 (mailto:me@example.org)", gotUA)
}

func TestClientFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := NewClient(testFetchConfig()).Fetch(context.Background(), ts.URL+"?search_query=all:x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestClientFetchRetriesUnavailable(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, sampleFeedXML)
	}))
	defer ts.Close()

	entries, err := NewClient(testFetchConfig()).Fetch(context.Background(), ts.URL+"?search_query=all:x")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClientRateLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, sampleFeedXML)
	}))
	defer ts.Close()

	cfg := testFetchConfig()
	cfg.MinInterval = 200 * time.Millisecond
	c := NewClient(cfg)

	start := time.Now()
	for i := 0; i < 2; i++ {
		_, err := c.Fetch(context.Background(), ts.URL)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestClientRateLimitHonorsContext(t *testing.T) {
	cfg := testFetchConfig()
	cfg.MinInterval = time.Hour
	c := NewClient(cfg)
	require.True(t, c.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx, "http://127.0.0.1:1/")
	assert.Error(t, err)
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/1706.03762v5", "1706.03762"},
		{"http://arxiv.org/abs/2301.12345", "2301.12345"},
		{"http://arxiv.org/abs/hep-th/9901001v1", "hep-th/9901001"},
		{"not a url", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, extractArxivID(tt.input))
		})
	}
}
