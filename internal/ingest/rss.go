// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// DefaultFeeds maps display names to feed URLs for the built-in source
// table. A feeds file (YAML mapping of name to URL) replaces this table
// wholesale when configured.
var DefaultFeeds = map[string]string{
	"Open Philanthropy":          "https://www.openphilanthropy.org/feed/",
	"Rethink Priorities":         "https://rethinkpriorities.org/blog?format=rss",
	"Astral Codex Ten":           "https://astralcodexten.substack.com/feed",
	"Dwarkesh Patel":             "https://www.dwarkeshpatel.com/rss/",
	"Brian Potter":               "https://www.construction-physics.com/feed",
	"Slow Boring":                "https://www.slowboring.com/feed",
	"CGD":                        "https://www.cgdev.org/rss.xml",
	"EA Forum":                   "https://forum.effectivealtruism.org/posts.rss",
	"Lewis Bollard":              "https://www.lewisbollard.com/feed",
	"Asterisk Magazine":          "https://asteriskmag.com/feed.xml",
	"Our World in Data":          "https://ourworldindata.org/feed",
	"IHME":                       "https://www.healthdata.org/rss.xml",
	"Wild Animal Initiative":     "https://www.wildanimalinitiative.org/blog?format=rss",
	"Matt Clancy":                "https://www.newthingsunderthesun.com/rss.xml",
	"Michael Nielsen":            "https://michaelnielsen.org/feed/",
	"Sarah Constantin":           "https://sarahconstantin.substack.com/feed",
	"Jacob Trefethen":            "https://jacobtrefethen.substack.com/feed",
	"Statecraft":                 "https://statecraft.pub/feed",
	"Asimov Press":               "https://asimovpress.substack.com/feed",
	"Devon Zuegel":               "https://devonzuegel.com/feed.xml",
	"Lant Pritchett":             "https://lantpritchett.substack.com/feed",
	"Gwern":                      "https://www.gwern.net/atom.xml",
	"Animal Charity Evaluators":  "https://animalcharityevaluators.org/blog/feed/",
	"Marginal Revolution":        "https://marginalrevolution.com/feed",
	"Ben Reinhardt":              "https://benreinhardt.substack.com/feed",
	"EveryCRSReport":             "https://www.everycrsreport.com/rss/current.xml",
	"Global Developments":        "https://www.global-developments.org/feed",
}

// RSSConnector fetches entries from a set of RSS 2.0 or Atom feeds. Feeds
// map display names to URLs; a single unreachable feed is skipped rather
// than failing the whole connector.
type RSSConnector struct {
	Client *http.Client

	// Feeds overrides DefaultFeeds when non-nil.
	Feeds map[string]string
}

// Name returns the connector identifier.
func (c *RSSConnector) Name() string { return "rss" }

// Fetch downloads each feed and maps entries to Documents. The query is
// unused: RSS feeds are browsed, not searched. Feeds are visited in sorted
// name order so output is deterministic for a given feed set.
func (c *RSSConnector) Fetch(ctx context.Context, _ string, limit int, cfg types.IngestConfig) ([]types.Document, error) {
	feeds := c.Feeds
	if feeds == nil {
		feeds = DefaultFeeds
	}
	if cfg.FeedsFile != "" {
		loaded, err := LoadFeeds(cfg.FeedsFile)
		if err != nil {
			return nil, err
		}
		feeds = loaded
	}
	if limit <= 0 {
		limit = 10
	}

	names := make([]string, 0, len(feeds))
	for name := range feeds {
		names = append(names, name)
	}
	sort.Strings(names)

	var docs []types.Document
	var lastErr error
	for _, name := range names {
		items, err := c.fetchFeed(ctx, feeds[name], cfg)
		if err != nil {
			lastErr = fmt.Errorf("feed %s: %w", name, err)
			continue
		}
		if len(items) > limit {
			items = items[:limit]
		}
		for _, it := range items {
			docs = append(docs, types.Document{
				Source:    name,
				Title:     it.title,
				URL:       it.link,
				Summary:   it.summary,
				Published: it.published,
				Type:      types.DocRSS,
			})
		}
	}

	// Only surface an error when every feed failed.
	if len(docs) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return docs, nil
}

// feedItem is the neutral shape both feed dialects map onto.
type feedItem struct {
	title     string
	link      string
	summary   string
	published string
}

func (c *RSSConnector) fetchFeed(ctx context.Context, url string, cfg types.IngestConfig) ([]feedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client(c.Client, cfg).Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d", resp.StatusCode)
	}

	var doc feedDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return doc.items(), nil
}

// feedDocument decodes both RSS 2.0 (<rss><channel><item>) and Atom
// (<feed><entry>) documents: whichever element set is present fills in.
type feedDocument struct {
	Channel rssChannel  `xml:"channel"`
	Entries []atomEntry `xml:"entry"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

func (d feedDocument) items() []feedItem {
	var items []feedItem
	for _, it := range d.Channel.Items {
		items = append(items, feedItem{
			title:     it.Title,
			link:      it.Link,
			summary:   it.Description,
			published: it.PubDate,
		})
	}
	for _, e := range d.Entries {
		summary := e.Summary
		if summary == "" {
			summary = e.Content
		}
		published := e.Published
		if published == "" {
			published = e.Updated
		}
		items = append(items, feedItem{
			title:     e.Title,
			link:      atomEntryLink(e.Links),
			summary:   summary,
			published: published,
		})
	}
	return items
}

// atomEntryLink prefers the alternate link, then the first link present.
func atomEntryLink(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "alternate" || l.Rel == "" {
			return l.Href
		}
	}
	if len(links) > 0 {
		return links[0].Href
	}
	return ""
}

// LoadFeeds reads a YAML mapping of feed display names to URLs.
func LoadFeeds(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feeds file: %w", err)
	}
	var feeds map[string]string
	if err := yaml.Unmarshal(data, &feeds); err != nil {
		return nil, fmt.Errorf("parsing feeds file: %w", err)
	}
	return feeds, nil
}
