package emit

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nathanjclark/www/internal/config"
	"github.com/nathanjclark/www/internal/index"
)

// rssDoc models the RSS 2.0 envelope.
type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description,omitempty"`
	Author      string `xml:"author,omitempty"`
}

// Feed renders an RSS 2.0 feed over the newest entries of the master
// sequence, newest first, capped at limit.
func Feed(idx *index.Index, site config.SiteConfig, authors config.AuthorSet, limit int) ([]byte, error) {
	base := strings.TrimRight(site.BaseURL, "/")

	docs := idx.All
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}

	channel := rssChannel{
		Title:       site.Title,
		Link:        base + "/",
		Description: site.Description,
	}
	if len(docs) > 0 {
		channel.LastBuildDate = docs[0].Date.Format(time.RFC1123Z)
	}

	for _, d := range docs {
		link := base + d.OutputPath()
		item := rssItem{
			Title:       d.Title,
			Link:        link,
			GUID:        link,
			PubDate:     d.Date.Format(time.RFC1123Z),
			Description: d.Description,
		}
		if a, ok := authors[d.Author]; ok && a.Email != "" {
			item.Author = fmt.Sprintf("%s (%s)", a.Email, a.Name)
		}
		channel.Items = append(channel.Items, item)
	}

	out, err := xml.MarshalIndent(rssDoc{Version: "2.0", Channel: channel}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// WriteFeed writes the RSS feed to <dir>/feed.xml.
func WriteFeed(dir string, idx *index.Index, site config.SiteConfig, authors config.AuthorSet, limit int) error {
	data, err := Feed(idx, site, authors, limit)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "feed.xml"), data, 0o644)
}
