package yahoo

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// NewsItem is one article from the Yahoo Finance headline feed
type NewsItem struct {
	Title    string
	Summary  string
	PubDate  string
	Provider string
	URL      string
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	PubDate     string    `xml:"pubDate"`
	Source      rssSource `xml:"source"`
}

type rssSource struct {
	Name string `xml:",chardata"`
}

// News fetches the latest headline articles for ticker. An empty slice
// means the feed had nothing for the symbol.
func (c *Client) News(ctx context.Context, ticker string) ([]NewsItem, error) {
	params := url.Values{}
	params.Set("s", ticker)
	params.Set("region", "US")
	params.Set("lang", "en-US")

	feedURL := fmt.Sprintf("%s/rss/2.0/headline?%s", c.feedBaseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news feed: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse news feed: %w", err)
	}

	items := make([]NewsItem, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		items = append(items, NewsItem{
			Title:    item.Title,
			Summary:  item.Description,
			PubDate:  item.PubDate,
			Provider: item.Source.Name,
			URL:      item.Link,
		})
	}

	return items, nil
}
