package report

import "github.com/stockpulse/backend/internal/external/yahoo"

// Article is one news article in API response shape
type Article struct {
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	PubDate      string `json:"pubDate"`
	Provider     string `json:"provider"`
	ThumbnailURL string `json:"thumbnailUrl"`
	URL          string `json:"url"`
}

// NewsArticles reshapes feed items into the response schema, substituting
// placeholder text for fields the feed did not carry.
func NewsArticles(items []yahoo.NewsItem) []Article {
	articles := make([]Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, Article{
			Title:        orDefault(item.Title, "No title available"),
			Summary:      orDefault(item.Summary, "No summary available"),
			PubDate:      orDefault(item.PubDate, "No publish date available"),
			Provider:     orDefault(item.Provider, "No provider available"),
			ThumbnailURL: "No thumbnail available", // headline feed carries no images
			URL:          orDefault(item.URL, "No URL available"),
		})
	}
	return articles
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
