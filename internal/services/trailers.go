package services

import "net/url"

// TrailerURL builds a YouTube trailer-search URL for a movie title.
//
// There is no trailer API in scope; playback is a search-by-title handoff to
// YouTube, exactly what the player surface needs.
func TrailerURL(title string) string {
	query := url.Values{}
	query.Set("search_query", title+" official trailer")
	return "https://www.youtube.com/results?" + query.Encode()
}

// TrailerEmbedURL builds the embeddable autoplay variant of the trailer
// search, for consumers hosting their own player frame.
func TrailerEmbedURL(title string) string {
	query := url.Values{}
	query.Set("listType", "search")
	query.Set("list", title+" official trailer")
	query.Set("autoplay", "1")
	return "https://www.youtube.com/embed?" + query.Encode()
}
