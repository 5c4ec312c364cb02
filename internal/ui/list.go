package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/myflix/myflix/internal/models"
)

var (
	_ list.Item = movieItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := i.movie.Year
	if i.movie.Type != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Type)
	}
	if !i.movie.HasPoster() {
		desc = fmt.Sprintf("%s • no poster", desc)
	}
	return desc
}

// movieItems converts a movie slice to list items.
func movieItems(movies []models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}
