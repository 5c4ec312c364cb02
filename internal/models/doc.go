// Package models defines the data model for the movie browsing application.
//
// Plain data exchanged with the metadata API (Movie, MovieDetail,
// SearchResult) lives here as exported-field structs. Persistent entities
// (WatchlistItem) follow the accessor style expected by the repositories
// package and implement the [Model] interface.
package models
