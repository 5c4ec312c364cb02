// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the movie catalog:
//  1. [LoginView] / [SignupView] : Gate the catalog behind the mock session
//  2. [BrowseView] : Category rows with a randomly chosen hero title
//  3. [SearchView] : Live catalog search with stale results discarded
//  4. [DetailView] : Full record for the selected title
//  5. [PlayerView] : Trailer preview handoff to the system browser
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the DashboardEngine, providing non-blocking status reporting while rows load.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, /, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
