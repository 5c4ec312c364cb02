package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchRow Phase = iota
	PickHero
	Searching
	FetchDetail
	ExportRow
)

func (p Phase) String() string {
	switch p {
	case FetchRow:
		return "fetch_row"
	case PickHero:
		return "pick_hero"
	case Searching:
		return "searching"
	case FetchDetail:
		return "fetch_detail"
	case ExportRow:
		return "export_row"
	default:
		return ""
	}
}

func fetchRowUpdate(step, total int, category Category) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRow,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %s row (\"%s\")...", category, category.Keyword()),
	}
}

func rowLoadedUpdate(step, total int, category Category, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRow,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d titles)", step, total, category, count),
	}
}

func rowFailedUpdate(step, total int, category Category, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRow,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, category, err),
	}
}

func heroPickedUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PickHero,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Hero: %s", title),
	}
}

func searchingUpdate(query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Searching,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching for \"%s\"...", query),
	}
}

func searchSettledUpdate(query string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Searching,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d titles for \"%s\"", count, query),
	}
}

func fetchDetailUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetail,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loading details for %s...", title),
	}
}

func exportingRowUpdate(step, total int, category Category) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportRow,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, category),
	}
}

func exportedRowUpdate(step, total int, category Category, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportRow,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s → %s", step, total, category, path),
	}
}

func exportFailedUpdate(step, total int, category Category, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportRow,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, category, err),
	}
}
