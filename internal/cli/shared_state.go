package cli

// SharedState is handed to every view by pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight is the height left for the active view after the header
// (title and separator) and the status bar (separator, hints, message).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
