package lein

// SetWindows forces the Windows command layout.
func (r *Runner) SetWindows(windows bool) {
	r.windows = windows
}
