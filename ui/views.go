package ui

import "churnboard/internal/dashboard"

// indexPage is the data behind index.html
type indexPage struct {
	Summary  *dashboard.Summary
	Filter   dashboard.FilterView
	Options  dashboard.OptionsView
	Selected map[string]bool
	Status   dashboard.Status
	Columns  []string
	Preview  [][]string
}

// errorPage is the data behind error.html
type errorPage struct {
	Status  int
	Code    string
	Message string
	Missing []string
	Source  string
}
