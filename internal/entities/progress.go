// Package entities contains core business entities.
package entities

// Progress is the share of a project's tasks in Done.
type Progress struct {
	Total int `json:"total"`
	Done  int `json:"done"`
	Pct   int `json:"pct"`
}

// StatusCount is the number of tasks in one status.
type StatusCount struct {
	Status TaskStatus `json:"status"`
	Count  int        `json:"count"`
}

// Summary combines progress with per-status counts in workflow order.
type Summary struct {
	Progress Progress      `json:"progress"`
	ByStatus []StatusCount `json:"by_status"`
}
