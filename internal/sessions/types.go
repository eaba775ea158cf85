// Package sessions records uploaded datasets and exposes the session
// lifecycle over HTTP: upload a CSV, query it conversationally, inspect its
// index, and tear it down.
package sessions

import "time"

// Session is one uploaded dataset and its analysis context.
type Session struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
	Columns     []string  `json:"columns"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
