// Package domain provides shared business-layer types.
package domain

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// DefaultListLimit bounds unpaginated list calls.
const DefaultListLimit = 50
