package dto

// Paginated is the standard list envelope.
type Paginated[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

func NewPaginated[T any](items []T, total int64, skip, limit int) *Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return &Paginated[T]{Items: items, Total: total, Skip: skip, Limit: limit}
}
