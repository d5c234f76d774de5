package model

// Page is one page of search results.
type Page[T any] struct {
	Offset     int64
	TotalCount int64
	Items      []T
}

// EmptyPage is what searches return until they are implemented.
func EmptyPage[T any](offset int64) Page[T] {
	return Page[T]{Offset: offset, Items: []T{}}
}
