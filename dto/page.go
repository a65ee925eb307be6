package dto

import "github.com/legit-games/catalog-service/store"

// PageResponse is the paged list envelope.
type PageResponse[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// FromPage maps a store page through fn into the envelope.
func FromPage[T, R any](p store.Page[T], fn func(T) R) PageResponse[R] {
	m := store.MapPage(p, fn)
	return PageResponse[R]{
		Content:          m.Content,
		TotalElements:    m.TotalElements,
		TotalPages:       m.TotalPages(),
		Number:           m.Number,
		Size:             m.Size,
		NumberOfElements: len(m.Content),
		First:            m.First(),
		Last:             m.Last(),
		Empty:            len(m.Content) == 0,
	}
}
