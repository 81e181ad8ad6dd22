package core

// Page is the pagination envelope shared by every list endpoint.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// NewPage builds a page whose HasMore follows offset+count < total, where
// count is the number of items the upstream page carried.
func NewPage[T any](items []T, count, total, limit, offset int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+count < total,
	}
}

// NextOffset returns the offset of the following page.
func (p Page[T]) NextOffset() int {
	return p.Offset + len(p.Items)
}

// SearchResults groups search hits by type. Types that were not requested
// are nil.
type SearchResults struct {
	Tracks    *Page[Track]    `json:"tracks,omitempty"`
	Albums    *Page[Album]    `json:"albums,omitempty"`
	Artists   *Page[Artist]   `json:"artists,omitempty"`
	Playlists *Page[Playlist] `json:"playlists,omitempty"`
}
