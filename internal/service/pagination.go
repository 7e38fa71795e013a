package service

// PostsPerPage is the page size of every post listing.
const PostsPerPage = 5

// PageInfo describes where a page sits in its listing.
type PageInfo struct {
	Number      int  `json:"number"`
	NumPages    int  `json:"num_pages"`
	Count       int  `json:"count"`
	PerPage     int  `json:"per_page"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Offset is the number of rows before the page.
func (p PageInfo) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// paginate validates page against count. An empty listing still has page 1.
func paginate(count, page, perPage int) (PageInfo, error) {
	numPages := (count + perPage - 1) / perPage
	if numPages == 0 {
		numPages = 1
	}
	if page < 1 || page > numPages {
		return PageInfo{}, ErrPageNotFound
	}
	return PageInfo{
		Number:      page,
		NumPages:    numPages,
		Count:       count,
		PerPage:     perPage,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
	}, nil
}
