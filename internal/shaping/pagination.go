package shaping

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page describes one page of a paginated list response.
type Page struct {
	TotalFound int
	Returned   int
	Offset     int
	Limit      int
	HasMore    bool
}

// Paginate slices items per limit/offset (limit defaults to 20, hard
// capped at 100; offset defaults to 0) and reports the resulting Page
// metadata.
func Paginate[T any](items []T, limit, offset int) ([]T, Page) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	total := len(items)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := items[offset:end]
	return page, Page{
		TotalFound: total,
		Returned:   len(page),
		Offset:     offset,
		Limit:      limit,
		HasMore:    end < total,
	}
}
