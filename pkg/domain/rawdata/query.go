package rawdata

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

const (
	DefaultPage         = 1
	DefaultItemsPerPage = 10
	MinItemsPerPage     = 1
	MaxItemsPerPage     = 100
)

var ErrInvalidQuery = errors.New("invalid query")

// Query is the paginated, date-ranged selection forwarded to the Flow API.
// Dates are opaque strings; neither their format nor their ordering is
// checked here.
type Query struct {
	StartDate    string
	EndDate      string
	Page         int
	ItemsPerPage int
}

// Validate checks the pagination bounds. Presence of the dates is checked
// where the query is parsed, since an empty date is relayed as is.
func (q Query) Validate() error {
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be greater than or equal to 1", ErrInvalidQuery)
	}
	if q.ItemsPerPage < MinItemsPerPage || q.ItemsPerPage > MaxItemsPerPage {
		return fmt.Errorf(
			"%w: items_per_page must be between %d and %d",
			ErrInvalidQuery, MinItemsPerPage, MaxItemsPerPage,
		)
	}
	return nil
}

// Values encodes the query the way the Flow API expects it.
func (q Query) Values() url.Values {
	values := make(url.Values, 4)
	values.Set("start_date", q.StartDate)
	values.Set("end_date", q.EndDate)
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("items_per_page", strconv.Itoa(q.ItemsPerPage))
	return values
}
