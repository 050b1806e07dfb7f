package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flowops/flow-ops-backend/pkg/domain/rawdata"
	"github.com/valyala/fasthttp"
)

// RawDataRequest holds the raw query string values. A nil field means the
// key was absent; an empty string means it was sent without a value.
type RawDataRequest struct {
	StartDate    *string // @required
	EndDate      *string // @required
	Page         *string // default 1
	ItemsPerPage *string // default 10, max 100
}

func NewRawDataRequest(args *fasthttp.Args) RawDataRequest {
	return RawDataRequest{
		StartDate:    queryArg(args, "start_date"),
		EndDate:      queryArg(args, "end_date"),
		Page:         queryArg(args, "page"),
		ItemsPerPage: queryArg(args, "items_per_page"),
	}
}

func (r *RawDataRequest) ToQuery() (rawdata.Query, error) {
	startDate, endDate, err := requireDates(r.StartDate, r.EndDate)
	if err != nil {
		return rawdata.Query{}, err
	}
	page, err := parseIntParam("page", r.Page, rawdata.DefaultPage)
	if err != nil {
		return rawdata.Query{}, err
	}
	itemsPerPage, err := parseIntParam("items_per_page", r.ItemsPerPage, rawdata.DefaultItemsPerPage)
	if err != nil {
		return rawdata.Query{}, err
	}

	query := rawdata.Query{
		StartDate:    startDate,
		EndDate:      endDate,
		Page:         page,
		ItemsPerPage: itemsPerPage,
	}
	if err := query.Validate(); err != nil {
		return rawdata.Query{}, err
	}
	return query, nil
}

// RawDataFieldsRequest selects the date range whose first page is inspected.
type RawDataFieldsRequest struct {
	StartDate *string // @required
	EndDate   *string // @required
}

func NewRawDataFieldsRequest(args *fasthttp.Args) RawDataFieldsRequest {
	return RawDataFieldsRequest{
		StartDate: queryArg(args, "start_date"),
		EndDate:   queryArg(args, "end_date"),
	}
}

func (r *RawDataFieldsRequest) ToQuery() (rawdata.Query, error) {
	startDate, endDate, err := requireDates(r.StartDate, r.EndDate)
	if err != nil {
		return rawdata.Query{}, err
	}
	return rawdata.Query{
		StartDate:    startDate,
		EndDate:      endDate,
		Page:         rawdata.DefaultPage,
		ItemsPerPage: rawdata.DefaultItemsPerPage,
	}, nil
}

func queryArg(args *fasthttp.Args, key string) *string {
	if !args.Has(key) {
		return nil
	}
	v := string(args.Peek(key))
	return &v
}

func requireDates(startDate, endDate *string) (string, string, error) {
	if startDate == nil {
		return "", "", fmt.Errorf("%w: start_date is required", rawdata.ErrInvalidQuery)
	}
	if endDate == nil {
		return "", "", fmt.Errorf("%w: end_date is required", rawdata.ErrInvalidQuery)
	}
	return *startDate, *endDate, nil
}

func parseIntParam(name string, raw *string, def int) (int, error) {
	if raw == nil {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", rawdata.ErrInvalidQuery, name)
	}
	return v, nil
}
