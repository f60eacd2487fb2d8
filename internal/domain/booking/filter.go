package booking

import (
	"strings"
	"time"

	"github.com/circleshare/service-sharing/internal/domain"
)

// Filter selects a slice of a user's bookings in a listing call. The temporal
// filters (all/current/past/future) are query-time concepts only; the
// remaining values mirror persisted states and filter on status equality.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterCurrent Filter = "current"
	FilterPast    Filter = "past"
	FilterFuture  Filter = "future"

	FilterWaiting  Filter = "waiting"
	FilterApproved Filter = "approved"
	FilterRejected Filter = "rejected"
	FilterCanceled Filter = "canceled"
)

// ParseFilter maps a boundary string onto a Filter, case-insensitively.
// An unrecognized value is a ValidationError echoing the raw input.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(s)) {
	case FilterAll:
		return FilterAll, nil
	case FilterCurrent:
		return FilterCurrent, nil
	case FilterPast:
		return FilterPast, nil
	case FilterFuture:
		return FilterFuture, nil
	case FilterWaiting:
		return FilterWaiting, nil
	case FilterApproved:
		return FilterApproved, nil
	case FilterRejected:
		return FilterRejected, nil
	case FilterCanceled:
		return FilterCanceled, nil
	default:
		return "", domain.NewValidationError("Unknown state: " + s)
	}
}

// State returns the persisted state this filter matches on, if it is a
// status filter rather than a temporal one.
func (f Filter) State() (State, bool) {
	switch f {
	case FilterWaiting, FilterApproved, FilterRejected, FilterCanceled:
		return State(f), true
	default:
		return "", false
	}
}

// IsTemporal returns true for the query-only window filters.
func (f Filter) IsTemporal() bool {
	_, isState := f.State()
	return !isState
}

// Selection is a Filter evaluated against a single moment. The moment is
// captured once per listing call so the temporal sub-conditions cannot
// disagree about "now".
type Selection struct {
	Filter Filter
	Now    time.Time
}

// NewSelection binds a filter to the moment it is evaluated at.
func NewSelection(filter Filter, now time.Time) Selection {
	return Selection{Filter: filter, Now: now}
}

// OrderByEnd reports whether results for this selection sort by end time
// rather than start time. Past and current windows sort by end descending;
// everything else sorts by start descending.
func (s Selection) OrderByEnd() bool {
	return s.Filter == FilterPast || s.Filter == FilterCurrent
}
