package conversation

import "errors"

// ErrMissingTimezone is reported when a lookup succeeds without a usable zone id.
var ErrMissingTimezone = errors.New("timezone could not be determined")
