package lifecycle

import "errors"

var ErrLimitExceeded = errors.New("active event limit exceeded")
