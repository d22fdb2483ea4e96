package client

import "errors"

// ErrDatabase wraps every failure to open or migrate the local database.
var ErrDatabase = errors.New("local database unavailable")
