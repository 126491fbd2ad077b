package config

import "errors"

// ErrConfig covers any problem with the assembled Settings: a missing
// required field, a malformed YAML file, or an unrecognized enum value.
var ErrConfig = errors.New("config: invalid settings")
