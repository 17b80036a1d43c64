package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrUpstreamUnavailable = goerr.New("could not load data")
	ErrInvalidViewConfig   = goerr.New("invalid view configuration")
	ErrBreakdownNotFound   = goerr.New("breakdown not available")
)
