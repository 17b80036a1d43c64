package cli

var ParseFilters = parseFilters
