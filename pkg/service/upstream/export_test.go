package upstream

var Backoff = backoff
