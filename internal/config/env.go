package config

import "strings"

// envReplacer maps cache.ttl to SCRIPTORIUM_CACHE_TTL
var envReplacer = strings.NewReplacer(".", "_")
