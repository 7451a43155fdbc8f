package redis

const (
	// KeyPrefixCheck is the prefix for check record keys
	KeyPrefixCheck = "spellshare:check:"
	// KeyPrefixOwner is the prefix for per-owner sorted sets (score: created_at ms)
	KeyPrefixOwner = "spellshare:checks:owner:"
	// KeyAllChecks is the key for the set of all check IDs
	KeyAllChecks = "spellshare:checks:all"
	// KeySharedChecks is the key for the set of shared check IDs
	KeySharedChecks = "spellshare:checks:shared"
	// KeyExpiringChecks is the sorted set of shared check IDs (score: expire ms)
	KeyExpiringChecks = "spellshare:checks:expiring"
	// KeyErrorFreeChecks is the sorted set of error-free check IDs (score: text length)
	KeyErrorFreeChecks = "spellshare:checks:errorfree"
)

// CheckKey returns the Redis key for a check record
func CheckKey(id string) string {
	return KeyPrefixCheck + id
}

// OwnerKey returns the Redis key for the checks of one owner
func OwnerKey(uid string) string {
	return KeyPrefixOwner + uid
}

func checkKeys(ids []string) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = CheckKey(id)
	}
	return keys
}
