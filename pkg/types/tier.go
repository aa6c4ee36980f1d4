package types

// Tier classifies a resolved feature by where its membership is recorded
type Tier int

const (
	// TierUnlisted features are materialized but produce no manifest entries
	TierUnlisted Tier = iota
	// TierStartup features contribute their bundles to the startup manifest
	TierStartup
	// TierBoot features are appended to the boot feature list
	TierBoot
	// TierInstalled features are only materialized into the system repository
	TierInstalled
)

// String returns the lowercase tier name
func (t Tier) String() string {
	switch t {
	case TierStartup:
		return "startup"
	case TierBoot:
		return "boot"
	case TierInstalled:
		return "installed"
	default:
		return "unlisted"
	}
}

// MarshalText renders the tier name, used by the YAML run report
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
