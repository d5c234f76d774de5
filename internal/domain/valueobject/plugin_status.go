package valueobject

import "strconv"

// PluginStatus is the outcome of a gateway call as reported to the billing platform.
type PluginStatus struct {
	value string
}

var (
	PluginStatusProcessed = PluginStatus{"PROCESSED"}
	PluginStatusError     = PluginStatus{"ERROR"}
	PluginStatusUndefined = PluginStatus{"UNDEFINED"}
)

// PluginStatusFromResponseCode classifies a gateway response code: 0-49 are
// approvals, 50-999 declines. Anything else is UNDEFINED.
func PluginStatusFromResponseCode(code *string) PluginStatus {
	if code == nil {
		return PluginStatusUndefined
	}
	n, err := strconv.Atoi(*code)
	if err != nil {
		return PluginStatusUndefined
	}
	switch {
	case n >= 0 && n <= 49:
		return PluginStatusProcessed
	case n >= 50 && n <= 999:
		return PluginStatusError
	default:
		return PluginStatusUndefined
	}
}

func (s PluginStatus) String() string {
	return s.value
}
