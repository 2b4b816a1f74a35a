package kitchensage

import "net/url"

// IsRemote reports whether location is an http or https URL rather than a
// local file path.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Host returns the host of a remote location, or "" for local paths.
func Host(location string) string {
	if !IsRemote(location) {
		return ""
	}
	u, _ := url.Parse(location)
	return u.Host
}
