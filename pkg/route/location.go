package route

import (
	"net/url"

	"github.com/mpapenbr/race-results-hub/pkg/config"
)

// ListLocation is the location of the race list (no race parameter)
const ListLocation = "/"

// Location returns the location of the detail view for slug
func Location(slug string) string {
	if slug == "" {
		return ListLocation
	}
	v := url.Values{}
	v.Set(config.RaceParam, slug)
	return "/?" + v.Encode()
}

// Param extracts the (decoded) race parameter from a location.
// Unparseable locations yield an empty parameter.
func Param(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return ""
	}
	return u.Query().Get(config.RaceParam)
}
