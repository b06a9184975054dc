package outfit

// Filters narrows a catalog query. Empty fields mean "no constraint".
type Filters struct {
	Gender  Gender
	Style   string
	Season  string
	Scene   string
	Weather string
	Tags    []string
}

// WithDefaults fills unset fields from defaults, e.g. a user preference
// profile. Explicit values always win.
func (f Filters) WithDefaults(defaults Filters) Filters {
	out := f
	if out.Gender == "" {
		out.Gender = defaults.Gender
	}
	if out.Style == "" {
		out.Style = defaults.Style
	}
	if out.Season == "" {
		out.Season = defaults.Season
	}
	if out.Scene == "" {
		out.Scene = defaults.Scene
	}
	if out.Weather == "" {
		out.Weather = defaults.Weather
	}
	if len(out.Tags) == 0 {
		out.Tags = defaults.Tags
	}
	return out
}

// MatchesGender reports whether an outfit tagged actual should be shown for a
// wanted gender. Unisex outfits match everything, and so does an unset filter.
func MatchesGender(wanted, actual Gender) bool {
	if wanted == "" || wanted == GenderUnisex {
		return true
	}
	return wanted == actual || actual == GenderUnisex
}
