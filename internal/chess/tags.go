package chess

// Tag names with a meaning to the replay. Any other tag is carried through
// to the report untouched. Result holds the expected outcome: "1-0" or
// "0-1" for a capture of a royal piece, "*" for none.
const (
	TagName    = "Name"
	TagVariant = "Variant"
	TagLayout  = "Layout"
	TagResult  = "Result"
)

// KnownTags lists the meaningful tags in report order.
var KnownTags = []string{TagName, TagVariant, TagLayout, TagResult}

// IsKnownTag returns true if name is one of KnownTags.
func IsKnownTag(name string) bool {
	for _, t := range KnownTags {
		if t == name {
			return true
		}
	}
	return false
}
