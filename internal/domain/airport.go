package domain

import "regexp"

// MetadataSource identifies which resolver path produced an airport entry.
type MetadataSource string

// Metadata sources.
const (
	// SourcePrimaryAPI means the entry came from a per-code lookup against the primary API.
	SourcePrimaryAPI MetadataSource = "primary-api"

	// SourceFallbackDataset means the entry came from the bulk public dataset.
	SourceFallbackDataset MetadataSource = "fallback-dataset"
)

// AirportMetadata maps a 3-letter airport code to human-readable information.
type AirportMetadata struct {
	// City is the municipality the airport serves
	City string `json:"city"`

	// Country is the ISO-2 country code
	Country string `json:"country"`

	// Name is the full airport name
	Name string `json:"name"`

	// Source records which lookup path produced this entry
	Source MetadataSource `json:"source"`
}

// parenthesizedCode matches a label containing exactly one parenthesized run
// of 3 uppercase ASCII letters, e.g. "Milan (LIN)".
var parenthesizedCode = regexp.MustCompile(`^[^()]*\(([A-Z]{3})\)[^()]*$`)

// ExtractAirportCode pulls a 3-letter airport code out of a free-text label.
// The grammar is deliberately strict: the label must contain exactly one
// parenthesized group and it must hold exactly 3 uppercase letters.
// Returns "" when the label does not match.
func ExtractAirportCode(label string) string {
	m := parenthesizedCode.FindStringSubmatch(label)
	if m == nil {
		return ""
	}
	return m[1]
}

// regionalIndicatorBase is the codepoint of REGIONAL INDICATOR SYMBOL LETTER A.
const regionalIndicatorBase = 0x1F1E6

// FlagEmoji converts an ISO-2 country code into its Unicode flag emoji by
// mapping each letter to the corresponding regional-indicator symbol.
// Absent or invalid codes yield an empty string.
func FlagEmoji(countryCode string) string {
	if len(countryCode) != 2 {
		return ""
	}
	runes := make([]rune, 0, 2)
	for _, c := range countryCode {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return ""
		}
		runes = append(runes, regionalIndicatorBase+(c-'A'))
	}
	return string(runes)
}
