package profile

import "errors"

// ErrNoMatch is returned when no profile key equals the search key.
var ErrNoMatch = errors.New("no matching conversion profile")

// ErrAmbiguous is returned when more than one profile matches. Load rejects
// duplicate keys, so this should never happen with a validated table, but
// the matcher reports it instead of picking one.
var ErrAmbiguous = errors.New("ambiguous conversion profile match")

// Match finds the unique profile whose key equals the search key. Matching
// is exact: no wildcards, no fuzziness.
func Match(profiles []ConversionProfile, key Key) (ConversionProfile, error) {
	var found ConversionProfile
	matches := 0

	for _, p := range profiles {
		if p.Key() == key {
			found = p
			matches++
		}
	}

	switch {
	case matches == 1:
		return found, nil
	case matches > 1:
		return ConversionProfile{}, ErrAmbiguous
	default:
		return ConversionProfile{}, ErrNoMatch
	}
}
