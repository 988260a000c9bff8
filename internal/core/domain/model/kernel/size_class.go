package kernel

import (
	"fmt"

	"lockers/internal/pkg/errs"
)

// SizeClass is the categorical capacity tag shared by packages and lockers.
// A locker only ever holds a package of exactly its own size class; there is
// no implicit upsizing, so compartment sizing stays predictable.
//
// SizeClass is a value object that validates its range and provides string
// representations for persistence and display.
type SizeClass int

const (
	// SizeUnknown represents an invalid or undefined size class.
	// This value (0) helps catch uninitialized SizeClass values.
	SizeUnknown SizeClass = iota

	// SizeSmall fits envelopes and small parcels.
	SizeSmall

	// SizeMedium fits standard parcels.
	SizeMedium

	// SizeLarge fits bulky parcels.
	SizeLarge
)

// getSizeClassStrings returns a map of SizeClass values to their string
// representations. All values are included for string conversion.
func getSizeClassStrings() map[SizeClass]string {
	return map[SizeClass]string{
		SizeUnknown: "Unknown",
		SizeSmall:   "Small",
		SizeMedium:  "Medium",
		SizeLarge:   "Large",
	}
}

// getValidSizeClassStrings returns a map of only valid SizeClass values.
// Only valid size classes are included to support validation.
func getValidSizeClassStrings() map[SizeClass]string {
	//nolint:exhaustive // SizeUnknown is intentionally excluded as it's invalid
	return map[SizeClass]string{
		SizeSmall:  "Small",
		SizeMedium: "Medium",
		SizeLarge:  "Large",
	}
}

// SizeClassFromString parses a size class from its string representation.
// Used when reconstructing values from persistence or external requests.
func SizeClassFromString(s string) (SizeClass, error) {
	for size, str := range getValidSizeClassStrings() {
		if str == s {
			return size, nil
		}
	}
	return SizeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"sizeClass is invalid",
		fmt.Errorf("%q is not a valid size class", s),
	)
}

// Validate checks if the SizeClass value is valid.
//
// Valid size classes are: SizeSmall, SizeMedium, SizeLarge.
// SizeUnknown (0) and any other values are invalid.
func (s SizeClass) Validate() error {
	if _, ok := getValidSizeClassStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"sizeClass is invalid",
			fmt.Errorf("%d is not a valid size class", s),
		)
	}
	return nil
}

// String returns the human-readable name of the size class.
// Implements fmt.Stringer and is safe to call on any value.
func (s SizeClass) String() string {
	if str, ok := getSizeClassStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsEqual reports whether two size classes match. Allocation requires an
// exact match between package and locker size.
func (s SizeClass) IsEqual(other SizeClass) bool {
	return s == other
}
