// Package style maps the user's enumerated styling choices to concrete
// rendering parameters.
//
// A [Config] holds the four user-facing options: category, font key, point
// size and alignment. [Resolve] turns it into a [Resolved] value carrying the
// font stack, colour, pixel size and text alignment used by every line of the
// overlay. Resolution is a pure function: the same Config always yields the
// same Resolved, and no key is ever fatal.
//
// # Closed Enumerations
//
// Every option is a closed enumeration with an exhaustive lookup table. Font
// keys that are not in the table fall back to [FontDefault]; categories and
// alignments are validated at the input boundary by the Parse functions.
//
// # Units
//
// Point sizes are converted to CSS pixels at 96 DPI, so one point is 4/3
// pixels and the default 24pt resolves to 32px.
package style
