package messageformat

import "errors"

// ErrMissingFallbackCase indicates a select/plural/selectordinal token without an "other" case.
var ErrMissingFallbackCase = errors.New("messageformat: missing 'other' case")

// ErrUnresolvedFormatter indicates a function call to a formatter that is neither registered nor provided by a default factory.
var ErrUnresolvedFormatter = errors.New("messageformat: formatter not found")

// ErrUnrecognizedToken marks a token the compiler does not know how to emit.
// It signals a contract mismatch with the upstream parser.
var ErrUnrecognizedToken = errors.New("messageformat: unrecognized token")

// ErrNilConfig is returned when a compiler is used without an owning Config
var ErrNilConfig = errors.New("messageformat: nil config")

// ErrMissingLocale is returned when a plural or selectordinal token is compiled
// without a locale to name its plural rule function.
var ErrMissingLocale = errors.New("messageformat: missing locale for plural rules")
