package balance

import (
	"errors"
	"fmt"
)

// UnexpectedEndElementError records an end tag that did not match any open
// element up to the nearest close bound (spec §4.F.3 "ignored end-element
// reporting"). The balancer does not stop parsing on this; it calls
// Listener.IgnoredEndElement, and Parse-level callers may additionally
// surface it as a non-fatal error via the reported-errors feature.
type UnexpectedEndElementError struct {
	Name string
	At   int
}

// Error returns a human-readable error message.
func (u *UnexpectedEndElementError) Error() string {
	return fmt.Sprintf("unexpected end element %q at offset %d", u.Name, u.At)
}

// Is checks if the given error matches the receiver.
func (u *UnexpectedEndElementError) Is(err error) bool {
	var o *UnexpectedEndElementError
	return errors.As(err, &o) && *o == *u
}

// DuplicateSingletonError records a second occurrence of a singleton
// element (html, head, body, frameset), which the balancer ignores rather
// than pushing (spec §3 "Singleton", §4.F.2 step 4).
type DuplicateSingletonError struct {
	Name string
	At   int
}

// Error returns a human-readable error message.
func (d *DuplicateSingletonError) Error() string {
	return fmt.Sprintf("duplicate singleton element %q at offset %d", d.Name, d.At)
}

// Is checks if the given error matches the receiver.
func (d *DuplicateSingletonError) Is(err error) bool {
	var o *DuplicateSingletonError
	return errors.As(err, &o) && *o == *d
}
