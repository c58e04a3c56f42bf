package state

import "fmt"

// CatalogueMissError reports that a card name named by the server doesn't
// appear anywhere in the exploration or monster catalogue.
type CatalogueMissError struct {
	Name string
}

func (e *CatalogueMissError) Error() string {
	return fmt.Sprintf("state: card %q not found in catalogue", e.Name)
}

// IllegalTurnError reports that no legal placement exists for a card, even
// after falling back to the rift-land shape — a condition the search
// should never actually hit, since rift-land always fits a single empty
// cell, but one the driver still has to be able to report cleanly.
type IllegalTurnError struct {
	Card string
}

func (e *IllegalTurnError) Error() string {
	return fmt.Sprintf("state: no legal placement for card %q, even with rift-land fallback", e.Card)
}
