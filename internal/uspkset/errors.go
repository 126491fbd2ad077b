package uspkset

import "errors"

var (
	// ErrPopulatingInProgress is returned when PopulateFromFile is
	// called while another populate call is already in flight.
	ErrPopulatingInProgress = errors.New("uspkset: population already in progress")

	// ErrAlreadyPopulated is returned when PopulateFromFile is called
	// on a set that has already finished populating.
	ErrAlreadyPopulated = errors.New("uspkset: set is already populated")

	// ErrNotPopulated is returned by Contains when the set has not
	// finished populating yet.
	ErrNotPopulated = errors.New("uspkset: set has not been populated")
)
