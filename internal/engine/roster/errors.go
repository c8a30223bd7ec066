package roster

import (
	"errors"
	"fmt"
)

// ErrRosterUnavailable marks a team for which neither a live roster nor season stats exist.
var ErrRosterUnavailable = errors.New("roster unavailable")

// RosterUnavailableError identifies the team whose roster could not be assembled.
type RosterUnavailableError struct {
	TeamID string
}

func (e *RosterUnavailableError) Error() string {
	if e.TeamID == "" {
		return ErrRosterUnavailable.Error()
	}
	return fmt.Sprintf("%s: team %s", ErrRosterUnavailable.Error(), e.TeamID)
}

func (e *RosterUnavailableError) Unwrap() error {
	return ErrRosterUnavailable
}

// AsRosterUnavailable attempts to unwrap err into a RosterUnavailableError.
func AsRosterUnavailable(err error) (*RosterUnavailableError, bool) {
	var rErr *RosterUnavailableError
	if errors.As(err, &rErr) {
		return rErr, true
	}
	return nil, false
}
