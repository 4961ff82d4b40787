package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrClockInNotAvailable    = errors.New("clock-in not available at this hour")
	ErrNormalSessionExists    = errors.New("normal attendance already recorded for today")
	ErrOvertimeSessionExists  = errors.New("overtime attendance already recorded for today")
	ErrNormalSessionStillOpen = errors.New("clock out of the normal session before starting overtime")
	ErrSessionAlreadyRecorded = errors.New("attendance session already recorded for this date")

	// Clock-out and finalize errors
	ErrNoOpenSession        = errors.New("no open attendance session")
	ErrSessionAlreadyClosed = errors.New("attendance session already closed")
	ErrSessionLocked        = errors.New("attendance record is locked")
	ErrFinalizeFailed       = errors.New("attendance session could not be finalized")

	// General errors
	ErrSessionNotFound = errors.New("attendance session not found")
)
