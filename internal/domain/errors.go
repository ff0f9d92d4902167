package domain

import "errors"

var (
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrInvalidDuration     = errors.New("meeting duration must be a positive number of minutes")
	ErrNoPendingExtension  = errors.New("no meeting extension is available")
	ErrPersonalRoomEndCall = errors.New("personal rooms cannot end the call for everyone")
)
