package service

import "github.com/evently-app/evently/internal/model"

// Summarize partitions an RSVP set into accepted/declined counts and
// computes remaining spots against a capacity. Pure function: no side
// effects, stable under repeated calls.
func Summarize(rsvps []model.RSVP, maxAttendees *int32) model.EventSummary {
	accepted, declined := Partition(rsvps)
	return model.EventSummary{
		Total:          len(rsvps),
		Accepted:       len(accepted),
		Declined:       len(declined),
		SpotsRemaining: spotsRemaining(maxAttendees, len(accepted)),
	}
}

// Partition splits an RSVP set into its accepted and declined subsets,
// preserving the input ordering in both.
func Partition(rsvps []model.RSVP) (accepted, declined []model.RSVP) {
	for _, rv := range rsvps {
		if rv.Status == model.StatusAccepted {
			accepted = append(accepted, rv)
		} else {
			declined = append(declined, rv)
		}
	}
	return accepted, declined
}

// spotsRemaining returns max - accepted, floored at zero, or nil for an
// unlimited event.
func spotsRemaining(maxAttendees *int32, accepted int) *int32 {
	if maxAttendees == nil {
		return nil
	}
	remaining := *maxAttendees - int32(accepted)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}
