package usecases

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// PackagePolicy decides how a requested package change takes effect for a
// merchant whose subscription has gone live. During the trial window changes
// apply immediately; afterwards they are deferred to the next billing-period
// boundary. It never touches progress or status.
type PackagePolicy struct {
	TrialDays int
}

// PackageChange is the decided outcome of a package-change request.
type PackageChange struct {
	// Package is the merchant's package after the decision.
	Package string
	// PendingPackage / PendingSince describe a scheduled change; both are
	// zero when no change is pending.
	PendingPackage string
	PendingSince   null.Time
}

// InTrial reports whether the merchant is still within TrialDays of account
// creation at the given instant.
func (p PackagePolicy) InTrial(createdAt, now time.Time) bool {
	return now.AddDate(0, 0, -p.TrialDays).Before(createdAt)
}

// Decide applies the transition rules to a requested package change.
//
//   - in trial, non-empty request: the change happens now, nothing is pending
//   - in trial, empty request: no-op
//   - after trial, request equals current: cancel any scheduled change
//   - after trial, request differs: schedule it for the first day of the
//     month after now, start of day, UTC
func (p PackagePolicy) Decide(current, requested string, inTrial bool, now time.Time) PackageChange {
	if inTrial {
		if requested == "" {
			return PackageChange{Package: current}
		}
		return PackageChange{Package: requested}
	}

	if requested == current {
		return PackageChange{Package: current}
	}

	return PackageChange{
		Package:        current,
		PendingPackage: requested,
		PendingSince:   null.TimeFrom(NextBillingPeriodStart(now)),
	}
}

// NextBillingPeriodStart returns the first day of the month after now,
// 00:00:00 UTC.
func NextBillingPeriodStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}
