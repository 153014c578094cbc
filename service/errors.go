package services

import "errors"

// Validation and authorization errors surfaced by the engine. Controllers
// map these onto HTTP statuses; none of them leave partial state behind.
var (
	// ErrReasonRequired rejects a reassignment with an empty reason.
	ErrReasonRequired = errors.New("reassignment reason is required")

	// ErrNoChanges rejects a reassignment whose requested fields all match
	// the current values.
	ErrNoChanges = errors.New("no changes detected")

	// ErrCorrespondenceNotFound is returned for unknown correspondence ids.
	ErrCorrespondenceNotFound = errors.New("correspondence not found")

	// ErrUserNotFound is returned when a UserRef resolves to nothing.
	ErrUserNotFound = errors.New("user not found")

	// ErrOfficeNotFound is returned for unknown office identifiers.
	ErrOfficeNotFound = errors.New("office not found")

	// ErrCapabilityDenied rejects a minute action the actor (or their
	// delegation) is not entitled to perform.
	ErrCapabilityDenied = errors.New("actor lacks the capability required for this action")

	// ErrNoActiveMembership rejects creation by a user with no active
	// office posting.
	ErrNoActiveMembership = errors.New("user has no active office membership")

	// ErrExternalIntakeDisabled rejects registering external mail to an
	// office that disallows direct intake.
	ErrExternalIntakeDisabled = errors.New("office does not accept external intake")

	// ErrArchiveLevelRequired rejects archiving without a classification.
	ErrArchiveLevelRequired = errors.New("an archive level is required to archive correspondence")

	// ErrTerminalState rejects any mutation against an archived record.
	ErrTerminalState = errors.New("correspondence is archived and can no longer be modified")
)
