package models

// EnrollOutcome classifies the result of an enroll or unenroll attempt.
// Rule rejections are reported as successful informational outcomes,
// not errors; only missing courses and failed auth are error paths.
type EnrollOutcome int

const (
	// OutcomeEnrolled means the pair transitioned from absent to enrolled.
	OutcomeEnrolled EnrollOutcome = iota
	// OutcomeAlreadyEnrolled means the pair already existed; no mutation.
	OutcomeAlreadyEnrolled
	// OutcomeStudentLimitReached means the student is at their course limit.
	OutcomeStudentLimitReached
	// OutcomeCourseLimitReached means the course is at capacity.
	OutcomeCourseLimitReached
	// OutcomeUnenrolled means the pair was deleted.
	OutcomeUnenrolled
	// OutcomeNotEnrolled means there was no pair to delete.
	OutcomeNotEnrolled
)
