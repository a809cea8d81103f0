package app_errors

import "errors"

var ErrCourseNotFound = errors.New("course not found")
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrLessonNotFound = errors.New("lesson not found in course")
var ErrQuizNotFound = errors.New("quiz not found")
var ErrAttemptNotFound = errors.New("quiz attempt not found")
var ErrCertificateNotFound = errors.New("certificate not found")

// ErrInvalidQuiz means a quiz with zero questions reached the grader. This is
// a configuration error, never silently scored as 0% or 100%.
var ErrInvalidQuiz = errors.New("quiz has no questions")

// ErrCertificateAlreadyIssued is recoverable: the loser of an issuance race
// fetches the existing certificate and proceeds as if its call succeeded.
var ErrCertificateAlreadyIssued = errors.New("certificate already issued for this course and user")
