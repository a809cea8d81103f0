package service

import (
	"github.com/irabtech/lms/internal/service/certificate"
	"github.com/irabtech/lms/internal/service/completion"
	"github.com/irabtech/lms/internal/service/enrollment"
	"github.com/irabtech/lms/internal/service/learning"
	"github.com/irabtech/lms/internal/service/progress"
	"github.com/irabtech/lms/internal/service/quiz"
)

type Collection struct {
	*enrollment.EnrollmentService
	*progress.ProgressTracker
	*quiz.QuizGrader
	*completion.CompletionService
	*certificate.CertificateIssuer
	*learning.LearningFlow
}
