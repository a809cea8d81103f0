package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/irabtech/lms/internal/delivery/http/controllers"
	"github.com/irabtech/lms/internal/delivery/http/controllers/middleware"
	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/internal/service"
	"github.com/irabtech/lms/pkg/logger"
)

func InitRoutes(l logger.Log, u service.Collection, idp *middleware.IdentityProvider, courses controllers.CourseService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	courseController := controllers.NewCourseHandler(l, courses)
	enrollmentController := controllers.NewEnrollmentHandler(l, u.EnrollmentService)
	learningController := controllers.NewLearningHandler(l, u.LearningFlow, u.CompletionService)
	quizController := controllers.NewQuizHandler(l, u.QuizGrader)
	certificateController := controllers.NewCertificateHandler(l, u.CertificateIssuer)

	v1 := r.Group("/v1", middleware.Logging(l))
	{
		v1.GET("/status", statusController.Status)
		v1.GET("/certificates/:certificate_id", certificateController.CertificateByID)

		courses := v1.Group("/courses")
		{
			courses.GET("/:course_id", courseController.CourseByID)

			learner := courses.Group("", idp.Identity)
			{
				learner.POST("/:course_id/enroll", enrollmentController.Enroll)
				learner.GET("/:course_id/enrollment", enrollmentController.GetEnrollment)
				learner.POST("/:course_id/lessons/:lesson_id/complete", learningController.CompleteLesson)
				learner.GET("/:course_id/completion", learningController.CompletionStatus)
			}

			staff := courses.Group("", idp.Identity,
				middleware.RequireRoles(models.InstructorRole, models.AdminRole))
			{
				staff.GET("/:course_id/enrollments", enrollmentController.ListCourseEnrollments)
			}
		}

		me := v1.Group("", idp.Identity)
		{
			me.GET("/enrollments", enrollmentController.ListUserEnrollments)
			me.GET("/certificates", certificateController.ListUserCertificates)
		}

		v1.GET("/lessons/:lesson_id/quiz", idp.Identity, quizController.QuizForLesson)

		quizzes := v1.Group("/quizzes", idp.Identity)
		{
			quizzes.GET("/:quiz_id", quizController.QuizByID)
			quizzes.POST("/:quiz_id/attempts", learningController.SubmitQuiz)
			quizzes.GET("/:quiz_id/attempts", quizController.Attempts)
			quizzes.GET("/:quiz_id/attempts/best", quizController.BestAttempt)
		}
	}
	return r
}
