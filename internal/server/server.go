package server

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/studyplan/internal/analytics"
	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/schedule"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/abhisek/studyplan/internal/tips"
)

func init() {
	// Class and exam times bind with the clocktime rule.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
			_, _, err := models.ParseClockTime(fl.Field().String())
			return err == nil
		})
	}
}

// Datastore is the repository surface the handlers need. Both the mongo
// store and the in-memory store satisfy it.
type Datastore interface {
	Tasks() store.TaskRepo
	Classes() store.ClassRepo
	Exams() store.ExamRepo
	Slots() store.SlotRepo
	Preferences() store.PreferenceRepo
	Users() store.UserRepo
	Analytics() store.AnalyticsRepo
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	ds     Datastore
	tokens *TokenManager

	schedule  *schedule.Service
	tips      *tips.Generator
	analytics *analytics.Service
	recorder  *analytics.Recorder
}

// New wires a Server. recorder may be nil, in which case generation is not
// recorded into the analytics rollup.
func New(ds Datastore, tokens *TokenManager, scheduleSvc *schedule.Service, tipsGen *tips.Generator, analyticsSvc *analytics.Service, recorder *analytics.Recorder) *Server {
	return &Server{
		ds:        ds,
		tokens:    tokens,
		schedule:  scheduleSvc,
		tips:      tipsGen,
		analytics: analyticsSvc,
		recorder:  recorder,
	}
}

// Router builds the gin engine with all routes registered. Everything under
// /api except signup and login requires a bearer token.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api := router.Group("/api")
	api.POST("/auth/signup", s.Signup)
	api.POST("/auth/login", s.Login)

	authed := api.Group("/")
	authed.Use(s.Authenticate())
	{
		authed.GET("/tasks", s.ListTasks)
		authed.POST("/tasks", s.CreateTask)
		authed.PUT("/tasks/:id", s.UpdateTask)
		authed.DELETE("/tasks/:id", s.DeleteTask)

		authed.GET("/classes", s.ListClasses)
		authed.POST("/classes", s.CreateClass)
		authed.PUT("/classes/:id", s.UpdateClass)
		authed.DELETE("/classes/:id", s.DeleteClass)

		authed.GET("/exams", s.ListExams)
		authed.POST("/exams", s.CreateExam)
		authed.PUT("/exams/:id", s.UpdateExam)
		authed.DELETE("/exams/:id", s.DeleteExam)

		authed.GET("/preferences", s.GetPreferences)
		authed.PUT("/preferences", s.PutPreferences)

		authed.POST("/smart-schedule/generate", s.GenerateSchedule)
		authed.GET("/smart-schedule", s.ListSuggestions)
		authed.GET("/smart-schedule/confirmed", s.ListConfirmed)
		authed.POST("/smart-schedule/custom", s.CreateCustomSlot)
		authed.PUT("/smart-schedule/:slotId/confirm", s.ConfirmSlot)
		authed.PUT("/smart-schedule/:slotId/complete", s.CompleteSlot)
		authed.DELETE("/smart-schedule/:slotId", s.DeleteSlot)

		authed.GET("/tips", s.GetTips)

		authed.GET("/analytics/summary", s.AnalyticsSummary)
		authed.GET("/analytics/history", s.AnalyticsHistory)
		authed.GET("/analytics/insights", s.AnalyticsInsights)
	}

	return router
}
