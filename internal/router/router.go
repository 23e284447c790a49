package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/eduhub/backend/api/handler"
)

type Handlers struct {
	Task       *apiHandler.TaskHandler
	Dashboard  *apiHandler.DashboardHandler
	Streak     *apiHandler.StreakHandler
	Focus      *apiHandler.FocusHandler
	Mood       *apiHandler.MoodHandler
	Medication *apiHandler.MedicationHandler
	Advisor    *apiHandler.AdvisorHandler
	Health     *apiHandler.HealthHandler
}

func New(handlers Handlers, identify func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/tasks", identify(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", identify(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/queue", identify(handlers.Task.GetQueue))
	r.GET("/api/v1/tasks/prioritized", identify(handlers.Task.GetPrioritized))
	r.POST("/api/v1/tasks/reorder", identify(handlers.Task.ReorderTasks))
	r.PUT("/api/v1/tasks/{id}", identify(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", identify(handlers.Task.DeleteTask))

	r.GET("/api/v1/dashboard", identify(handlers.Dashboard.GetDashboard))

	r.GET("/api/v1/streak", identify(handlers.Streak.GetStreak))
	r.POST("/api/v1/streak/mark", identify(handlers.Streak.MarkToday))

	r.GET("/api/v1/focus", identify(handlers.Focus.GetStatus))
	r.POST("/api/v1/focus/start", identify(handlers.Focus.Start))
	r.POST("/api/v1/focus/pause", identify(handlers.Focus.Pause))
	r.POST("/api/v1/focus/stop", identify(handlers.Focus.Stop))
	r.POST("/api/v1/focus/reset", identify(handlers.Focus.Reset))
	r.GET("/api/v1/focus/today", identify(handlers.Focus.Today))

	r.GET("/api/v1/moods", identify(handlers.Mood.GetMoods))
	r.POST("/api/v1/moods", identify(handlers.Mood.CreateMood))
	r.DELETE("/api/v1/moods/{id}", identify(handlers.Mood.DeleteMood))

	r.GET("/api/v1/medications", identify(handlers.Medication.GetMedications))
	r.POST("/api/v1/medications", identify(handlers.Medication.CreateMedication))
	r.PUT("/api/v1/medications/{id}", identify(handlers.Medication.UpdateMedication))
	r.DELETE("/api/v1/medications/{id}", identify(handlers.Medication.DeleteMedication))
	r.POST("/api/v1/medications/{id}/log", identify(handlers.Medication.LogTaken))

	r.POST("/api/v1/advisor", identify(handlers.Advisor.Advise))
	r.POST("/api/v1/chat", identify(handlers.Advisor.Chat))
	r.DELETE("/api/v1/chat", identify(handlers.Advisor.ClearChat))

	return r
}
