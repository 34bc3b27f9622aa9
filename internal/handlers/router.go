package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SAP-F-2025/studyhub-service/internal/services"
	"github.com/SAP-F-2025/studyhub-service/internal/utils"
)

type HandlerManager struct {
	studentHandler *StudentHandler
	tutorHandler   *TutorHandler
	sessionHandler *SessionHandler
	memberHandler  *MemberHandler
	reportHandler  *ReportHandler

	serviceManager services.ServiceManager
	serviceName    string
	logger         utils.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, serviceName string) *HandlerManager {
	return &HandlerManager{
		studentHandler: NewStudentHandler(serviceManager.Student(), logger),
		tutorHandler:   NewTutorHandler(serviceManager.Tutor(), logger),
		sessionHandler: NewSessionHandler(serviceManager.Session(), logger),
		memberHandler:  NewMemberHandler(serviceManager.Member(), logger),
		reportHandler:  NewReportHandler(serviceManager.Report(), logger),
		serviceManager: serviceManager,
		serviceName:    serviceName,
		logger:         logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Student routes
	students := router.Group("/student")
	{
		students.GET("", hm.studentHandler.ListStudents)
		students.POST("", hm.studentHandler.CreateStudent)
		students.GET("/:id", hm.studentHandler.GetStudent)
		students.PATCH("/:id", hm.studentHandler.UpdateStudent)
		students.DELETE("/:id", hm.studentHandler.DeleteStudent)
	}

	// Tutor routes
	tutors := router.Group("/tutor")
	{
		tutors.GET("", hm.tutorHandler.ListTutors)
		tutors.POST("", hm.tutorHandler.CreateTutor)
		tutors.GET("/:id", hm.tutorHandler.GetTutor)
		tutors.PATCH("/:id", hm.tutorHandler.UpdateTutor)
		tutors.DELETE("/:id", hm.tutorHandler.DeleteTutor)
	}

	// Session routes; GET /session takes the report criteria
	sessions := router.Group("/session")
	{
		sessions.GET("", hm.sessionHandler.ListSessions)
		sessions.POST("", hm.sessionHandler.CreateSession)
		sessions.GET("/:id", hm.sessionHandler.GetSession)
		sessions.PATCH("/:id", hm.sessionHandler.UpdateSession)
		sessions.DELETE("/:id", hm.sessionHandler.DeleteSession)
	}

	// Member directory routes
	members := router.Group("/member")
	{
		members.GET("", hm.memberHandler.ListMembers)
		members.POST("", hm.memberHandler.CreateMember)
		members.GET("/sync-failures", hm.memberHandler.ListSyncFailures)
		members.POST("/reconcile", hm.memberHandler.Reconcile)
		members.GET("/:id", hm.memberHandler.GetMember)
		members.PATCH("/:id", hm.memberHandler.UpdateMember)
		members.DELETE("/:id", hm.memberHandler.DeleteMember)
	}

	// Report routes
	reports := router.Group("/report")
	{
		reports.GET("/sessions", hm.reportHandler.SessionReport)
		reports.GET("/sessions.xlsx", hm.reportHandler.ExportSessionReport)
	}
}

// HealthCheck answers 503 when the store cannot be reached. The cache state is
// reported but never fails the check.
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := hm.serviceManager.HealthCheck(ctx); err != nil {
		utils.GetLogger(c, hm.logger).Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": hm.serviceName,
			"cache":   hm.serviceManager.CacheStatus(ctx),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   hm.serviceName,
		"cache":     hm.serviceManager.CacheStatus(ctx),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
