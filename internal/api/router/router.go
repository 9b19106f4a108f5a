package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/config"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/api/handler"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/api/middleware"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/jwt"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/redis"
)

// Setup khởi tạo và trả về Gin router
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middleware toàn cục ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Xác thực (không cần đăng nhập)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Các route cần đăng nhập
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// Quản lý tài khoản
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth(model.RoleAdmin), h.Auth.ListUsers)
			}

			// Học kỳ
			semesters := authorized.Group("/semesters")
			{
				semesters.GET("", h.Semester.List)
				semesters.GET("/current", h.Semester.GetCurrent)
				semesters.GET("/:id", h.Semester.Get)
				semesters.POST("", middleware.RoleAuth(model.RoleAdmin), h.Semester.Create)
				semesters.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Semester.Update)
				semesters.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Semester.Delete)
			}

			// Môn học
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Catalog.ListSubjects)
				subjects.POST("", middleware.RoleAuth(model.RoleAdmin), h.Catalog.CreateSubject)
				subjects.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Catalog.UpdateSubject)
				subjects.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Catalog.DeleteSubject)
			}

			// Phòng học
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Catalog.ListRooms)
				rooms.POST("", middleware.RoleAuth(model.RoleAdmin), h.Catalog.CreateRoom)
				rooms.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Catalog.UpdateRoom)
				rooms.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Catalog.DeleteRoom)
			}

			// Lớp chính (cố vấn học tập quản lý sinh viên)
			mainClasses := authorized.Group("/main-classes")
			{
				mainClasses.GET("", h.MainClass.List)
				mainClasses.GET("/:id", h.MainClass.Get)
				mainClasses.POST("", middleware.RoleAuth(model.RoleAdmin), h.MainClass.Create)
				mainClasses.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.MainClass.Update)
				mainClasses.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.MainClass.Delete)

				mainClasses.POST("/:id/join", h.MainClass.RequestJoin)
				mainClasses.GET("/:id/pending", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.MainClass.ListPending)
				mainClasses.POST("/:id/approve", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.MainClass.Approve)
				mainClasses.POST("/:id/reject", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.MainClass.Reject)
				mainClasses.GET("/:id/students", h.MainClass.ListStudents)
				mainClasses.DELETE("/:id/students/:studentId", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.MainClass.RemoveStudent)
			}

			// Lớp giảng dạy
			classes := authorized.Group("/teaching-classes")
			{
				classes.GET("", h.TeachingClass.List)
				classes.GET("/mine", h.TeachingClass.ListMine)
				classes.GET("/:id", h.TeachingClass.Get)
				classes.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.TeachingClass.Create)
				classes.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.TeachingClass.Update)
				classes.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.TeachingClass.Delete)
				classes.POST("/check-conflicts", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.TeachingClass.CheckConflicts)

				// Sinh viên trong lớp
				classes.GET("/:id/students", h.TeachingClass.ListStudents)
				classes.POST("/:id/students", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.TeachingClass.AddStudent)
				classes.POST("/:id/students/batch", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.TeachingClass.BatchAddStudents)
				classes.DELETE("/:id/students/:studentId", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.TeachingClass.RemoveStudent)

				// Buổi học
				classes.GET("/:id/sessions", h.TeachingClass.ListSessions)
				classes.GET("/:id/sessions/upcoming", h.TeachingClass.ListUpcomingSessions)
				classes.POST("/:id/sessions", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.TeachingClass.CreateSession)
				classes.POST("/:id/sessions/generate", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.TeachingClass.GenerateSessions)

				// Điểm chuyên cần
				classes.GET("/:id/scores", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Attendance.ListClassScores)
				classes.POST("/:id/scores/recompute", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Attendance.RecomputeClassScores)
				classes.GET("/:id/scores/me", middleware.RoleAuth(model.RoleStudent), h.Attendance.GetMyScore)
				classes.GET("/:id/attendance/me", middleware.RoleAuth(model.RoleStudent), h.Attendance.GetMyAttendanceDetail)
				classes.GET("/:id/students/:studentId/attendance", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Attendance.GetStudentDetail)
				classes.PUT("/:id/students/:studentId/score", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Attendance.UpdateStudentScore)

				// Xuất dữ liệu
				classes.GET("/:id/export/attendance", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Export.ExportAttendance)
				classes.GET("/:id/export/calendar", h.Export.ExportCalendar)
			}

			// Buổi học (thao tác trực tiếp theo ID buổi)
			sessions := authorized.Group("/sessions")
			{
				sessions.GET("/:id", h.Attendance.GetSession)
				sessions.PUT("/:id/status", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Attendance.UpdateSessionStatus)
				sessions.POST("/:id/attendance", middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Attendance.RecordAttendance)
				sessions.GET("/:id/attendance", h.Attendance.ListSessionLogs)
			}

			// Thông báo
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListMine)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}
		}
	}

	return r
}
