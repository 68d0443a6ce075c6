package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JosuePerezValenzuela/Api-Reservas/config"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/api/handler"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/api/middleware"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/jwt"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 院系模块
			faculties := authorized.Group("/faculties")
			{
				faculties.GET("", h.Faculty.List)
				faculties.GET("/:id", h.Faculty.Get)
				faculties.POST("", middleware.RoleAuth("admin"), h.Faculty.Create)
			}

			// 场地类型模块
			ambientTypes := authorized.Group("/ambient-types")
			{
				ambientTypes.GET("", h.Ambient.ListTypes)
				ambientTypes.POST("", middleware.RoleAuth("admin"), h.Ambient.CreateType)
			}

			// 楼栋模块
			blocks := authorized.Group("/blocks")
			{
				blocks.GET("", h.Ambient.ListBlocks)
				blocks.POST("", middleware.RoleAuth("admin"), h.Ambient.CreateBlock)
			}

			// 场地模块
			ambients := authorized.Group("/ambients")
			{
				ambients.GET("", h.Ambient.List)
				ambients.GET("/:id", h.Ambient.Get)
				ambients.POST("", middleware.RoleAuth("admin", "planner"), h.Ambient.Create)
				ambients.PATCH("/:id", middleware.RoleAuth("admin", "planner"), h.Ambient.Update)
			}

			// 班组模块
			groups := authorized.Group("/groups")
			{
				groups.GET("", h.Group.List)
				groups.GET("/:id", h.Group.Get)
				groups.POST("", middleware.RoleAuth("admin", "planner"), h.Group.Create)
			}

			// 时间模型模块
			timeModels := authorized.Group("/time-models")
			{
				timeModels.GET("", h.TimeModel.List)
				timeModels.GET("/:id", h.TimeModel.Get)
				timeModels.POST("", middleware.RoleAuth("admin"), h.TimeModel.Create)
				timeModels.DELETE("/:id", middleware.RoleAuth("admin"), h.TimeModel.Delete)
			}

			// 学期模块
			periods := authorized.Group("/periods")
			{
				periods.GET("", h.Period.List)
				periods.GET("/:id", h.Period.Get)
				periods.POST("", middleware.RoleAuth("admin", "planner"), h.Period.Create)
				periods.POST("/:id/activate", middleware.RoleAuth("admin", "planner"), h.Period.Activate)
				periods.POST("/:id/close", middleware.RoleAuth("admin", "planner"), h.Period.Close)

				// 任课分配（按学期维度）
				periods.GET("/:id/assignments", h.Assignment.ListByPeriod)
				periods.DELETE("/:id/assignments/:group_id", middleware.RoleAuth("admin", "planner"), h.Assignment.Unassign)

				// 周课表（按学期维度）
				periods.GET("/:id/weekly-schedules", h.Weekly.ListByPeriod)
				periods.GET("/:id/weekly-schedules/export", h.Export.WeeklyScheduleXLSX)
				periods.DELETE("/:id/weekly-slots", middleware.RoleAuth("admin", "planner"), h.Weekly.RemoveSlot)
			}

			// 任课分配模块
			authorized.POST("/assignments", middleware.RoleAuth("admin", "planner"), h.Assignment.Assign)

			// 周课表模块
			authorized.POST("/weekly-slots", middleware.RoleAuth("admin", "planner"), h.Weekly.AddSlot)

			// 预约模块（Service 层按 actor 作用域鉴权）
			reservations := authorized.Group("/reservations")
			{
				reservations.GET("", h.Reservation.List)
				reservations.GET("/:id", h.Reservation.Get)
				reservations.GET("/:id/ics", h.Export.ReservationICS)
				reservations.POST("", h.Reservation.Create)
				reservations.POST("/:id/cancel", h.Reservation.Cancel)
			}
		}
	}

	return r
}
