package app

import (
	"database/sql"

	"go-presensi/internal/attendance"
	"go-presensi/internal/bootstrap"
	"go-presensi/internal/calendar"
	"go-presensi/internal/challenge"
	"go-presensi/internal/dutyschedule"
	"go-presensi/internal/geofence"
	"go-presensi/internal/geoguard"
	"go-presensi/internal/identity"
	"go-presensi/internal/leave"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/tukin"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	identityRepo := identity.NewRepository(gormDB)
	geofenceRepo := geofence.NewRepository(gormDB)
	calendarRepo := calendar.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	dutyRepo := dutyschedule.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	tukinRepo := tukin.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Shared infrastructure ---
	auditLogger := bootstrap.NewStdoutAuditLogger()
	tzResolver := identity.NewTimezoneResolver(identityRepo, rdb)

	// --- Services ---
	challengeService := challenge.NewService(rdb)
	guard := geoguard.NewGuard(rdb)
	geofenceService := geofence.NewService(geofenceRepo)
	calendarService := calendar.NewService(calendarRepo)
	leaveService := leave.NewService(db, leaveRepo)
	dutyService := dutyschedule.NewService(db, dutyRepo)
	attendanceService := attendance.NewService(
		db, attendanceRepo,
		challengeService, guard, geofenceService, tzResolver, auditLogger,
	)
	tukinService := tukin.NewService(
		db, tukinRepo, identityRepo, tzResolver,
		calendarRepo, leaveRepo, dutyRepo, attendanceRepo, outboxRepo,
	)

	// --- Handlers ---
	challengeHandler := challenge.NewHandler(challengeService)
	geofenceHandler := geofence.NewHandler(geofenceService)
	calendarHandler := calendar.NewHandler(calendarService)
	leaveHandler := leave.NewHandler(leaveService)
	dutyHandler := dutyschedule.NewHandler(dutyService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	tukinHandler := tukin.NewHandlerWithRedis(tukinService, rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		challenge.RegisterRoutes(api, challengeHandler)
		geofence.RegisterRoutes(api, geofenceHandler)
		calendar.RegisterRoutes(api, calendarHandler)
		leave.RegisterRoutes(api, leaveHandler)
		dutyschedule.RegisterRoutes(api, dutyHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
		tukin.RegisterRoutes(api, tukinHandler, rdb)
	}

	return nil
}
