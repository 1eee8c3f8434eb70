package bootstrap

import (
	"hiking-portal-be/internal/config"
	"hiking-portal-be/internal/controller"
	"hiking-portal-be/internal/pkg/clock"
	"hiking-portal-be/internal/pkg/logger"
	"hiking-portal-be/internal/pkg/mailer"
	"hiking-portal-be/internal/repository/memory"
	"hiking-portal-be/internal/repository/unitofwork"
	"hiking-portal-be/internal/scheduler"
	"hiking-portal-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RetentionController controller.IRetentionController
	ProfileController   controller.IProfileController

	// Background services (exposed for main.go to run)
	ActivityService    service.IActivityService
	RetentionScheduler *scheduler.RetentionScheduler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// The compliance trail gets its own file so sweeps can be audited without
	// digging through request logs.
	retentionLogger := logger.NewIsolatedLogger("logs/retention.log")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
		cfg.App.SupportEmail,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Services
	clk := clock.System()
	throttle := memory.NewActivityThrottle(cfg.Retention.ActivityThrottle)

	notificationService := service.NewNotificationService(emailService, uowFactory, sysLogger)
	activityService := service.NewActivityService(pubSub, uowFactory, throttle, clk, sysLogger)
	retentionService := service.NewRetentionService(uowFactory, notificationService, cfg.Retention, clk, retentionLogger)

	retentionScheduler := scheduler.NewRetentionScheduler(retentionService, cfg.Retention, retentionLogger)

	// 4. Controllers
	return &Container{
		RetentionController: controller.NewRetentionController(retentionService, retentionScheduler, retentionLogger),
		ProfileController:   controller.NewProfileController(retentionService, activityService),

		ActivityService:    activityService,
		RetentionScheduler: retentionScheduler,
	}
}
