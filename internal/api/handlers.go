package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/nutrigoal/internal/db"
	"github.com/terraincognita07/nutrigoal/internal/metrics"
	"github.com/terraincognita07/nutrigoal/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	metrics      *metrics.Metrics
	loginLimiter *loginThrottle
	now          func() time.Time

	repositories   *db.Repositories
	authService    *services.AuthService
	profileService *services.ProfileService
	goalService    *services.GoalService
	consumption    *services.ConsumptionService
	statusService  *services.GoalStatusService
	itemService    *services.ItemService
	catalogService *services.CatalogService
}

type Options struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	Metrics      *metrics.Metrics
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Metrics == nil {
		options.Metrics = metrics.New()
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(options.SecretKey),
		location:     options.Location,
		cookieSecure: options.CookieSecure,
		metrics:      options.Metrics,
		loginLimiter: newLoginThrottle(loginFailureLimit, loginFailureWindow),
		now:          time.Now,
	}
	return handler.withDependencies(database), nil
}
