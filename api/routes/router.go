package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okuyamiwatch/backend/api/controllers"
	"github.com/okuyamiwatch/backend/api/middleware"
	"github.com/okuyamiwatch/backend/internal/auth"
	"github.com/okuyamiwatch/backend/internal/names"
	"github.com/okuyamiwatch/backend/internal/notifications"
	"github.com/okuyamiwatch/backend/pkg/config"
	"github.com/okuyamiwatch/backend/pkg/logger"
)

type sessionManager interface {
	Rotate(ctx context.Context, oldTokenID, provided string) (string, string, error)
	Revoke(ctx context.Context, tokenID string) error
}

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config               *config.Config
	Logger               *logger.Logger
	DB                   controllers.Pinger
	Redis                controllers.Pinger
	SessionManager       sessionManager
	AuthService          auth.Service
	RegisterService      auth.RegisterService
	NamesService         names.Service
	NotificationsService notifications.Service
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(p.Logger, map[string]controllers.Pinger{
			"database": p.DB,
			"redis":    p.Redis,
		}))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(p.RegisterService, p.Logger))
		r.Post("/login", controllers.AuthLogin(p.AuthService, p.Config.JWT, p.Config.Session, p.Logger))
		r.Post("/logout", controllers.AuthLogout(p.SessionManager, p.Config.JWT, p.Config.Session, p.Logger))
		r.Post("/refresh", controllers.AuthRefresh(p.SessionManager, p.Config.JWT, p.Config.Session, p.Logger))
	})

	r.Route("/names", func(r chi.Router) {
		r.Use(middleware.Auth(p.Config.JWT, p.Config.Session, p.Logger))
		r.Get("/", controllers.NamesList(p.NamesService, p.Logger))
		r.Post("/", controllers.NameCreate(p.NamesService, p.Logger))
		r.Put("/{nameId}", controllers.NameUpdate(p.NamesService, p.Logger))
		r.Patch("/{nameId}", controllers.NameToggle(p.NamesService, p.Logger))
		r.Delete("/{nameId}", controllers.NameDelete(p.NamesService, p.Logger))
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.Auth(p.Config.JWT, p.Config.Session, p.Logger))
		r.Get("/", controllers.NotificationsList(p.NotificationsService, p.Logger))
		r.Post("/{notificationId}/read", controllers.NotificationRead(p.NotificationsService, p.Logger))
	})

	r.Route("/app", func(r chi.Router) {
		r.Use(middleware.SessionGate(p.Config.JWT, p.Config.Session, p.Logger))
		r.Get("/login", controllers.AppPage("ログイン"))
		r.Get("/dashboard", controllers.AppPage("ダッシュボード"))
		r.Get("/names", controllers.AppPage("見守りリスト"))
		r.Get("/notifications", controllers.AppPage("通知"))
		r.Get("/settings", controllers.AppPage("設定"))
	})

	return r
}
