package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/fieldforce-dev/workforce/backend/internal/config"
	"github.com/fieldforce-dev/workforce/backend/internal/domain"
	"github.com/fieldforce-dev/workforce/backend/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Store 是 handler 需要的全部数据访问操作，由 repository.Repository 实现
type Store interface {
	Ping() error

	GetUserByID(id int64) (*domain.User, error)
	GetUserByUserID(userID string) (*domain.User, error)
	GetAllUsers() ([]*domain.User, error)
	CreateUser(user *domain.User) error
	UpdateUserStatus(id int64, isActive bool) error
	DeleteUser(id int64) error

	GetAllEmployees() ([]*domain.Employee, error)
	CreateEmployee(e *domain.Employee) error

	GetCustomers(employeeID *int64) ([]*domain.Customer, error)
	ImportCustomers(customers []*domain.Customer) (int, error)
	AllocateCustomer(customerID int64, employeeID int64) error
	DeallocateCustomer(customerID int64) error

	GetAllFeedback() ([]*domain.Feedback, error)
	CreateFeedback(f *domain.Feedback) error
	UpdateFeedback(f *domain.Feedback) error
	DeleteFeedback(id int64) error

	GetAttendanceByEmployee(employeeID int64) ([]*domain.Attendance, error)
	CheckIn(employeeID int64, date string, loginTime string) error
	CheckOut(employeeID int64, date string, logoutTime string) (int64, error)

	GetActiveAds() ([]*domain.Ad, error)
	CreateAd(ad *domain.Ad) error
	ToggleAd(id int64) error
	DeleteAd(id int64) error
}

// BlobStore 由 storage.Local 实现
type BlobStore interface {
	Root() string
	Save(field string, filename string, src io.Reader) (string, error)
	Remove(path string) error
}

// TokenDenylist 由 token.Denylist 实现
type TokenDenylist interface {
	Revoke(jti string, ttl time.Duration) error
	IsRevoked(jti string) (bool, error)
}

// MailPublisher 由 mailqueue.Publisher 实现
type MailPublisher interface {
	Publish(msg domain.MailMessage) error
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository Store
	translator ut.Translator
	issuer     *token.Issuer
	denylist   TokenDenylist
	blobs      BlobStore
	mail       MailPublisher
	location   *time.Location
	now        func() time.Time

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo Store, blobs BlobStore, denylist TokenDenylist, mail MailPublisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(cfg.Attendance.TimeZone)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,
		issuer:     token.NewIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Second),
		denylist:   denylist,
		blobs:      blobs,
		mail:       mail,
		location:   location,
		now:        time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// 上传的文件以静态资源的形式返回，不提供目录列表
	h.Mux.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesOnly{fsys: http.Dir(h.blobs.Root())})))

	adminOnly := h.RequiredRole([]domain.Role{domain.RoleAdmin})

	h.Mux.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Get("/health", h.Health)

		// 以下 API 必须要在登录后才允许调用
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/logout", h.Logout)

			r.Route("/users", func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", h.GetAllUsers)
				r.Post("/", h.CreateUser)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.userInfo)
					r.Use(h.preventOperateInitialAdmin)
					r.Patch("/status", h.UpdateUserStatus)
					r.Delete("/", h.DeleteUser)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.GetAllEmployees)
				r.With(adminOnly).Post("/", h.CreateEmployee)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", h.GetCustomers)
				r.With(adminOnly).Post("/import", h.ImportCustomers)
				r.With(adminOnly).Patch("/allocate", h.AllocateCustomer)
				r.With(adminOnly).Patch("/deallocate", h.DeallocateCustomer)
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", h.GetAllFeedback)
				r.Post("/", h.CreateFeedback)
				r.Put("/{id}", h.UpdateFeedback)
				r.Delete("/{id}", h.DeleteFeedback)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.GetMyAttendance)
				r.Post("/checkin", h.CheckIn)
				r.Post("/checkout", h.CheckOut)
			})

			r.Route("/ads", func(r chi.Router) {
				r.Get("/", h.GetActiveAds)
				r.With(adminOnly).Post("/", h.CreateAd)
				r.With(adminOnly).Patch("/{id}/toggle", h.ToggleAd)
				r.With(adminOnly).Delete("/{id}", h.DeleteAd)
			})
		})
	})
}
