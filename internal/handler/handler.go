package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/turnosmed/gestor-turnos/backend/internal/config"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
	"github.com/turnosmed/gestor-turnos/backend/internal/generator"
	"github.com/turnosmed/gestor-turnos/backend/internal/repository"
	"github.com/turnosmed/gestor-turnos/backend/internal/schedule"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
	schedule      *schedule.Service
	generator     *generator.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, sched *schedule.Service, gen *generator.Client, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,
		schedule:      sched,
		generator:     gen,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// Authentication
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Everything below requires a session.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUser)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/specialties", func(r chi.Router) {
			r.Get("/", h.GetAllSpecialties)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateSpecialty)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/{name}", h.DeleteSpecialty)
		})

		r.Route("/doctors", func(r chi.Router) {
			r.With(h.myInfo).Get("/", h.GetDoctors)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateDoctor)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.doctorInfo)
				r.Get("/", h.GetDoctor)
				r.Get("/hours", h.GetDoctorHours)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateDoctor)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteDoctor)
			})
		})

		r.Route("/shift-types", func(r chi.Router) {
			r.With(h.myInfo).Get("/", h.GetShiftTypes)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateShiftType)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/{id}", h.DeleteShiftType)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.With(h.myInfo).Get("/", h.GetShifts)
			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
				r.Post("/", h.CreateShift)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.shiftInfo)
					r.Patch("/", h.UpdateShift)
				})
				r.Delete("/{id}", h.DeleteShift)
			})
		})

		r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/schedule/generate", h.GenerateSchedule)
	})
}
