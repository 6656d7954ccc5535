package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/config"
	"github.com/ausf-dev/staffing-scheduler/backend/internal/grid"
	"github.com/ausf-dev/staffing-scheduler/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	axis        *grid.AxisGenerator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		axis:        grid.NewAxisGenerator(cfg.Grid.WeeksToShow, cfg.Grid.VisibleDays),
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.coordinator)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.SearchStaff)
			r.Post("/", h.CreateStaffMember)
		})

		// 固定日期需求的日期行批量生成，是创建需求前的纯计算辅助接口
		r.Post("/bulk-dates", h.GenerateBulkDates)

		r.Route("/staffing-requests", func(r chi.Router) {
			r.Post("/", h.CreateStaffingRequest)
			r.Get("/", h.GetAllStaffingRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.staffingRequest)
				r.Get("/", h.GetStaffingRequest)
				r.Patch("/", h.UpdateStaffingRequest)
				r.Get("/grid", h.GetStaffingRequestGrid)
				r.Route("/assignments", func(r chi.Router) {
					r.Use(h.coordinator)
					r.Post("/", h.AssignStaff)
					r.Post("/promote", h.PromoteAssignments)
				})
				r.Route("/selection", func(r chi.Router) {
					r.Use(h.coordinator)
					r.Get("/", h.GetSelection)
					r.Post("/toggle", h.ToggleSelection)
					r.Post("/select-row", h.SelectRow)
					r.Delete("/", h.ClearSelection)
				})
			})
		})
	})
}
