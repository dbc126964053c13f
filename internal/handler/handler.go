package handler

import (
	"github.com/go-chi/chi/v5"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/audit"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/cache"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/payload"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/policy"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/scheduler"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	translator  ut.Translator
	policy      policy.Policy
	fingerprint uint64
	parameters  *scheduler.Parameters
	cache       cache.Cache
	publisher   audit.Publisher

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, p policy.Policy, c cache.Cache, pub audit.Publisher) (*Handler, error) {
	validate, trans, err := payload.NewValidator()
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cache.Noop{}
	}
	if pub == nil {
		pub = audit.Noop{}
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		translator:  trans,
		policy:      p,
		fingerprint: p.Fingerprint(),
		parameters:  cfg.SchedulerParameters(),
		cache:       c,
		publisher:   pub,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Healthz)

	// 以下接口都是无状态的纯计算，相同输入一定得到相同输出
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.bodyLimit)
		r.Post("/validate-schedule", h.ValidateSchedule)
		r.Post("/calculate-schedule-cost", h.CalculateScheduleCost)
		r.Post("/suggest-schedule", h.SuggestSchedule)
	})
}
