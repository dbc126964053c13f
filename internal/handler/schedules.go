package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/audit"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/cache"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/compliance"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/cost"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/payload"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/scheduler"
)

type suggestResponse struct {
	*scheduler.Result
	IgnoredRules []string `json:"ignoredRules"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "服务正常", nil)
}

func (h *Handler) ValidateSchedule(w http.ResponseWriter, r *http.Request) {
	var req payload.ScheduleRequest

	body, err := h.readJSON(r, &req)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	key := cache.Key("validate", body, h.fingerprint)
	if h.serveCached(w, r, key) {
		return
	}

	shifts, employees := req.Domain()
	result, err := compliance.Validate(shifts, employees, h.policy)
	if err != nil {
		h.computeError(w, r, err)
		return
	}

	h.respond(w, r, key, result, true)
	h.audit(r, domain.AuditValidateSchedule, body, domain.ValidationAuditData{
		IsValid:         result.IsValid,
		TotalShifts:     result.Summary.TotalShifts,
		TotalViolations: result.Summary.TotalViolations,
	})
}

func (h *Handler) CalculateScheduleCost(w http.ResponseWriter, r *http.Request) {
	var req payload.ScheduleRequest

	body, err := h.readJSON(r, &req)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	key := cache.Key("cost", body, h.fingerprint)
	if h.serveCached(w, r, key) {
		return
	}

	shifts, employees := req.Domain()
	result, err := cost.Calculate(shifts, employees, h.policy)
	if err != nil {
		h.computeError(w, r, err)
		return
	}

	h.respond(w, r, key, result, true)
	h.audit(r, domain.AuditCalculateScheduleCost, body, domain.CostAuditData{
		TotalCost:     result.TotalCost,
		EmployeeCount: result.Summary.EmployeeCount,
	})
}

func (h *Handler) SuggestSchedule(w http.ResponseWriter, r *http.Request) {
	var req payload.SuggestRequest

	body, err := h.readJSON(r, &req)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	p, ignored, err := h.policy.ApplyRules(req.Rules)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	key := cache.Key("suggest", body, h.fingerprint)
	if h.serveCached(w, r, key) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.OptimizerTimeout())
	defer cancel()

	employees, shifts := req.Domain()
	result, err := scheduler.Optimize(ctx, scheduler.New(h.parameters), scheduler.Request{
		Employees:  employees,
		OpenShifts: shifts,
		Policy:     p,
	})
	if err != nil {
		h.computeError(w, r, err)
		return
	}

	// 超时得到的结果与机器负载有关，不能缓存
	complete := !slices.ContainsFunc(result.Unresolved, func(u domain.UnresolvedShift) bool {
		return u.Reason == domain.UnresolvedDeadlineExceeded
	})

	h.respond(w, r, key, suggestResponse{Result: result, IgnoredRules: ignored}, complete)
	h.audit(r, domain.AuditSuggestSchedule, body, domain.SuggestionAuditData{
		Assigned:   len(result.Assignments),
		Unresolved: len(result.Unresolved),
		IsValid:    result.Validation.IsValid,
		TotalCost:  result.Cost.TotalCost,
	})
}

// serveCached 命中缓存时直接返回缓存的结果
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	data, ok, err := h.cache.Get(r.Context(), key)
	if err != nil {
		slog.Warn("读取缓存失败", "key", key, "request_id", requestIDFrom(r.Context()), "error", err)
		return false
	}
	if !ok {
		return false
	}

	w.Header().Set("X-Cache", "HIT")
	h.writeRaw(w, http.StatusOK, data)
	return true
}

// respond 返回计算结果，cacheable 为 true 时写入缓存
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, key string, v any, cacheable bool) {
	data, err := json.Marshal(v)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if cacheable {
		if err := h.cache.Set(r.Context(), key, data); err != nil {
			slog.Warn("写入缓存失败", "key", key, "request_id", requestIDFrom(r.Context()), "error", err)
		}
	}

	w.Header().Set("X-Cache", "MISS")
	h.writeRaw(w, http.StatusOK, data)
}

// audit 发送审计事件，失败只记录日志
func (h *Handler) audit(r *http.Request, eventType domain.AuditEventType, body []byte, data any) {
	event := audit.NewEvent(eventType, requestIDFrom(r.Context()), body, data)

	// 客户端断开连接不影响审计事件的发送
	if err := h.publisher.Publish(context.WithoutCancel(r.Context()), event); err != nil {
		slog.Warn("发送审计事件失败", "type", eventType, "request_id", event.RequestID, "error", err)
	}
}
