package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/payload"
)

const (
	CodeInvalidInput     = "invalid_input"
	CodeComputationFault = "computation_fault"
	CodeInternalError    = "internal_error"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "request_id", requestIDFrom(r.Context()), "error", err)
}

// readJSON 读取并严格解析请求体，返回原始字节用于缓存和审计
func (h *Handler) readJSON(r *http.Request, v any) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, domain.NewInputError("body", "请求体超过 %d 字节", maxBytesErr.Limit)
		}
		return nil, domain.NewInputError("body", "无法读取请求体: %v", err)
	}

	if err := payload.Decode(bytes.NewReader(body), v); err != nil {
		return nil, err
	}
	return body, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "服务器内部错误", http.StatusInternalServerError)
	}
}

// writeRaw 写入已经序列化好的结果，缓存命中与否返回的字节完全一致
func (h *Handler) writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	err = payload.Translate(err, h.translator)

	h.writeJSON(w, r, http.StatusBadRequest, Response{
		Success: false,
		Message: err.Error(),
		Code:    CodeInvalidInput,
	})
}

func (h *Handler) computationFault(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "计算过程出现内部错误",
		Code:    CodeComputationFault,
	})
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "服务器内部错误",
		Code:    CodeInternalError,
	})
}

// computeError 根据错误类型选择响应
func (h *Handler) computeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsInputError(err):
		h.badRequest(w, r, err)
	case errors.Is(err, domain.ErrComputationFault):
		h.computationFault(w, r, err)
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}
