package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/skillhub/internal/executor"
)

// ExecuteHandler runs playground code submissions. The executor is nil
// when Docker was unavailable at startup; the endpoint then reports 503
// instead of taking the server down with it.
type ExecuteHandler struct {
	exec   executor.Executor
	logger *slog.Logger
}

// NewExecuteHandler creates an ExecuteHandler. exec may be nil.
func NewExecuteHandler(exec executor.Executor, logger *slog.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		exec:   exec,
		logger: logger,
	}
}

type executeRequest struct {
	Language string `json:"language"`
	Code     string `json:"code" validate:"required"`
}

// HandleExecute runs one playground submission in the sandbox.
//
// HTTP: POST /api/playground/execute
func (h *ExecuteHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	if h.exec == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Message: "code execution is not available"})
		return
	}

	var req executeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.logger.Info("executing playground code", slog.String("language", req.Language))

	result, err := h.exec.Execute(r.Context(), executor.ExecutionRequest{
		Language: req.Language,
		Code:     req.Code,
	})
	if err != nil {
		if errors.Is(err, executor.ErrUnsupportedLanguage) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "unsupported language"})
			return
		}
		h.logger.Error("code execution failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "execution failed"})
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"result": result})
}
