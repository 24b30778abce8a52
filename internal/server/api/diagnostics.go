package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service"
)

// SimulateError отвечает ошибкой с запрошенным статусом (401, 403, 404, 500).
//
// @Summary      Simulate an error
// @Tags         diagnostics
// @Produce      json
// @Param        status_code path string true "401, 403, 404 or 500"
// @Failure      400 {object} ErrorResponse "Invalid status code"
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/error/{status_code} [get]
func (h *Handler) SimulateError(w http.ResponseWriter, r *http.Request) {
	h.WriteError(w, r, h.Svc.Diagnostics.SimulateError(chi.URLParam(r, "status_code")))
}

// Sleep ждёт заданное число секунд и выполняет синтетическую нагрузку.
//
// tasks: 0 и 3 — только ожидание, 1 — поиск 1000-го простого числа,
// 2 — вставка 1000 фейковых курсов.
//
// @Summary      Simulate latency and load
// @Tags         diagnostics
// @Produce      json
// @Param        seconds query int true "0 <= seconds < 1000"
// @Param        tasks   query int true "0, 1, 2 or 3"
// @Success      200 {object} svcmodels.SleepResult
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "No users to own generated courses"
// @Router       /api/sleep [get]
func (h *Handler) Sleep(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seconds, task, err := service.ParseSleepParams(q.Get("seconds"), q.Get("tasks"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	h.Log.Info("sleeping", zap.Int("seconds", seconds), zap.Int("task", task))

	res, err := h.Svc.Diagnostics.Sleep(r.Context(), seconds, task)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}
