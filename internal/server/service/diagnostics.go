package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/config"
	svcmodels "github.com/IvanChernomyrdin/go-courses-api/internal/server/service/models"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/workload"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// Задачи, которые /api/sleep выполняет после паузы.
const (
	TaskNone = 0
	TaskCPU  = 1
	TaskDB   = 2
	TaskIdle = 3
)

const maxSleepSeconds = 1000

var (
	ErrInvalidSeconds = &serr.HTTPError{Status: http.StatusBadRequest, Message: "Seconds must be an integer < 1000", Kind: serr.ErrInvalidInput}
	ErrInvalidTasks   = &serr.HTTPError{Status: http.StatusBadRequest, Message: "Tasks must be an integer (0, 1, 2, or 3)", Kind: serr.ErrInvalidInput}
	ErrInvalidStatus  = &serr.HTTPError{Status: http.StatusBadRequest, Message: "Invalid status code. Use 401, 403, 404, or 500.", Kind: serr.ErrInvalidInput}
)

// simulatedErrors — коды, которые умеет воспроизводить /api/error/{status_code}.
var simulatedErrors = map[int]*serr.HTTPError{
	http.StatusUnauthorized:        {Status: http.StatusUnauthorized, Message: "Unauthorized access", Kind: serr.ErrUnauthorized},
	http.StatusForbidden:           {Status: http.StatusForbidden, Message: "Forbidden access", Kind: serr.ErrForbidden},
	http.StatusNotFound:            {Status: http.StatusNotFound, Message: "Resource not found", Kind: serr.ErrNotFound},
	http.StatusInternalServerError: {Status: http.StatusInternalServerError, Message: "Internal server error", Kind: serr.ErrExpectedError},
}

// DiagnosticsService реализует диагностические эндпоинты: имитацию ошибок и нагрузку.
type DiagnosticsService struct {
	pool   *workload.Pool
	seeder *Seeder
	primeN int
	seedN  int
}

func NewDiagnosticsService(pool *workload.Pool, seeder *Seeder, cfg config.WorkloadConfig) *DiagnosticsService {
	if pool == nil {
		pool = workload.NewPool(cfg.CPUWorkers)
	}
	return &DiagnosticsService{
		pool:   pool,
		seeder: seeder,
		primeN: cfg.PrimeN,
		seedN:  cfg.SeedCount,
	}
}

// SimulateError всегда возвращает ошибку: одну из заданного набора
// или ErrInvalidStatus для остальных кодов.
func (s *DiagnosticsService) SimulateError(statusCode string) error {
	code, err := strconv.Atoi(statusCode)
	if err != nil {
		return ErrInvalidStatus
	}
	if e, ok := simulatedErrors[code]; ok {
		return e
	}
	return ErrInvalidStatus
}

// ParseSleepParams разбирает параметры запроса /api/sleep.
func ParseSleepParams(seconds, tasks string) (int, int, error) {
	sec, err := strconv.Atoi(strings.TrimSpace(seconds))
	if err != nil || sec < 0 || sec >= maxSleepSeconds {
		return 0, 0, ErrInvalidSeconds
	}
	task, err := strconv.Atoi(strings.TrimSpace(tasks))
	if err != nil || task < TaskNone || task > TaskIdle {
		return 0, 0, ErrInvalidTasks
	}
	return sec, task, nil
}

// Sleep ждёт seconds секунд, затем выполняет задачу task.
//
// Если клиент ушёл (ctx отменён), ожидание прерывается и возвращается ctx.Err().
func (s *DiagnosticsService) Sleep(ctx context.Context, seconds, task int) (svcmodels.SleepResult, error) {
	timer := time.NewTimer(time.Duration(seconds) * time.Second)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return svcmodels.SleepResult{}, ctx.Err()
	}

	msg := fmt.Sprintf("Slept for %d seconds", seconds)

	switch task {
	case TaskCPU:
		var prime int
		err := s.pool.Do(ctx, func() error {
			prime = workload.FindNthPrime(s.primeN)
			return nil
		})
		if err != nil {
			return svcmodels.SleepResult{}, err
		}
		msg += fmt.Sprintf(" | %s prime is %d", ordinal(s.primeN), prime)
	case TaskDB:
		n, err := s.seeder.SeedCourses(ctx, s.seedN)
		if err != nil {
			return svcmodels.SleepResult{}, err
		}
		msg += fmt.Sprintf(" | %d dummy courses inserted successfully!", n)
	}

	return svcmodels.SleepResult{Message: msg}, nil
}

// ordinal: 1 -> 1st, 2 -> 2nd, 1000 -> 1000th.
func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
