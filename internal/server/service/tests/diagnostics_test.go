package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service/mocks"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/workload"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

func newDiagnostics(t *testing.T) (*service.DiagnosticsService, *mocks.MockUsersRepo, *mocks.MockCoursesRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	courses := mocks.NewMockCoursesRepo(ctrl)

	seeder := service.NewSeeder(users, courses, workload.NewCourseGenerator(1))
	svc := service.NewDiagnosticsService(workload.NewPool(1), seeder, config.WorkloadConfig{
		CPUWorkers: 1,
		SeedCount:  1000,
		PrimeN:     1000,
	})
	return svc, users, courses
}

func TestDiagnosticsService_SimulateError(t *testing.T) {
	svc, _, _ := newDiagnostics(t)

	tests := []struct {
		code    string
		status  int
		message string
	}{
		{"401", 401, "Unauthorized access"},
		{"403", 403, "Forbidden access"},
		{"404", 404, "Resource not found"},
		{"500", 500, "Internal server error"},
		{"418", 400, "Invalid status code. Use 401, 403, 404, or 500."},
		{"abc", 400, "Invalid status code. Use 401, 403, 404, or 500."},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := svc.SimulateError(tt.code)
			require.Error(t, err)
			require.Equal(t, tt.status, serr.StatusOf(err))
			require.Equal(t, tt.message, serr.PublicMessage(err))
		})
	}
}

func TestParseSleepParams(t *testing.T) {
	tests := []struct {
		seconds, tasks string
		wantErr        error
	}{
		{"0", "0", nil},
		{"999", "3", nil},
		{"1000", "0", service.ErrInvalidSeconds},
		{"-1", "0", service.ErrInvalidSeconds},
		{"", "0", service.ErrInvalidSeconds},
		{"1.5", "0", service.ErrInvalidSeconds},
		{"1", "4", service.ErrInvalidTasks},
		{"1", "-1", service.ErrInvalidTasks},
		{"1", "", service.ErrInvalidTasks},
	}

	for _, tt := range tests {
		_, _, err := service.ParseSleepParams(tt.seconds, tt.tasks)
		if tt.wantErr == nil {
			require.NoError(t, err, "seconds=%q tasks=%q", tt.seconds, tt.tasks)
			continue
		}
		require.ErrorIs(t, err, tt.wantErr, "seconds=%q tasks=%q", tt.seconds, tt.tasks)
		require.Equal(t, 400, serr.StatusOf(err))
	}
}

func TestDiagnosticsService_Sleep_WaitsAtLeastSeconds(t *testing.T) {
	svc, _, _ := newDiagnostics(t)

	start := time.Now()
	res, err := svc.Sleep(context.Background(), 1, service.TaskNone)
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), time.Second)
	require.Equal(t, "Slept for 1 seconds", res.Message)
}

func TestDiagnosticsService_Sleep_CPUTask(t *testing.T) {
	svc, _, _ := newDiagnostics(t)

	res, err := svc.Sleep(context.Background(), 0, service.TaskCPU)
	require.NoError(t, err)
	require.Equal(t, "Slept for 0 seconds | 1000th prime is 7919", res.Message)
}

func TestDiagnosticsService_Sleep_DBTask(t *testing.T) {
	ctx := context.Background()
	svc, users, courses := newDiagnostics(t)

	users.EXPECT().ListIDs(ctx).Return([]int64{1, 2}, nil)
	courses.EXPECT().
		BulkCreate(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, cs []models.Course) (int, error) {
			require.Len(t, cs, 1000)
			return len(cs), nil
		})

	res, err := svc.Sleep(ctx, 0, service.TaskDB)
	require.NoError(t, err)
	require.Equal(t, "Slept for 0 seconds | 1000 dummy courses inserted successfully!", res.Message)
}

// без пользователей вставка не выполняется
func TestDiagnosticsService_Sleep_DBTask_NoUsers(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newDiagnostics(t)

	users.EXPECT().ListIDs(ctx).Return(nil, nil)

	_, err := svc.Sleep(ctx, 0, service.TaskDB)
	require.ErrorIs(t, err, serr.ErrNoUsers)
}

func TestDiagnosticsService_Sleep_Cancelled(t *testing.T) {
	svc, _, _ := newDiagnostics(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Sleep(ctx, 5, service.TaskNone)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 5*time.Second)
}
