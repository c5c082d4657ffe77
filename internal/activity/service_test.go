package activity

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"activehub/internal/listing"
	"activehub/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Insert(ctx context.Context, entry Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, search, action string) ([]Log, error) {
	args := m.Called(ctx, search, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Log), args.Error(1)
}

func sampleLogs() []Log {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return []Log{
		{ID: 1, Admin: AdminRef{GymName: "Iron Temple"}, Action: "login", Timestamp: base},
		{ID: 2, Admin: AdminRef{GymName: "PumpHouse"}, Action: "password_reset", Timestamp: base.Add(time.Hour)},
		{ID: 3, Admin: AdminRef{GymName: "Anvil Gym"}, Action: "login", Timestamp: base.Add(2 * time.Hour)},
	}
}

func TestServiceRecord(t *testing.T) {
	t.Run("Successful record", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, listing.NewSnapshots())

		entry := Entry{AdminID: 1, Action: "login"}
		mockRepo.On("Insert", mock.Anything, entry).Return(nil)

		svc.Record(context.Background(), entry)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Insert failure does not panic", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, listing.NewSnapshots())

		mockRepo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("db down"))

		svc.Record(context.Background(), Entry{AdminID: 1, Action: "login"})
		mockRepo.AssertExpectations(t)
	})
}

func TestServiceList(t *testing.T) {
	t.Run("Default sort is timestamp descending", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, listing.NewSnapshots())

		mockRepo.On("List", mock.Anything, "", "").Return(sampleLogs(), nil)

		p := listing.Params{SortBy: "timestamp", SortDir: listing.Desc, Page: 1, PageSize: 10}
		res, err := svc.List(context.Background(), p)

		require.NoError(t, err)
		require.Len(t, res.Items, 3)
		assert.Equal(t, 3, res.Items[0].ID)
		assert.Equal(t, 1, res.Items[2].ID)
	})

	t.Run("Sort by gym name", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, listing.NewSnapshots())

		mockRepo.On("List", mock.Anything, "", "").Return(sampleLogs(), nil)

		p := listing.Params{SortBy: "gym", SortDir: listing.Asc, Page: 1, PageSize: 10}
		res, err := svc.List(context.Background(), p)

		require.NoError(t, err)
		assert.Equal(t, "Anvil Gym", res.Items[0].Admin.GymName)
		assert.Equal(t, "PumpHouse", res.Items[2].Admin.GymName)
	})

	t.Run("Search and action are pushed to the repository", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, listing.NewSnapshots())

		mockRepo.On("List", mock.Anything, "iron", "login").Return(sampleLogs()[:1], nil)

		p := listing.Params{
			Search:   "iron",
			SortBy:   "timestamp",
			SortDir:  listing.Desc,
			Page:     1,
			PageSize: 10,
			Filters:  map[string]string{"action": "login"},
		}
		res, err := svc.List(context.Background(), p)

		require.NoError(t, err)
		assert.Equal(t, 1, res.FilteredTotal)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Snapshot reused within TTL", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, listing.NewSnapshots())

		mockRepo.On("List", mock.Anything, "", "").Return(sampleLogs(), nil).Once()

		p := listing.Params{SortBy: "timestamp", SortDir: listing.Desc, Page: 1, PageSize: 10}
		_, err := svc.List(context.Background(), p)
		require.NoError(t, err)
		_, err = svc.List(context.Background(), p)
		require.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error propagates", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, listing.NewSnapshots())

		mockRepo.On("List", mock.Anything, "", "").Return(nil, errors.New("db down"))

		p := listing.Params{SortBy: "timestamp", SortDir: listing.Desc, Page: 1, PageSize: 10}
		_, err := svc.List(context.Background(), p)
		assert.Error(t, err)
	})
}
