package owner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"activehub/internal/listing"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListGyms(ctx context.Context, search string) ([]Gym, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Gym), args.Error(1)
}

func sampleGyms(n int) []Gym {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	statuses := []string{StatusActive, StatusTrial, StatusExpired}
	gyms := make([]Gym, 0, n)
	for i := 0; i < n; i++ {
		gyms = append(gyms, Gym{
			ID:           i + 1,
			Name:         fmt.Sprintf("Gym %02d", i),
			Email:        fmt.Sprintf("gym%02d@example.com", i),
			CreatedAt:    base.Add(time.Duration(i) * 24 * time.Hour),
			TotalRevenue: float64(100 * (i + 1)),
			Subscription: Subscription{
				Status:      statuses[i%len(statuses)],
				MemberCount: 10 + i,
			},
		})
	}
	return gyms
}

func newService(repo Repository) Service {
	return NewService(repo, listing.NewSnapshots())
}

func TestListGyms(t *testing.T) {
	t.Run("12 gyms paginate as 10 plus 2", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newService(mockRepo)

		mockRepo.On("ListGyms", mock.Anything, "").Return(sampleGyms(12), nil)

		page1, err := svc.ListGyms(context.Background(), listing.Params{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Len(t, page1.Items, 10)
		assert.Equal(t, 2, page1.TotalPages)

		page2, err := svc.ListGyms(context.Background(), listing.Params{Page: 2, PageSize: 10})
		require.NoError(t, err)
		assert.Len(t, page2.Items, 2)
	})

	t.Run("Status filter applied in memory", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newService(mockRepo)

		mockRepo.On("ListGyms", mock.Anything, "").Return(sampleGyms(12), nil)

		res, err := svc.ListGyms(context.Background(), listing.Params{
			Page:     1,
			PageSize: 10,
			Filters:  map[string]string{"status": StatusActive},
		})
		require.NoError(t, err)

		assert.Equal(t, 12, res.Total)
		assert.Equal(t, 4, res.FilteredTotal)
		for _, g := range res.Items {
			assert.Equal(t, StatusActive, g.Subscription.Status)
		}
	})

	t.Run("Search term goes to the repository", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newService(mockRepo)

		mockRepo.On("ListGyms", mock.Anything, "iron").Return(sampleGyms(2), nil)

		_, err := svc.ListGyms(context.Background(), listing.Params{Search: "iron", Page: 1, PageSize: 10})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Sort by revenue descending", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newService(mockRepo)

		mockRepo.On("ListGyms", mock.Anything, "").Return(sampleGyms(5), nil)

		res, err := svc.ListGyms(context.Background(), listing.Params{
			SortBy: "totalRevenue", SortDir: listing.Desc, Page: 1, PageSize: 10,
		})
		require.NoError(t, err)
		require.Len(t, res.Items, 5)
		assert.Equal(t, float64(500), res.Items[0].TotalRevenue)
		assert.Equal(t, float64(100), res.Items[4].TotalRevenue)
	})

	t.Run("Distinct search terms have distinct snapshots", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newService(mockRepo)

		mockRepo.On("ListGyms", mock.Anything, "").Return(sampleGyms(3), nil).Once()
		mockRepo.On("ListGyms", mock.Anything, "pump").Return(sampleGyms(1), nil).Once()

		_, err := svc.ListGyms(context.Background(), listing.Params{Page: 1, PageSize: 10})
		require.NoError(t, err)
		_, err = svc.ListGyms(context.Background(), listing.Params{Search: "pump", Page: 1, PageSize: 10})
		require.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error propagates", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newService(mockRepo)

		mockRepo.On("ListGyms", mock.Anything, "").Return(nil, errors.New("db down"))

		_, err := svc.ListGyms(context.Background(), listing.Params{Page: 1, PageSize: 10})
		assert.Error(t, err)
	})
}

func TestAnalytics(t *testing.T) {
	t.Run("Counts and sums", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newService(mockRepo)

		mockRepo.On("ListGyms", mock.Anything, "").Return(sampleGyms(6), nil)

		stats, err := svc.Analytics(context.Background(), time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, 6, stats.TotalGyms)
		assert.Equal(t, 2, stats.ActiveSubscriptions)
		assert.Equal(t, 2, stats.TrialGyms)
		assert.Equal(t, 2, stats.ExpiredGyms)
		assert.Equal(t, float64(100+200+300+400+500+600), stats.TotalRevenue)
		assert.Equal(t, 10+11+12+13+14+15, stats.TotalMembers)
	})

	t.Run("Growth compares against gyms existing before this month", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newService(mockRepo)

		// Four old gyms, one created mid-June.
		gyms := sampleGyms(4)
		gyms = append(gyms, Gym{
			ID:        5,
			Name:      "New Gym",
			CreatedAt: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		})
		mockRepo.On("ListGyms", mock.Anything, "").Return(gyms, nil)

		stats, err := svc.Analytics(context.Background(), time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.InDelta(t, 25.0, stats.GymGrowthPct, 0.001)
	})

	t.Run("No previous gyms means zero growth", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newService(mockRepo)

		gyms := []Gym{{ID: 1, CreatedAt: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)}}
		mockRepo.On("ListGyms", mock.Anything, "").Return(gyms, nil)

		stats, err := svc.Analytics(context.Background(), time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, float64(0), stats.GymGrowthPct)
	})
}
