package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-connect/internal/domain"
)

func TestDonor_Availability(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	daysAgo := func(n int) *time.Time {
		v := now.AddDate(0, 0, -n)
		return &v
	}
	yes, no := true, false

	tests := []struct {
		name  string
		donor domain.Donor
		want  bool
	}{
		{"Never donated", domain.Donor{Gender: "male"}, false},
		{"Male inside cooldown", domain.Donor{Gender: "male", LastDonation: daysAgo(89)}, false},
		{"Male at cooldown boundary", domain.Donor{Gender: "male", LastDonation: daysAgo(90)}, true},
		{"Female after male cooldown", domain.Donor{Gender: "Female", LastDonation: daysAgo(120)}, false},
		{"Female after own cooldown", domain.Donor{Gender: "female", LastDonation: daysAgo(180)}, true},
		{"Manual flag wins over dates", domain.Donor{Gender: "male", LastDonation: daysAgo(5), IsAvailable: &yes}, true},
		{"Manual false wins over dates", domain.Donor{Gender: "male", LastDonation: daysAgo(400), IsAvailable: &no}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.donor.GetAvailability(now))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	_, err = domain.ParseDate("2024-01-15T08:30:00Z")
	assert.NoError(t, err)

	_, err = domain.ParseDate("15/01/2024")
	assert.Error(t, err)

	empty, err := domain.ParseOptionalDate("  ")
	assert.NoError(t, err)
	assert.Nil(t, empty)
}

func TestPagination(t *testing.T) {
	p := domain.PaginationParams{Page: 0, PageSize: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	resp := domain.NewPaginatedResponse[int](nil, 2, 10, 25)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.NotNil(t, resp.Data)
}

func TestAcceptRequestInput_Acceptor(t *testing.T) {
	assert.Equal(t, "Rahim", domain.AcceptRequestInput{DonorID: "d-1", DonorName: " Rahim "}.Acceptor())
	assert.Equal(t, "d-1", domain.AcceptRequestInput{DonorID: "d-1"}.Acceptor())
	assert.Equal(t, domain.AnonymousAcceptor, domain.AcceptRequestInput{}.Acceptor())
}

func TestRequestStatus_IsValid(t *testing.T) {
	assert.True(t, domain.StatusPending.IsValid())
	assert.True(t, domain.StatusCompleted.IsValid())
	assert.False(t, domain.RequestStatus("cancelled").IsValid())
}
