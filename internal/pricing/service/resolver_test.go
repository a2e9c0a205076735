package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FindActiveAssignment(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*pricingdomain.ProfileAssignment, error) {
	args := m.Called(ctx, db, userID)
	a, _ := args.Get(0).(*pricingdomain.ProfileAssignment)
	return a, args.Error(1)
}

func (m *mockRepo) FindProfileByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*pricingdomain.PricingProfile, error) {
	args := m.Called(ctx, db, id)
	p, _ := args.Get(0).(*pricingdomain.PricingProfile)
	return p, args.Error(1)
}

func (m *mockRepo) FindProfileByName(ctx context.Context, db *gorm.DB, name string) (*pricingdomain.PricingProfile, error) {
	args := m.Called(ctx, db, name)
	p, _ := args.Get(0).(*pricingdomain.PricingProfile)
	return p, args.Error(1)
}

func (m *mockRepo) FindAnyActiveProfile(ctx context.Context, db *gorm.DB) (*pricingdomain.PricingProfile, error) {
	args := m.Called(ctx, db)
	p, _ := args.Get(0).(*pricingdomain.PricingProfile)
	return p, args.Error(1)
}

func (m *mockRepo) ListProfiles(ctx context.Context, db *gorm.DB) ([]pricingdomain.PricingProfile, error) {
	args := m.Called(ctx, db)
	p, _ := args.Get(0).([]pricingdomain.PricingProfile)
	return p, args.Error(1)
}

func (m *mockRepo) ListTiers(ctx context.Context, db *gorm.DB, profileID snowflake.ID) ([]pricingdomain.PricingTier, error) {
	args := m.Called(ctx, db, profileID)
	tiers, _ := args.Get(0).([]pricingdomain.PricingTier)
	return tiers, args.Error(1)
}

func newResolver(repo pricingdomain.Repository) *Service {
	return &Service{
		db:   &gorm.DB{},
		log:  zap.NewNop(),
		repo: repo,
	}
}

func TestResolveProfileUsesActiveAssignment(t *testing.T) {
	repo := new(mockRepo)
	userID := snowflake.ID(42)
	profileID := snowflake.ID(7)
	perGB := dec("1.25")

	repo.On("FindActiveAssignment", mock.Anything, mock.Anything, userID).
		Return(&pricingdomain.ProfileAssignment{UserID: userID, ProfileID: profileID, IsActive: true}, nil).Once()
	repo.On("FindProfileByID", mock.Anything, mock.Anything, profileID).
		Return(&pricingdomain.PricingProfile{
			ID:            profileID,
			Name:          "Premium",
			MinimumCharge: dec("20"),
			IsActive:      true,
			IsTiered:      false, // legacy row, must be normalized
			PricePerGB:    &perGB,
		}, nil).Once()

	profile := newResolver(repo).ResolveProfile(context.Background(), userID)

	require.NotNil(t, profile)
	assert.Equal(t, "Premium", profile.Name)
	assert.True(t, profile.IsTiered, "resolver must force tiered mode")
	assert.Nil(t, profile.PricePerGB, "formula pricing must not leak past the resolver")
	repo.AssertExpectations(t)
}

func TestResolveProfileFallsBackToStandard(t *testing.T) {
	repo := new(mockRepo)
	userID := snowflake.ID(42)

	repo.On("FindActiveAssignment", mock.Anything, mock.Anything, userID).
		Return(nil, nil).Once()
	repo.On("FindProfileByName", mock.Anything, mock.Anything, pricingdomain.StandardProfileName).
		Return(&pricingdomain.PricingProfile{ID: 3, Name: pricingdomain.StandardProfileName, IsActive: true, IsTiered: true, MinimumCharge: dec("10")}, nil).Once()

	profile := newResolver(repo).ResolveProfile(context.Background(), userID)

	require.NotNil(t, profile)
	assert.Equal(t, pricingdomain.StandardProfileName, profile.Name)
	repo.AssertExpectations(t)
}

func TestResolveProfileSkipsInactiveAssignedProfile(t *testing.T) {
	repo := new(mockRepo)
	userID := snowflake.ID(42)
	profileID := snowflake.ID(7)

	repo.On("FindActiveAssignment", mock.Anything, mock.Anything, userID).
		Return(&pricingdomain.ProfileAssignment{UserID: userID, ProfileID: profileID, IsActive: true}, nil).Once()
	repo.On("FindProfileByID", mock.Anything, mock.Anything, profileID).
		Return(&pricingdomain.PricingProfile{ID: profileID, Name: "Retired", IsActive: false}, nil).Once()
	repo.On("FindProfileByName", mock.Anything, mock.Anything, pricingdomain.StandardProfileName).
		Return(&pricingdomain.PricingProfile{ID: 3, Name: pricingdomain.StandardProfileName, IsActive: true, MinimumCharge: dec("10")}, nil).Once()

	profile := newResolver(repo).ResolveProfile(context.Background(), userID)

	require.NotNil(t, profile)
	assert.Equal(t, pricingdomain.StandardProfileName, profile.Name)
	repo.AssertExpectations(t)
}

func TestResolveProfileFallsBackToAnyActive(t *testing.T) {
	repo := new(mockRepo)
	userID := snowflake.ID(42)

	repo.On("FindActiveAssignment", mock.Anything, mock.Anything, userID).
		Return(nil, nil).Once()
	repo.On("FindProfileByName", mock.Anything, mock.Anything, pricingdomain.StandardProfileName).
		Return(nil, nil).Once()
	repo.On("FindAnyActiveProfile", mock.Anything, mock.Anything).
		Return(&pricingdomain.PricingProfile{ID: 9, Name: "Reseller", IsActive: true, MinimumCharge: dec("5")}, nil).Once()

	profile := newResolver(repo).ResolveProfile(context.Background(), userID)

	require.NotNil(t, profile)
	assert.Equal(t, "Reseller", profile.Name)
	repo.AssertExpectations(t)
}

func TestResolveProfileTerminatesAtBuiltInDefault(t *testing.T) {
	repo := new(mockRepo)
	userID := snowflake.ID(42)

	repo.On("FindActiveAssignment", mock.Anything, mock.Anything, userID).
		Return(nil, nil).Once()
	repo.On("FindProfileByName", mock.Anything, mock.Anything, pricingdomain.StandardProfileName).
		Return(nil, nil).Once()
	repo.On("FindAnyActiveProfile", mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	profile := newResolver(repo).ResolveProfile(context.Background(), userID)

	require.NotNil(t, profile)
	assert.Equal(t, pricingdomain.DefaultProfileName, profile.Name)
	assert.True(t, profile.MinimumCharge.Equal(dec("10")))
	require.Len(t, profile.Tiers, 4)
	assert.True(t, profile.Tiers[3].Price.Equal(dec("50")))
	repo.AssertExpectations(t)
}

func TestResolveProfileUnknownUserSkipsAssignmentLookup(t *testing.T) {
	repo := new(mockRepo)

	repo.On("FindProfileByName", mock.Anything, mock.Anything, pricingdomain.StandardProfileName).
		Return(&pricingdomain.PricingProfile{ID: 3, Name: pricingdomain.StandardProfileName, IsActive: true, MinimumCharge: dec("10")}, nil).Once()

	profile := newResolver(repo).ResolveProfile(context.Background(), 0)

	require.NotNil(t, profile)
	assert.Equal(t, pricingdomain.StandardProfileName, profile.Name)
	repo.AssertNotCalled(t, "FindActiveAssignment", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestResolveProfileLookupErrorsFallThrough(t *testing.T) {
	repo := new(mockRepo)
	userID := snowflake.ID(42)
	boom := errors.New("connection refused")

	repo.On("FindActiveAssignment", mock.Anything, mock.Anything, userID).
		Return(nil, boom).Once()
	repo.On("FindProfileByName", mock.Anything, mock.Anything, pricingdomain.StandardProfileName).
		Return(nil, boom).Once()
	repo.On("FindAnyActiveProfile", mock.Anything, mock.Anything).
		Return(nil, boom).Once()

	profile := newResolver(repo).ResolveProfile(context.Background(), userID)

	require.NotNil(t, profile)
	assert.Equal(t, pricingdomain.DefaultProfileName, profile.Name)
	repo.AssertExpectations(t)
}

func TestGetTiersBuiltInDefaultProfile(t *testing.T) {
	repo := new(mockRepo)

	tiers, err := newResolver(repo).GetTiers(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, tiers, 4)
	assert.True(t, tiers[0].AllocationGB.Equal(dec("1")))
	repo.AssertNotCalled(t, "ListTiers", mock.Anything, mock.Anything, mock.Anything)
}
