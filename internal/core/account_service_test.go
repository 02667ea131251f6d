package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/models"
)

// fakeUserRepo keeps profiles in memory.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	if u, ok := f.users[phone]; ok {
		return u, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *models.User) error {
	f.users[user.Phone] = user
	return nil
}

// fakeAddressRepo keeps address books in memory, preserving insert order.
type fakeAddressRepo struct {
	books  map[string][]*models.Address
	nextID int
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{books: make(map[string][]*models.Address)}
}

func (f *fakeAddressRepo) List(_ context.Context, phone string) ([]*models.Address, error) {
	return f.books[phone], nil
}

func (f *fakeAddressRepo) GetByID(_ context.Context, phone, addressID string) (*models.Address, error) {
	for _, a := range f.books[phone] {
		if a.ID == addressID {
			return a, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeAddressRepo) Create(_ context.Context, phone string, address *models.Address) (string, error) {
	f.nextID++
	address.ID = fmt.Sprintf("addr%d", f.nextID)
	f.books[phone] = append(f.books[phone], address)
	return address.ID, nil
}

func (f *fakeAddressRepo) Update(_ context.Context, phone string, address *models.Address) error {
	for i, a := range f.books[phone] {
		if a.ID == address.ID {
			f.books[phone][i] = address
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeAddressRepo) Delete(_ context.Context, phone, addressID string) error {
	book := f.books[phone]
	for i, a := range book {
		if a.ID == addressID {
			f.books[phone] = append(book[:i], book[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeAddressRepo) SetDefault(_ context.Context, phone, addressID string) error {
	found := false
	for _, a := range f.books[phone] {
		a.IsDefault = a.ID == addressID
		if a.IsDefault {
			found = true
		}
	}
	if !found {
		return db.ErrNotFound
	}
	return nil
}

func (f *fakeAddressRepo) Count(_ context.Context, phone string) (int, error) {
	return len(f.books[phone]), nil
}

func newTestAccountService() (AccountService, *fakeUserRepo, *fakeAddressRepo) {
	userRepo := newFakeUserRepo()
	addressRepo := newFakeAddressRepo()
	return NewAccountService(userRepo, addressRepo, zap.NewNop()), userRepo, addressRepo
}

func TestInitializeProfileIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestAccountService()
	ctx := context.Background()

	_, err := svc.InitializeProfile(ctx, "+911234567890", "Asha", "asha@example.com")
	require.NoError(t, err)
	_, err = svc.InitializeProfile(ctx, "+911234567890", "Asha", "asha@example.com")
	require.NoError(t, err)

	assert.Len(t, repo.users, 1)
	assert.Equal(t, "Asha", repo.users["+911234567890"].DisplayName)
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _, _ := newTestAccountService()

	_, err := svc.GetProfile(context.Background(), "+919999999999")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	svc, _, _ := newTestAccountService()

	address, err := svc.CreateAddress(context.Background(), "+911234567890", models.CreateAddressRequest{
		Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038",
	})
	require.NoError(t, err)
	assert.True(t, address.IsDefault)
}

func TestSecondAddressIsNotDefault(t *testing.T) {
	svc, _, _ := newTestAccountService()
	ctx := context.Background()
	phone := "+911234567890"

	_, err := svc.CreateAddress(ctx, phone, models.CreateAddressRequest{
		Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038",
	})
	require.NoError(t, err)

	second, err := svc.CreateAddress(ctx, phone, models.CreateAddressRequest{
		Street: "5th Cross", City: "Bengaluru", State: "Karnataka", Pincode: "560095",
	})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestExplicitDefaultDemotesPrevious(t *testing.T) {
	svc, _, repo := newTestAccountService()
	ctx := context.Background()
	phone := "+911234567890"

	first, err := svc.CreateAddress(ctx, phone, models.CreateAddressRequest{
		Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038",
	})
	require.NoError(t, err)

	second, err := svc.CreateAddress(ctx, phone, models.CreateAddressRequest{
		Street: "5th Cross", City: "Bengaluru", State: "Karnataka", Pincode: "560095", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	stored, err := repo.GetByID(ctx, phone, first.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsDefault)
}

func TestUpdateAddressAppliesOnlyProvidedFields(t *testing.T) {
	svc, _, _ := newTestAccountService()
	ctx := context.Background()
	phone := "+911234567890"

	created, err := svc.CreateAddress(ctx, phone, models.CreateAddressRequest{
		Door: "12A", Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038",
	})
	require.NoError(t, err)

	newPincode := "560095"
	updated, err := svc.UpdateAddress(ctx, phone, created.ID, models.UpdateAddressRequest{
		Pincode: &newPincode,
	})
	require.NoError(t, err)
	assert.Equal(t, "560095", updated.Pincode)
	assert.Equal(t, "12A", updated.Door, "unspecified fields are untouched")
	assert.Equal(t, "1st Main", updated.Street)
}

func TestDeleteDefaultPromotesRemaining(t *testing.T) {
	svc, _, repo := newTestAccountService()
	ctx := context.Background()
	phone := "+911234567890"

	first, err := svc.CreateAddress(ctx, phone, models.CreateAddressRequest{
		Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038",
	})
	require.NoError(t, err)
	second, err := svc.CreateAddress(ctx, phone, models.CreateAddressRequest{
		Street: "5th Cross", City: "Bengaluru", State: "Karnataka", Pincode: "560095",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAddress(ctx, phone, first.ID))

	stored, err := repo.GetByID(ctx, phone, second.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDefault)
}

func TestDeleteAddressNotFound(t *testing.T) {
	svc, _, _ := newTestAccountService()

	err := svc.DeleteAddress(context.Background(), "+911234567890", "missing")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestSetDefaultAddressNotFound(t *testing.T) {
	svc, _, _ := newTestAccountService()

	err := svc.SetDefaultAddress(context.Background(), "+911234567890", "missing")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}
