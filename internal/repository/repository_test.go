package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nestify/internal/db"
	"nestify/internal/model"
	"nestify/internal/query"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func createUser(t *testing.T, repo UserRepository, name, email string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: email, PasswordHash: "hash", Phone: "+11234567890", Age: 30}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func createProperty(t *testing.T, repo PropertyRepository, owner uuid.UUID, title, city string, rent int64) *model.Property {
	t.Helper()
	p := &model.Property{
		Title:        title,
		City:         city,
		Location:     city + " center",
		Rent:         decimal.NewFromInt(rent),
		Area:         500,
		PropertyType: "Apartment",
		OwnerID:      owner,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	// Keep created_at strictly increasing so natural order is deterministic.
	time.Sleep(2 * time.Millisecond)
	return p
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	u := createUser(t, repo, "Ann", "a@x.com")
	assert.NotEqual(t, uuid.Nil, u.ID)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", byID.Name)
	assert.Equal(t, model.RoleUser, byID.Role)
	assert.Equal(t, model.SubscriptionInactive, byID.SubscriptionStatus)

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	createUser(t, repo, "Ann", "a@x.com")

	err := repo.Create(context.Background(), &model.User{Name: "Other", Email: "a@x.com", PasswordHash: "h"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestUserRepository_UpdateSelectedColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	u := createUser(t, repo, "Ann", "a@x.com")

	u.Name = "Annie"
	u.Phone = "should-not-be-written"
	require.NoError(t, repo.Update(ctx, u, "name"))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)
	assert.Equal(t, "+11234567890", got.Phone)

	ghost := &model.User{ID: uuid.New(), Name: "ghost"}
	assert.True(t, errors.Is(repo.Update(ctx, ghost, "name"), gorm.ErrRecordNotFound))
}

func TestUserRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := NewUserRepository(gdb)

	createUser(t, repo, "Ann", "ann@x.com")
	broker := createUser(t, repo, "Bob Broker", "bob@x.com")
	broker.Role = model.RoleBroker
	require.NoError(t, repo.Update(ctx, broker, "role"))
	admin := createUser(t, repo, "Cy", "cy@admin.com")
	admin.IsAdmin = true
	require.NoError(t, repo.Update(ctx, admin, "is_admin"))

	page := query.Page{Page: 1, Limit: 10}

	users, total, err := repo.List(ctx, UserFilter{Role: "broker"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob Broker", users[0].Name)

	yes := true
	users, total, err = repo.List(ctx, UserFilter{IsAdmin: &yes}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, admin.ID, users[0].ID)

	_, total, err = repo.List(ctx, UserFilter{Search: "X.COM"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	users, total, err = repo.List(ctx, UserFilter{}, query.Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 1)

	n, err := repo.Count(ctx, query.Equals("role", "broker"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	u := createUser(t, repo, "Ann", "a@x.com")

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.True(t, errors.Is(repo.Delete(ctx, u.ID), gorm.ErrRecordNotFound))
}

func TestPropertyRepository_AmenitiesRoundTrip(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	owner := createUser(t, NewUserRepository(gdb), "Ann", "a@x.com")
	repo := NewPropertyRepository(gdb)

	p := &model.Property{
		Title:        "Sunny flat",
		City:         "Pune",
		Location:     "Baner",
		Rent:         decimal.NewFromInt(1500),
		Area:         700,
		PropertyType: "Apartment",
		Amenities:    []string{"Wifi", "AC"},
		ImageURLs:    []string{"https://img/1.jpg", "https://img/2.jpg"},
		OwnerID:      owner.ID,
	}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wifi", "AC"}, []string(got.Amenities))
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, []string(got.ImageURLs))
	assert.True(t, decimal.NewFromInt(1500).Equal(got.Rent))
	assert.Equal(t, model.PropertyStatusActive, got.Status)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "Ann", got.Owner.Name)
}

func TestPropertyRepository_SearchIsLiteral(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	owner := createUser(t, NewUserRepository(gdb), "Ann", "a@x.com")
	repo := NewPropertyRepository(gdb)

	createProperty(t, repo, owner.ID, "Weird a.*b( name", "Pune", 1000)
	createProperty(t, repo, owner.ID, "axxb plain", "Pune", 1000)
	createProperty(t, repo, owner.ID, "100% furnished", "Delhi", 1000)
	createProperty(t, repo, owner.ID, "1000 furnished", "Delhi", 1000)

	page := query.Page{Page: 1, Limit: 10}

	props, total, err := repo.List(ctx, PropertyFilter{Search: "a.*b("}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, props, 1)
	assert.Equal(t, "Weird a.*b( name", props[0].Title)

	props, total, err = repo.List(ctx, PropertyFilter{Search: "100%"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "100% furnished", props[0].Title)

	_, total, err = repo.List(ctx, PropertyFilter{Search: "PUNE"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.List(ctx, PropertyFilter{Search: "_"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestPropertyRepository_PriceRangeAndSort(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	owner := createUser(t, NewUserRepository(gdb), "Ann", "a@x.com")
	repo := NewPropertyRepository(gdb)

	for _, rent := range []int64{500, 1000, 1500, 2000, 2500, 5000, 9000} {
		createProperty(t, repo, owner.ID, "p", "Pune", rent)
	}
	page := query.Page{Page: 1, Limit: 50}

	bounded, err := query.ParsePriceRange("1000-2000")
	require.NoError(t, err)
	props, total, err := repo.List(ctx, PropertyFilter{Price: bounded, Order: "rent ASC"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, p := range props {
		assert.True(t, bounded.Contains(p.Rent), p.Rent.String())
	}

	open, err := query.ParsePriceRange("5000+")
	require.NoError(t, err)
	props, _, err = repo.List(ctx, PropertyFilter{Price: open}, page)
	require.NoError(t, err)
	require.Len(t, props, 2)
	for _, p := range props {
		assert.True(t, p.Rent.GreaterThanOrEqual(decimal.NewFromInt(5000)))
	}

	order, err := query.PropertySorts.Order("price_desc")
	require.NoError(t, err)
	props, _, err = repo.List(ctx, PropertyFilter{Order: order}, page)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9000).Equal(props[0].Rent))
	assert.True(t, decimal.NewFromInt(500).Equal(props[len(props)-1].Rent))

	// Natural order is most recent first.
	props, _, err = repo.List(ctx, PropertyFilter{}, page)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9000).Equal(props[0].Rent))
}

func TestPropertyRepository_ViewsAndPopularSort(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	owner := createUser(t, NewUserRepository(gdb), "Ann", "a@x.com")
	repo := NewPropertyRepository(gdb)

	createProperty(t, repo, owner.ID, "quiet", "Pune", 1000)
	busy := createProperty(t, repo, owner.ID, "busy", "Pune", 1000)

	require.NoError(t, repo.IncrementViews(ctx, busy.ID))
	require.NoError(t, repo.IncrementViews(ctx, busy.ID))

	order, err := query.PropertySorts.Order("popular")
	require.NoError(t, err)
	props, _, err := repo.List(ctx, PropertyFilter{Order: order}, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "busy", props[0].Title)
	assert.Equal(t, 2, props[0].Views)
}

func TestPropertyRepository_OwnerMissingAfterUserDelete(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	owner := createUser(t, users, "Ann", "a@x.com")
	repo := NewPropertyRepository(gdb)
	p := createProperty(t, repo, owner.ID, "orphan", "Pune", 1000)

	require.NoError(t, users.Delete(ctx, owner.ID))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Owner)
}

func TestPropertyRepository_FilterByOwnerAndType(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	ann := createUser(t, users, "Ann", "a@x.com")
	bob := createUser(t, users, "Bob", "b@x.com")
	repo := NewPropertyRepository(gdb)

	createProperty(t, repo, ann.ID, "a1", "Pune", 1000)
	createProperty(t, repo, ann.ID, "a2", "pune", 1000)
	villa := &model.Property{Title: "b1", City: "Goa", Location: "Beach", Rent: decimal.NewFromInt(9000), Area: 2000, PropertyType: "Villa", OwnerID: bob.ID}
	require.NoError(t, repo.Create(ctx, villa))

	page := query.Page{Page: 1, Limit: 10}
	_, total, err := repo.List(ctx, PropertyFilter{OwnerID: &ann.ID}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.List(ctx, PropertyFilter{City: "PUNE"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	props, total, err := repo.List(ctx, PropertyFilter{PropertyType: "Villa"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "b1", props[0].Title)
}

func TestPropertyRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	owner := createUser(t, NewUserRepository(gdb), "Ann", "a@x.com")
	repo := NewPropertyRepository(gdb)
	p := createProperty(t, repo, owner.ID, "old", "Pune", 1000)

	p.Title = "new"
	p.Amenities = []string{"Parking"}
	require.NoError(t, repo.Update(ctx, p, "title", "amenities"))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, []string{"Parking"}, []string(got.Amenities))

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.FindByID(ctx, p.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRoomRequestRepository(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	ann := createUser(t, users, "Ann", "a@x.com")
	bob := createUser(t, users, "Bob", "b@x.com")
	repo := NewRoomRequestRepository(gdb)

	r1 := &model.RoomRequest{UserID: ann.ID, Location: "Koramangala", Budget: "12000"}
	require.NoError(t, repo.Create(ctx, r1))
	require.NoError(t, repo.Create(ctx, &model.RoomRequest{UserID: bob.ID, Location: "Indiranagar", Budget: "9000"}))

	got, err := repo.FindByID(ctx, r1.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "Ann", got.User.Name)

	page := query.Page{Page: 1, Limit: 10}
	reqs, total, err := repo.List(ctx, RoomRequestFilter{UserID: &bob.ID}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Indiranagar", reqs[0].Location)

	_, total, err = repo.List(ctx, RoomRequestFilter{Search: "kora"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	r1.Budget = "15000"
	require.NoError(t, repo.Update(ctx, r1, "budget"))
	got, err = repo.FindByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, "15000", got.Budget)

	require.NoError(t, repo.Delete(ctx, r1.ID))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
