package handler

import (
	"time"

	"nestify/internal/model"
	"nestify/internal/query"
)

// UserResponse is the public view of a user. The password hash never leaves the server.
type UserResponse struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	Role                  string     `json:"role"`
	Age                   int        `json:"age"`
	Phone                 string     `json:"phone"`
	Location              string     `json:"location"`
	Photo                 string     `json:"photo"`
	Gender                string     `json:"gender"`
	IsAdmin               bool       `json:"isAdmin"`
	SubscriptionStatus    string     `json:"subscriptionStatus"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// OwnerSummary is the embedded owner of a listing or request.
type OwnerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Photo string `json:"photo"`
}

// UnknownOwner stands in for an owner whose account no longer exists.
var UnknownOwner = OwnerSummary{Name: "Unknown"}

// PropertyResponse is the public view of a listing.
type PropertyResponse struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	City         string       `json:"city"`
	Location     string       `json:"location"`
	Rent         float64      `json:"rent"`
	Deposit      float64      `json:"deposit"`
	Area         int          `json:"area"`
	PropertyType string       `json:"propertyType"`
	NoOfBedroom  int          `json:"noOfBedroom"`
	Bathrooms    int          `json:"bathrooms"`
	BHKType      string       `json:"bhkType"`
	Amenities    []string     `json:"amenities"`
	AllowBroker  bool         `json:"allowBroker"`
	ImageURLs    []string     `json:"imageUrls"`
	Status       string       `json:"status"`
	Views        int          `json:"views"`
	Owner        OwnerSummary `json:"owner"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// RoomRequestResponse is the public view of a roommate-wanted post.
type RoomRequestResponse struct {
	ID          string       `json:"id"`
	Location    string       `json:"location"`
	Budget      string       `json:"budget"`
	Description string       `json:"description"`
	User        OwnerSummary `json:"user"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse is returned after sign-up.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// AuthResponse is returned after login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserListResponse is one page of users.
type UserListResponse struct {
	Users      []UserResponse   `json:"users"`
	Pagination query.Pagination `json:"pagination"`
}

// PropertyListResponse is one page of listings.
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Pagination query.Pagination   `json:"pagination"`
}

// RoomRequestListResponse is one page of room requests.
type RoomRequestListResponse struct {
	RoomRequests []RoomRequestResponse `json:"roomRequests"`
	Pagination   query.Pagination      `json:"pagination"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:                    u.ID.String(),
		Name:                  u.Name,
		Email:                 u.Email,
		Role:                  string(u.Role),
		Age:                   u.Age,
		Phone:                 u.Phone,
		Location:              u.Location,
		Photo:                 u.Photo,
		Gender:                u.Gender,
		IsAdmin:               u.IsAdmin,
		SubscriptionStatus:    u.SubscriptionStatus,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func toUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return out
}

func toOwnerSummary(u *model.User) OwnerSummary {
	if u == nil {
		return UnknownOwner
	}
	return OwnerSummary{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Photo: u.Photo,
	}
}

// nonNil turns a missing list into an empty one so it renders as [].
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toPropertyResponse(p *model.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		City:         p.City,
		Location:     p.Location,
		Rent:         p.Rent.InexactFloat64(),
		Deposit:      p.Deposit.InexactFloat64(),
		Area:         p.Area,
		PropertyType: p.PropertyType,
		NoOfBedroom:  p.NoOfBedroom,
		Bathrooms:    p.Bathrooms,
		BHKType:      p.BHKType,
		Amenities:    nonNil(p.Amenities),
		AllowBroker:  p.AllowBroker,
		ImageURLs:    nonNil(p.ImageURLs),
		Status:       p.Status,
		Views:        p.Views,
		Owner:        toOwnerSummary(p.Owner),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toPropertyResponses(properties []model.Property) []PropertyResponse {
	out := make([]PropertyResponse, len(properties))
	for i := range properties {
		out[i] = toPropertyResponse(&properties[i])
	}
	return out
}

func toRoomRequestResponse(r *model.RoomRequest) RoomRequestResponse {
	return RoomRequestResponse{
		ID:          r.ID.String(),
		Location:    r.Location,
		Budget:      r.Budget,
		Description: r.Description,
		User:        toOwnerSummary(r.User),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRoomRequestResponses(reqs []model.RoomRequest) []RoomRequestResponse {
	out := make([]RoomRequestResponse, len(reqs))
	for i := range reqs {
		out[i] = toRoomRequestResponse(&reqs[i])
	}
	return out
}
