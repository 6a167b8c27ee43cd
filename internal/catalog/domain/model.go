package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- Reservation Status Enum ---

// ReservationStatus represents the lifecycle status of a reservation.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// IsValid checks if the ReservationStatus is one of the defined constants.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

const (
	MinGuests = 1
	MaxGuests = 10
)

// --- User Entity ---

// User is the fabricated session identity. There is no credential store
// behind it; it exists only for attribution of listings, reviews and
// reservations.
type User struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	SavedProperties []string `json:"savedProperties,omitempty"`
}

// HasSaved reports whether the user bookmarked the given property.
func (u *User) HasSaved(propertyID string) bool {
	for _, id := range u.SavedProperties {
		if id == propertyID {
			return true
		}
	}
	return false
}

// --- Review Entity ---

// Review is a user-submitted rating with a comment. Immutable once created.
type Review struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Rating   int32     `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

// NewReview creates a new review instance.
func NewReview(reviewer *User, rating int32, comment string) (*Review, error) {
	if reviewer == nil || reviewer.ID == "" {
		return nil, fmt.Errorf("%w: reviewer is required", ErrInvalidInput)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	if strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrInvalidInput)
	}
	return &Review{
		ID:       uuid.New().String(),
		UserID:   reviewer.ID,
		UserName: reviewer.Name,
		Rating:   rating,
		Comment:  comment,
		Date:     time.Now().UTC(),
	}, nil
}

// --- Property Entity ---

// Property is a rentable listing. Seed properties are compiled in and never
// persisted until first mutated; user-submitted properties live in the store.
type Property struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Location string   `json:"location"`
	Price    float64  `json:"price"`
	Image    string   `json:"image"`
	Rating   float64  `json:"rating"`
	Reviews  []Review `json:"reviews"`
}

// NewProperty creates a new listing with no reviews and a zero rating.
func NewProperty(title, location string, price float64, image string) (*Property, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: location cannot be empty", ErrInvalidInput)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if image == "" {
		return nil, fmt.Errorf("%w: listing media is required", ErrInvalidInput)
	}
	return &Property{
		ID:       uuid.New().String(),
		Title:    title,
		Location: location,
		Price:    price,
		Image:    image,
		Rating:   0,
		Reviews:  []Review{},
	}, nil
}

// AddReview appends a review and updates the aggregate rating with the
// rolling-mean formula, using the prior mean and count instead of rescanning
// the review history.
func (p *Property) AddReview(review Review) {
	n := float64(len(p.Reviews))
	p.Rating = (p.Rating*n + float64(review.Rating)) / (n + 1)
	p.Reviews = append(p.Reviews, review)
}

// Matches reports whether the listing's title or location contains the query
// as a case-insensitive substring. An empty query matches everything.
func (p *Property) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Location), q)
}

// --- Reservation Entity ---

// Reservation is a simulated booking. It is created with status "pending"
// and no operation transitions it further.
type Reservation struct {
	ID         string            `json:"id"`
	PropertyID string            `json:"propertyId"`
	UserID     string            `json:"userId"`
	UserName   string            `json:"userName"`
	CheckIn    time.Time         `json:"checkIn"`
	CheckOut   time.Time         `json:"checkOut"`
	Guests     int               `json:"guests"`
	TotalPrice float64           `json:"totalPrice"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Nights returns the stay length in nights, rounding partial days up.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// NewReservation creates a pending reservation with the derived total price.
func NewReservation(property *Property, renter *User, checkIn, checkOut time.Time, guests int) (*Reservation, error) {
	if property == nil || property.ID == "" {
		return nil, fmt.Errorf("%w: property is required", ErrInvalidInput)
	}
	if renter == nil || renter.ID == "" {
		return nil, fmt.Errorf("%w: renter is required", ErrInvalidInput)
	}
	if guests < MinGuests || guests > MaxGuests {
		return nil, fmt.Errorf("%w: guests must be between %d and %d", ErrInvalidInput, MinGuests, MaxGuests)
	}
	nights := Nights(checkIn, checkOut)
	if nights < 1 {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidInput)
	}
	return &Reservation{
		ID:         uuid.New().String(),
		PropertyID: property.ID,
		UserID:     renter.ID,
		UserName:   renter.Name,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     guests,
		TotalPrice: property.Price * float64(nights),
		Status:     ReservationStatusPending,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
