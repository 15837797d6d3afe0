// ABOUTME: Data models for marketplace entities
// ABOUTME: Defines Partner, Tour, Event, Reservation, Request, Feedback, and messaging structs
package models

import (
	"time"

	"github.com/google/uuid"
)

type Partner struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty"`
	City      string    `json:"city,omitempty"`
	Cuisine   string    `json:"cuisine,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Tour struct {
	ID          uuid.UUID `json:"id"`
	PartnerID   uuid.UUID `json:"partner_id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price,omitempty"` // in cents
	Currency    string    `json:"currency"`
	Capacity    int       `json:"capacity" validate:"gte=0"`
	Date        time.Time `json:"date"`
	ImageURL    string    `json:"image_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Event struct {
	ID        uuid.UUID `json:"id"`
	PartnerID uuid.UUID `json:"partner_id"`
	Title     string    `json:"title" validate:"required"`
	Venue     string    `json:"venue,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	Capacity  int       `json:"capacity" validate:"gte=0"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Reservation struct {
	ID        uuid.UUID `json:"id"`
	TourID    uuid.UUID `json:"tour_id"`
	GuestName string    `json:"guest_name" validate:"required"`
	PartySize int       `json:"party_size" validate:"gte=1"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Request struct {
	ID        uuid.UUID `json:"id"`
	PartnerID uuid.UUID `json:"partner_id"`
	Subject   string    `json:"subject" validate:"required"`
	Body      string    `json:"body,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Feedback struct {
	ID        uuid.UUID `json:"id"`
	TourID    uuid.UUID `json:"tour_id"`
	Author    string    `json:"author,omitempty"`
	Rating    int       `json:"rating" validate:"gte=1,lte=5"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single message in a two-party conversation.
type Message struct {
	ID        uuid.UUID `json:"id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// Counterpart is the other party of a conversation, with roster summary data.
// LastMessageAt is the zero time when no messages have been exchanged yet.
type Counterpart struct {
	ID            uuid.UUID `json:"id"`
	DisplayName   string    `json:"display_name"`
	UnreadCount   int       `json:"unread_count"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// Experience is a client-only catalog entry, never sent to the server.
// Images are embedded inline rather than referenced by URL.
type Experience struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Notes     string    `json:"notes,omitempty"`
	Date      time.Time `json:"date"`
	Image     []byte    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Partner status constants.
const (
	PartnerActive   = "active"
	PartnerInactive = "inactive"
)

// Tour and event status constants.
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// Reservation status constants.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Request status constants.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

func (p Partner) RecordID() string     { return p.ID.String() }
func (t Tour) RecordID() string        { return t.ID.String() }
func (e Event) RecordID() string       { return e.ID.String() }
func (r Reservation) RecordID() string { return r.ID.String() }
func (r Request) RecordID() string     { return r.ID.String() }
func (f Feedback) RecordID() string    { return f.ID.String() }
