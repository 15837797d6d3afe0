// ABOUTME: Per-resource field schemas used by the console screens
// ABOUTME: Names the filterable and sortable fields of each marketplace record
package controller

import (
	"strconv"
	"time"

	"github.com/tablevine/tablevine/models"
)

// PartnerSchema: free-text query spans name, email, and city.
func PartnerSchema() Schema[models.Partner] {
	return Schema[models.Partner]{
		"name":    {Kind: FieldText, String: func(p models.Partner) string { return p.Name }},
		"city":    {Kind: FieldText, String: func(p models.Partner) string { return p.City }},
		"cuisine": {Kind: FieldText, String: func(p models.Partner) string { return p.Cuisine }},
		"status":  {Kind: FieldCategory, String: func(p models.Partner) string { return p.Status }},
		"query": {Kind: FieldText, String: func(p models.Partner) string {
			return p.Name + " " + p.Email + " " + p.City
		}},
		"created": {Kind: FieldDate, Time: func(p models.Partner) time.Time { return p.CreatedAt }},
	}
}

func TourSchema() Schema[models.Tour] {
	return Schema[models.Tour]{
		"title":  {Kind: FieldText, String: func(t models.Tour) string { return t.Title }},
		"status": {Kind: FieldCategory, String: func(t models.Tour) string { return t.Status }},
		"date":   {Kind: FieldDate, Time: func(t models.Tour) time.Time { return t.Date }},
		"query": {Kind: FieldText, String: func(t models.Tour) string {
			return t.Title + " " + t.Description
		}},
	}
}

func EventSchema() Schema[models.Event] {
	return Schema[models.Event]{
		"title":  {Kind: FieldText, String: func(e models.Event) string { return e.Title }},
		"venue":  {Kind: FieldText, String: func(e models.Event) string { return e.Venue }},
		"status": {Kind: FieldCategory, String: func(e models.Event) string { return e.Status }},
		"date":   {Kind: FieldDate, Time: func(e models.Event) time.Time { return e.StartsAt }},
	}
}

func ReservationSchema() Schema[models.Reservation] {
	return Schema[models.Reservation]{
		"guest":  {Kind: FieldText, String: func(r models.Reservation) string { return r.GuestName }},
		"status": {Kind: FieldCategory, String: func(r models.Reservation) string { return r.Status }},
		"date":   {Kind: FieldDate, Time: func(r models.Reservation) time.Time { return r.Date }},
	}
}

func RequestSchema() Schema[models.Request] {
	return Schema[models.Request]{
		"subject": {Kind: FieldText, String: func(r models.Request) string { return r.Subject }},
		"status":  {Kind: FieldCategory, String: func(r models.Request) string { return r.Status }},
		"created": {Kind: FieldDate, Time: func(r models.Request) time.Time { return r.CreatedAt }},
	}
}

func FeedbackSchema() Schema[models.Feedback] {
	return Schema[models.Feedback]{
		"query": {Kind: FieldText, String: func(f models.Feedback) string {
			return f.Author + " " + f.Comment
		}},
		"rating":  {Kind: FieldCategory, String: func(f models.Feedback) string { return strconv.Itoa(f.Rating) }},
		"created": {Kind: FieldDate, Time: func(f models.Feedback) time.Time { return f.CreatedAt }},
	}
}
