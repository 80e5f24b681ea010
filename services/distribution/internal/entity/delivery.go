package entity

import "time"

type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "delivered"
	// StatusSkipped marks a platform with no outbound connector configured.
	StatusSkipped DeliveryStatus = "skipped"
	StatusFailed  DeliveryStatus = "failed"
	// StatusRejected marks a permanent failure that is not retried.
	StatusRejected DeliveryStatus = "rejected"
)

// Delivery records the outcome of pushing one post to one platform.
type Delivery struct {
	PostID   string         `json:"post_id"`
	Platform string         `json:"platform"`
	Status   DeliveryStatus `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	At       time.Time      `json:"at"`
}
