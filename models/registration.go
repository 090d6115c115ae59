package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "Pending"
	StatusConfirmed RegistrationStatus = "Confirmed"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

// Registration links a participant to a camp. campName and campFees are
// denormalized from the camp at registration time so the payment-history
// report can be served from registrations alone.
type Registration struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CampID           primitive.ObjectID `bson:"campId" json:"campId"`
	ParticipantEmail string             `bson:"participantEmail" json:"participantEmail"`
	ParticipantName  string             `bson:"participantName,omitempty" json:"participantName,omitempty"`
	CampName         string             `bson:"campName,omitempty" json:"campName,omitempty"`
	CampFees         float64            `bson:"campFees" json:"campFees"`
	Status           RegistrationStatus `bson:"status" json:"status"`
	PaymentStatus    PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
