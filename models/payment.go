package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is immutable once written. CampID is the hex id of the
// registration being paid for, kept as a string the way the client sends it
// and converted to an ObjectID inside the history aggregation.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	CampID        string             `bson:"campId" json:"campId"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
