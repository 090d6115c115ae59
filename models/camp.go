package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Camp struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CampName               string             `bson:"campName" json:"campName"`
	Image                  string             `bson:"image,omitempty" json:"image,omitempty"`
	CampFees               float64            `bson:"campFees" json:"campFees"`
	DateTime               string             `bson:"dateTime,omitempty" json:"dateTime,omitempty"`
	Location               string             `bson:"location,omitempty" json:"location,omitempty"`
	HealthcareProfessional string             `bson:"healthcareProfessional,omitempty" json:"healthcareProfessional,omitempty"`
	Description            string             `bson:"description,omitempty" json:"description,omitempty"`
	ParticipantCount       int                `bson:"participantCount" json:"participantCount"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}
