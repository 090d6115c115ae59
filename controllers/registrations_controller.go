package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/momin096/MediCamp-server/config"
	models "github.com/momin096/MediCamp-server/models"
	utils "github.com/momin096/MediCamp-server/utils"
)

// ---------------- REGISTER ----------------
// Inserts the registration, then increments the camp's participantCount.
// The increment itself is atomic at the document level; if it fails the
// inserted registration is compensated away and the request fails. Any
// drift left by a crash between the two writes is repairable through the
// camp reconcile endpoint.
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CampID           string  `json:"campId" binding:"required"`
			ParticipantEmail string  `json:"participantEmail" binding:"required"`
			ParticipantName  string  `json:"participantName"`
			CampName         string  `json:"campName"`
			CampFees         float64 `json:"campFees"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		campID, err := primitive.ObjectIDFromHex(input.CampID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp id"})
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// The referenced camp must exist before we write anything.
		var camp models.Camp
		if err := db.Collection("camps").FindOne(ctx, bson.M{"_id": campID}).Decode(&camp); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "camp not found"})
			return
		}

		now := time.Now()
		reg := models.Registration{
			ID:               primitive.NewObjectID(),
			CampID:           campID,
			ParticipantEmail: input.ParticipantEmail,
			ParticipantName:  input.ParticipantName,
			CampName:         input.CampName,
			CampFees:         input.CampFees,
			Status:           models.StatusPending,
			PaymentStatus:    models.PaymentUnpaid,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if reg.CampName == "" {
			reg.CampName = camp.CampName
		}
		if reg.CampFees == 0 {
			reg.CampFees = camp.CampFees
		}

		if _, err := db.Collection("registrations").InsertOne(ctx, reg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create registration"})
			return
		}

		_, err = db.Collection("camps").UpdateOne(ctx, bson.M{"_id": campID},
			bson.M{"$inc": bson.M{"participantCount": 1}})
		if err != nil {
			// Compensate so the ledger and the counter stay in step.
			if _, delErr := db.Collection("registrations").DeleteOne(ctx, bson.M{"_id": reg.ID}); delErr != nil {
				log.Printf("registration %s leaked after failed counter increment: %v", reg.ID.Hex(), delErr)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update participant count"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"insertedId": reg.ID.Hex()})
	}
}

// ---------------- LIST ----------------
func ListRegistrations(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("registrations")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if email := c.Query("email"); email != "" {
			filter["participantEmail"] = email
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch registrations"})
			return
		}

		var regs []models.Registration
		if err := cursor.All(ctx, &regs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode registrations"})
			return
		}

		if regs == nil {
			regs = []models.Registration{}
		}
		c.JSON(http.StatusOK, regs)
	}
}

// ---------------- CANCEL ----------------
// Hard delete. The camp counter is decremented so it keeps tracking live
// registrations in both directions.
func CancelRegistration(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var reg models.Registration
		if err := db.Collection("registrations").FindOne(ctx, bson.M{"_id": oid}).Decode(&reg); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}

		res, err := db.Collection("registrations").DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete registration"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}

		if _, err := db.Collection("camps").UpdateOne(ctx, bson.M{"_id": reg.CampID},
			bson.M{"$inc": bson.M{"participantCount": -1}}); err != nil {
			log.Printf("could not decrement participant count for camp %s: %v", reg.CampID.Hex(), err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "registration cancelled", "id": oid.Hex()})
	}
}

// ---------------- CONFIRM ----------------
func ConfirmRegistration(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("registrations")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid},
			bson.M{"$set": bson.M{"status": models.StatusConfirmed, "updatedAt": time.Now()}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update registration"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}

		// Best-effort notification, never fails the request.
		var reg models.Registration
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&reg); err == nil && reg.ParticipantEmail != "" {
			body := fmt.Sprintf("<p>Your registration for <b>%s</b> has been confirmed.</p>", reg.CampName)
			if err := utils.SendEmail(reg.ParticipantEmail, "Registration confirmed", body); err != nil {
				log.Printf("confirmation email to %s failed: %v", reg.ParticipantEmail, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "registration confirmed", "modifiedCount": res.ModifiedCount})
	}
}

// ---------------- MARK PAID ----------------
func MarkRegistrationPaid(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("registrations")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid},
			bson.M{"$set": bson.M{"paymentStatus": models.PaymentPaid, "updatedAt": time.Now()}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update registration"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "registration marked paid", "modifiedCount": res.ModifiedCount})
	}
}
