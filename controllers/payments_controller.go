package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/momin096/MediCamp-server/config"
	models "github.com/momin096/MediCamp-server/models"
)

// ---------------- PAYMENT INTENT ----------------
// Asks Stripe for a payment intent and returns only the client secret.
// Provider errors are passed through on a 500; there are no retries.
func CreatePaymentIntent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Price float64 `json:"price" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price is required"})
			return
		}
		if input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than 0"})
			return
		}

		stripe.Key = cfg.StripeSecretKey
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(amountInCents(input.Price)),
			Currency: stripe.String(string(stripe.CurrencyUSD)),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
		}

		pi, err := paymentintent.New(params)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientSecret": pi.ClientSecret})
	}
}

// amountInCents mirrors the client contract: the price is truncated to a
// whole dollar amount before conversion to minor units.
func amountInCents(price float64) int64 {
	return int64(price) * 100
}

// ---------------- RECORD ----------------
func RecordPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email         string  `json:"email" binding:"required"`
			CampID        string  `json:"campId" binding:"required"`
			Amount        float64 `json:"amount"`
			TransactionID string  `json:"transactionId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// campId references a registration; reject ids that could never join.
		if _, err := primitive.ObjectIDFromHex(input.CampID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
			return
		}

		payment := models.Payment{
			ID:            primitive.NewObjectID(),
			Email:         input.Email,
			CampID:        input.CampID,
			Amount:        input.Amount,
			TransactionID: input.TransactionID,
			CreatedAt:     time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, payment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record payment"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"insertedId": payment.ID.Hex()})
	}
}

// ---------------- HISTORY ----------------
// Inner join against registrations: a payment whose campId does not resolve
// to a registration yields no row.
func PaymentHistory(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("payments")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Aggregate(ctx, paymentHistoryPipeline(email))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch payment history"})
			return
		}

		var rows []bson.M
		if err := cursor.All(ctx, &rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode payment history"})
			return
		}

		if rows == nil {
			rows = []bson.M{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

// paymentHistoryPipeline joins payments to registrations by the payment's
// campId (a registration id in hex). Unconvertible ids become null and fall
// out of the $unwind, giving inner-join semantics.
func paymentHistoryPipeline(email string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "email", Value: email}}}},
		{{Key: "$addFields", Value: bson.D{{Key: "registrationId", Value: bson.D{
			{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$campId"},
				{Key: "to", Value: "objectId"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}},
		}}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "registrations"},
			{Key: "localField", Value: "registrationId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "registration"},
		}}},
		{{Key: "$unwind", Value: "$registration"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "campName", Value: "$registration.campName"},
			{Key: "campFees", Value: "$registration.campFees"},
			{Key: "status", Value: "$registration.status"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "registration", Value: 0},
			{Key: "registrationId", Value: 0},
		}}},
	}
}
