package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/momin096/MediCamp-server/config"
	models "github.com/momin096/MediCamp-server/models"
	utils "github.com/momin096/MediCamp-server/utils"
)

const topCampsLimit = 6

// ---------------- CREATE ----------------
func CreateCamp(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CampName               string  `json:"campName" binding:"required"`
			Image                  string  `json:"image"`
			CampFees               float64 `json:"campFees"`
			DateTime               string  `json:"dateTime"`
			Location               string  `json:"location"`
			HealthcareProfessional string  `json:"healthcareProfessional"`
			Description            string  `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		camp := models.Camp{
			ID:                     primitive.NewObjectID(),
			CampName:               input.CampName,
			Image:                  input.Image,
			CampFees:               input.CampFees,
			DateTime:               input.DateTime,
			Location:               input.Location,
			HealthcareProfessional: input.HealthcareProfessional,
			Description:            input.Description,
			ParticipantCount:       0,
			CreatedAt:              now,
			UpdatedAt:              now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("camps")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, camp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create camp"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"insertedId": camp.ID.Hex()})
	}
}

// ---------------- LIST ----------------
func ListCamps(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("camps")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch camps"})
			return
		}

		var camps []models.Camp
		if err := cursor.All(ctx, &camps); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode camps"})
			return
		}

		if len(camps) == 0 {
			c.JSON(http.StatusOK, []models.Camp{})
			return
		}

		// --- Pick the most recently updated camp ---
		latest := camps[0]
		for _, cm := range camps {
			if cm.UpdatedAt.After(latest.UpdatedAt) {
				latest = cm
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, camps)
	}
}

// ---------------- TOP ----------------
// Most popular camps by participant count. Ties keep the store's natural
// return order.
func ListTopCamps(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("camps")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "participantCount", Value: -1}}).
			SetLimit(topCampsLimit)

		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch camps"})
			return
		}

		var camps []models.Camp
		if err := cursor.All(ctx, &camps); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode camps"})
			return
		}

		if camps == nil {
			camps = []models.Camp{}
		}
		c.JSON(http.StatusOK, camps)
	}
}

// ---------------- GET ----------------
func GetCamp(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		campID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp id"})
			return
		}

		var camp models.Camp
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("camps").
			FindOne(ctx, bson.M{"_id": campID}).
			Decode(&camp)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
			return
		}

		etag := utils.GenerateETag(camp.ID, camp.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, camp)
	}
}

// ---------------- UPDATE ----------------
func UpdateCamp(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp id"})
			return
		}

		var input struct {
			CampName               string   `json:"campName"`
			Image                  string   `json:"image"`
			CampFees               *float64 `json:"campFees"`
			DateTime               string   `json:"dateTime"`
			Location               string   `json:"location"`
			HealthcareProfessional string   `json:"healthcareProfessional"`
			Description            string   `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if input.CampName != "" {
			update["campName"] = input.CampName
		}
		if input.Image != "" {
			update["image"] = input.Image
		}
		if input.CampFees != nil {
			update["campFees"] = *input.CampFees
		}
		if input.DateTime != "" {
			update["dateTime"] = input.DateTime
		}
		if input.Location != "" {
			update["location"] = input.Location
		}
		if input.HealthcareProfessional != "" {
			update["healthcareProfessional"] = input.HealthcareProfessional
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("camps")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update camp"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "camp updated", "modifiedCount": res.ModifiedCount})
	}
}

// ---------------- DELETE ----------------
func DeleteCamp(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("camps")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Camp
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete camp"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
			return
		}

		// Best effort: a leaked image is not worth failing the delete.
		if existing.Image != "" {
			utils.DeleteFromCloudinary(existing.Image)
		}

		c.JSON(http.StatusOK, gin.H{"message": "camp deleted", "id": oid.Hex()})
	}
}

// ---------------- IMAGE UPLOAD ----------------
func UploadCampImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp id"})
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := utils.UploadToCloudinary(file, fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "image upload failed",
				"details": err.Error(),
			})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("camps")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid},
			bson.M{"$set": bson.M{"image": url, "updatedAt": time.Now()}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update camp"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "image uploaded", "image": url})
	}
}

// ---------------- RECONCILE ----------------
// Resets participantCount to the number of registrations referencing the
// camp. Idempotent; repairs any drift left by a crash between the
// registration insert and the counter increment.
func ReconcileParticipants(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid camp id"})
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		count, err := db.Collection("registrations").CountDocuments(ctx, bson.M{"campId": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count registrations"})
			return
		}

		res, err := db.Collection("camps").UpdateOne(ctx, bson.M{"_id": oid},
			bson.M{"$set": bson.M{"participantCount": count, "updatedAt": time.Now()}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update camp"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "participant count reconciled", "participantCount": count})
	}
}
