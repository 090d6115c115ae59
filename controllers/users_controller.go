package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/momin096/MediCamp-server/config"
	models "github.com/momin096/MediCamp-server/models"
)

// ---------------- ENSURE ----------------
// Idempotent create: an existing record is returned unchanged, otherwise the
// payload is inserted with a forced Participant role.
func EnsureUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		var input struct {
			Name  string `json:"name"`
			Image string `json:"image"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.User
		err := col.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
		if err == nil {
			c.JSON(http.StatusOK, existing)
			return
		}
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up user"})
			return
		}

		now := time.Now()
		user := models.User{
			ID:        primitive.NewObjectID(),
			Email:     email,
			Name:      input.Name,
			Image:     input.Image,
			Role:      models.RoleParticipant,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := col.InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// ---------------- GET PROFILE ----------------
func GetProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := cfg.MongoClient.Database(cfg.DBName).
			Collection("users").
			FindOne(ctx, bson.M{"email": email}).
			Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch profile"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// ---------------- UPDATE PROFILE ----------------
func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		var input struct {
			Name  string `json:"name"`
			Image string `json:"image"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Image != "" {
			update["image"] = input.Image
		}
		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "profile updated", "modifiedCount": res.ModifiedCount})
	}
}

// ---------------- GET ROLE ----------------
// A missing record is not an error: the caller treats a null role as
// "unknown identity".
func GetRole(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := cfg.MongoClient.Database(cfg.DBName).
			Collection("users").
			FindOne(ctx, bson.M{"email": email}).
			Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"role": nil})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch role"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"role": user.Role})
	}
}
