package controllers

import (
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/momin096/MediCamp-server/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testDB = "MediCamp"

func testConfig(client *mongo.Client) *config.Config {
	return &config.Config{
		MongoClient: client,
		DBName:      testDB,
		JWTSecret:   "test-secret",
	}
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
