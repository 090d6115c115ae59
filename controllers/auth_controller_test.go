package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestIssueToken(t *testing.T) {
	cfg := testConfig(nil)
	r := gin.New()
	r.POST("/jwt", IssueToken(cfg))

	w := serve(r, http.MethodPost, "/jwt", `{"email":"a@x.com","name":"Alice"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the response")
	}

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["email"] != "a@x.com" {
		t.Errorf("email claim = %v, want a@x.com", claims["email"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("no expiry claim: %v", err)
	}
	ttl := time.Until(exp.Time)
	if ttl < 55*time.Minute || ttl > 65*time.Minute {
		t.Errorf("expiry %v from now, want about 1h", ttl)
	}
}

func TestIssueTokenRejectsNonObject(t *testing.T) {
	r := gin.New()
	r.POST("/jwt", IssueToken(testConfig(nil)))

	w := serve(r, http.MethodPost, "/jwt", `"not an object"`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
