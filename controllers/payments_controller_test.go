package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestAmountInCents(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{10, 1000},
		{10.9, 1000}, // whole-dollar truncation before conversion
		{1, 100},
		{250, 25000},
	}
	for _, tc := range cases {
		if got := amountInCents(tc.price); got != tc.want {
			t.Errorf("amountInCents(%v) = %d, want %d", tc.price, got, tc.want)
		}
	}
}

func TestCreatePaymentIntentRequiresPrice(t *testing.T) {
	r := gin.New()
	r.POST("/create-payment-intent", CreatePaymentIntent(testConfig(nil)))

	for _, body := range []string{`{}`, `{"price":0}`, `{"price":-5}`} {
		w := serve(r, http.MethodPost, "/create-payment-intent", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestRecordPayment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the inserted id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		r := gin.New()
		r.POST("/payments", RecordPayment(testConfig(mt.Client)))

		body := `{"email":"a@x.com","campId":"` + primitive.NewObjectID().Hex() + `","amount":10,"transactionId":"pi_123"}`
		w := serve(r, http.MethodPost, "/payments", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var got map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		id, _ := got["insertedId"].(string)
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			t.Errorf("insertedId %q is not a valid ObjectID", id)
		}
	})
}

func TestRecordPaymentRejectsBadRegistrationID(t *testing.T) {
	r := gin.New()
	r.POST("/payments", RecordPayment(testConfig(nil)))

	w := serve(r, http.MethodPost, "/payments", `{"email":"a@x.com","campId":"nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPaymentHistory(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("rows carry the joined registration fields", func(mt *mtest.T) {
		row := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "a@x.com"},
			{Key: "campId", Value: primitive.NewObjectID().Hex()},
			{Key: "amount", Value: 10.0},
			{Key: "campName", Value: "Eye Camp"},
			{Key: "campFees", Value: 10.0},
			{Key: "status", Value: "Confirmed"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".payments", mtest.FirstBatch, row))

		r := gin.New()
		r.GET("/payment-history", PaymentHistory(testConfig(mt.Client)))

		w := serve(r, http.MethodGet, "/payment-history?email=a@x.com", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got []map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d rows, want 1", len(got))
		}
		if got[0]["campName"] != "Eye Camp" || got[0]["status"] != "Confirmed" {
			t.Errorf("enrichment fields missing: %v", got[0])
		}
		if _, leaked := got[0]["registration"]; leaked {
			t.Error("joined registration object should not reach the caller")
		}
	})

	mt.Run("missing email is a 400", func(mt *mtest.T) {
		r := gin.New()
		r.GET("/payment-history", PaymentHistory(testConfig(mt.Client)))

		w := serve(r, http.MethodGet, "/payment-history", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

// The join itself runs inside Mongo; what the handler controls is the
// pipeline, so pin its shape: inner-join unwind, safe id conversion, and no
// join object in the output.
func TestPaymentHistoryPipeline(t *testing.T) {
	pipeline := paymentHistoryPipeline("a@x.com")
	if len(pipeline) != 6 {
		t.Fatalf("pipeline has %d stages, want 6", len(pipeline))
	}

	match := pipeline[0][0]
	if match.Key != "$match" {
		t.Fatalf("first stage is %s, want $match", match.Key)
	}
	if d := match.Value.(bson.D); d[0].Key != "email" || d[0].Value != "a@x.com" {
		t.Errorf("$match filters on %v", d)
	}

	lookup := pipeline[2][0]
	if lookup.Key != "$lookup" {
		t.Fatalf("third stage is %s, want $lookup", lookup.Key)
	}
	for _, e := range lookup.Value.(bson.D) {
		if e.Key == "from" && e.Value != "registrations" {
			t.Errorf("$lookup from %v, want registrations", e.Value)
		}
	}

	unwind := pipeline[3][0]
	if unwind.Key != "$unwind" {
		t.Fatalf("fourth stage is %s, want $unwind", unwind.Key)
	}
	// A bare path (no preserveNullAndEmptyArrays) is what makes the join inner.
	if unwind.Value != "$registration" {
		t.Errorf("$unwind on %v, want the plain $registration path", unwind.Value)
	}

	project := pipeline[5][0]
	if project.Key != "$project" {
		t.Fatalf("last stage is %s, want $project", project.Key)
	}
	excluded := map[string]bool{}
	for _, e := range project.Value.(bson.D) {
		if v, ok := e.Value.(int); ok && v == 0 {
			excluded[e.Key] = true
		}
	}
	if !excluded["registration"] || !excluded["registrationId"] {
		t.Errorf("$project must drop the join fields, got %v", project.Value)
	}
}
