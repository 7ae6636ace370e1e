package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMLClient(baseURL string, timeout time.Duration) *MLClient {
	return &MLClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func TestMLClientPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "salad.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"predicted_food": "caesar salad",
			"nutrition_info": {
				"food_name": "Caesar Salad",
				"calories": 470,
				"protein": 12.5,
				"sodium": 890
			}
		}`))
	}))
	defer srv.Close()

	client := newTestMLClient(srv.URL, 5*time.Second)
	pred, err := client.Predict(context.Background(), []byte("fake-image"), "salad.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "caesar salad", pred.PredictedFood)
	require.NotNil(t, pred.NutritionInfo)
	assert.Equal(t, "Caesar Salad", pred.NutritionInfo.FoodName)
	assert.Equal(t, 470.0, pred.NutritionInfo.Calories)
	assert.Equal(t, 890.0, pred.NutritionInfo.Sodium)
}

func TestMLClientPredictRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cannot classify image", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := newTestMLClient(srv.URL, 5*time.Second)
	_, err := client.Predict(context.Background(), []byte("x"), "x.png", "image/png")
	assert.Equal(t, ErrClassifierRejected, err)
}

func TestMLClientPredictUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestMLClient(srv.URL, 5*time.Second)
	_, err := client.Predict(context.Background(), []byte("x"), "x.png", "image/png")
	assert.Equal(t, ErrClassifierUnavailable, err)
}

func TestMLClientPredictTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client := newTestMLClient(srv.URL, 50*time.Millisecond)
	_, err := client.Predict(context.Background(), []byte("x"), "x.png", "image/png")
	assert.Equal(t, ErrClassifierTimeout, err)
}

func TestEntryFromPrediction(t *testing.T) {
	pred := &Prediction{
		PredictedFood: "nasi goreng",
		NutritionInfo: &NutritionInfo{
			FoodName: "Nasi Goreng",
			Calories: 630,
			Protein:  18,
		},
	}
	entry := entryFromPrediction(7, pred)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, uint(7), entry.UserID)
	assert.Equal(t, "Nasi Goreng", entry.FoodName)
	assert.Equal(t, "Generic", entry.BrandName, "missing brand falls back to Generic")
	assert.Equal(t, 630.0, entry.Calories)
	assert.False(t, entry.IsConsumed)
	assert.Nil(t, entry.ConsumedAt)
	assert.Nil(t, entry.XPGained)
}

func TestEntryFromPredictionWithoutNutrition(t *testing.T) {
	entry := entryFromPrediction(7, &Prediction{PredictedFood: "mystery dish"})
	assert.Equal(t, "mystery dish", entry.FoodName)
	assert.Zero(t, entry.Calories)
}
