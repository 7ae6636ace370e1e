package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/Alianama/food-gamification-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prediction is what the classifier returns for one image: a label
// plus whatever nutrition facts it could look up.
type Prediction struct {
	PredictedFood string         `json:"predicted_food"`
	NutritionInfo *NutritionInfo `json:"nutrition_info"`
}

type NutritionInfo struct {
	FoodName           string  `json:"food_name"`
	BrandName          string  `json:"brand_name"`
	FoodDescription    string  `json:"food_description"`
	FoodType           string  `json:"food_type"`
	FoodURL            string  `json:"food_url"`
	ServingDescription string  `json:"serving_description"`
	Calories           float64 `json:"calories"`
	Carbohydrate       float64 `json:"carbohydrate"`
	Fat                float64 `json:"fat"`
	Fiber              float64 `json:"fiber"`
	Protein            float64 `json:"protein"`
	Sodium             float64 `json:"sodium"`
	Sugar              float64 `json:"sugar"`
}

// FoodClassifier is the opaque ML collaborator: image in, predicted
// food plus nutrition facts out, or one of the typed failures in
// errors.go.
type FoodClassifier interface {
	Predict(ctx context.Context, image []byte, filename, contentType string) (*Prediction, error)
}

// MLClient talks to the external inference service over HTTP.
type MLClient struct {
	baseURL string
	client  *http.Client
}

func NewMLClient() *MLClient {
	base := os.Getenv("ML_SERVICE_URL")
	if base == "" {
		base = "http://127.0.0.1:5000"
	}
	return &MLClient{
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *MLClient) Predict(ctx context.Context, image []byte, filename, contentType string) (*Prediction, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(image); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/predict", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := m.client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, ErrClassifierTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrClassifierTimeout
		}
		// Connection refused, DNS failure and friends all mean the
		// service is not reachable right now.
		return nil, ErrClassifierUnavailable
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read prediction response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("ml service error: status=%d body=%s", resp.StatusCode, truncate(respBytes, 200))
		return nil, ErrClassifierRejected
	}

	var pred Prediction
	if err := json.Unmarshal(respBytes, &pred); err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}
	return &pred, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

// DetectionService runs the detection pipeline: optional content gate,
// classification, then persisting a pending FoodHistory row for the
// confirmation workflow to pick up.
type DetectionService struct {
	db         *gorm.DB
	classifier FoodClassifier
	gate       *RekognitionService // nil when not configured
}

func NewDetectionService(db *gorm.DB, classifier FoodClassifier, gate *RekognitionService) *DetectionService {
	return &DetectionService{db: db, classifier: classifier, gate: gate}
}

type DetectionResult struct {
	Prediction    *Prediction `json:"predictions"`
	FoodHistoryID string      `json:"foodHistoryId,omitempty"`
}

func (s *DetectionService) DetectFood(ctx context.Context, userID uint, image []byte, filename, contentType string) (*DetectionResult, error) {
	if s.gate != nil {
		isFood, err := s.gate.LooksLikeFood(ctx, image)
		if err != nil {
			// The gate is best-effort; a Rekognition outage must not
			// block detection.
			log.Printf("food image gate failed, skipping: user=%d err=%v", userID, err)
		} else if !isFood {
			return nil, ErrNotFoodImage
		}
	}

	pred, err := s.classifier.Predict(ctx, image, filename, contentType)
	if err != nil {
		return nil, err
	}

	result := &DetectionResult{Prediction: pred}

	entry := entryFromPrediction(userID, pred)
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		// The prediction is still useful on its own; the entry just
		// cannot be confirmed later.
		log.Printf("failed to save food history: user=%d err=%v", userID, err)
		return result, nil
	}
	result.FoodHistoryID = entry.ID

	log.Printf("food detected: user=%d id=%s food=%q", userID, entry.ID, entry.FoodName)
	return result, nil
}

func entryFromPrediction(userID uint, pred *Prediction) *models.FoodHistory {
	entry := &models.FoodHistory{
		ID:       uuid.NewString(),
		UserID:   userID,
		FoodName: pred.PredictedFood,
	}
	if info := pred.NutritionInfo; info != nil {
		if info.FoodName != "" {
			entry.FoodName = info.FoodName
		}
		entry.BrandName = info.BrandName
		if entry.BrandName == "" {
			entry.BrandName = "Generic"
		}
		entry.FoodDescription = info.FoodDescription
		entry.FoodType = info.FoodType
		entry.FoodURL = info.FoodURL
		entry.ServingDescription = info.ServingDescription
		entry.Calories = info.Calories
		entry.Carbohydrate = info.Carbohydrate
		entry.Fat = info.Fat
		entry.Fiber = info.Fiber
		entry.Protein = info.Protein
		entry.Sodium = info.Sodium
		entry.Sugar = info.Sugar
	}
	return entry
}
