package services

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionService is a cheap pre-gate in front of the ML inference
// call: it checks that an upload actually looks like food before we
// spend a full classification round-trip on it.
type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

var foodLabels = map[string]struct{}{
	"Food": {}, "Meal": {}, "Dish": {}, "Beverage": {}, "Produce": {},
	"Fruit": {}, "Vegetable": {}, "Dessert": {}, "Snack": {},
}

// LooksLikeFood returns true when any of the top detected labels is
// food-related.
func (r *RekognitionService) LooksLikeFood(ctx context.Context, image []byte) (bool, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return false, err
	}

	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		if _, ok := foodLabels[*l.Name]; ok {
			return true, nil
		}
		for _, p := range l.Parents {
			if p.Name != nil && *p.Name == "Food" {
				return true, nil
			}
		}
	}
	return false, nil
}
