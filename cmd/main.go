package main

import (
	"log"
	"os"

	"github.com/Alianama/food-gamification-backend/config"
	"github.com/Alianama/food-gamification-backend/routes"
	"github.com/Alianama/food-gamification-backend/services"
	"github.com/Alianama/food-gamification-backend/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	hub := services.NewRealtimeHub()

	var push *services.PushService
	if os.Getenv("SNS_FCM_ARN") != "" || os.Getenv("SNS_APNS_ARN") != "" {
		p, err := services.NewPushService(config.DB)
		if err != nil {
			log.Printf("push notifications disabled: %v", err)
		} else {
			push = p
		}
	}

	services.InitNotifier(config.DB, hub, push)

	var gate *services.RekognitionService
	if os.Getenv("REKOGNITION_GATE") == "true" {
		g, err := services.NewRekognitionService()
		if err != nil {
			log.Printf("rekognition gate disabled: %v", err)
		} else {
			gate = g
		}
	}

	repo := services.NewProgressRepository(config.DB)
	deps := routes.Deps{
		Character: services.NewCharacterService(repo),
		Detection: services.NewDetectionService(config.DB, services.NewMLClient(), gate),
		History:   services.NewFoodHistoryService(config.DB),
		Hub:       hub,
		Push:      push,
	}

	r := routes.SetupRouter(deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("server listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
