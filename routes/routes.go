package routes

import (
	"github.com/Alianama/food-gamification-backend/config"
	"github.com/Alianama/food-gamification-backend/controllers"
	"github.com/Alianama/food-gamification-backend/middlewares"
	"github.com/Alianama/food-gamification-backend/services"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Character *services.CharacterService
	Detection *services.DetectionService
	History   *services.FoodHistoryService
	Hub       *services.RealtimeHub
	Push      *services.PushService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	characterCtl := controllers.NewCharacterController(deps.Detection, deps.Character, deps.History)
	deviceCtl := controllers.NewDeviceController(deps.Push)
	realtimeCtl := controllers.NewRealtimeController(deps.Hub)

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.POST("/refresh-token", controllers.RefreshToken)

		protected := auth.Group("")
		protected.Use(middlewares.AuthMiddleware())
		{
			protected.POST("/logout", controllers.Logout)
			protected.POST("/change-password", controllers.ChangePassword)
			protected.GET("/profile", controllers.Profile)
		}
	}

	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/me", controllers.Profile)
		user.PUT("/profile-picture", controllers.UploadProfilePicture)

		admin := user.Group("")
		admin.Use(middlewares.RequirePermission(config.PermManageUsers))
		{
			admin.GET("", controllers.ListUsers)
			admin.GET("/:id", controllers.GetUser)
			admin.POST("", controllers.CreateUser)
			admin.PUT("/:id", controllers.UpdateUser)
			admin.POST("/:id/reset-password", controllers.ResetUserPassword)
			admin.DELETE("/:id", controllers.DeleteUser)
			admin.GET("/logs", controllers.ListActivityLogs)
		}
	}

	character := r.Group("/character")
	character.Use(middlewares.AuthMiddleware())
	{
		character.POST("/food-detection", characterCtl.DetectFood)
		character.POST("/food-confirm", characterCtl.ConfirmFood)
		character.GET("/food-history", characterCtl.FoodHistory)
		character.GET("/food-stats", characterCtl.FoodStats)
	}

	device := r.Group("/device")
	device.Use(middlewares.AuthMiddleware())
	{
		device.POST("/register", deviceCtl.RegisterDevice)
	}

	r.GET("/ws", middlewares.AuthMiddleware(), realtimeCtl.Connect)

	return r
}
