package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/config"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/handlers"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/middleware"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/repository"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/services"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/storage"
	chatws "github.com/kennethtrancoding/my-first-day-sub000/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, store storage.Store, log *zap.Logger) error {
	accountRepo := repository.NewAccountRepository(store, log)
	conversationRepo := repository.NewConversationRepository(store, log)
	requestRepo := repository.NewRequestRepository(store, log)
	notificationRepo := repository.NewNotificationRepository(store, log)
	campusRepo := repository.NewCampusRepository(store, log)

	chatHub := chatws.NewHub()
	go chatHub.Run()

	notificationService := services.NewNotificationService(notificationRepo, chatHub)
	matchmakingService := services.NewMatchmakingService(accountRepo, conversationRepo)
	chatService := services.NewChatService(conversationRepo, requestRepo, accountRepo, notificationService)

	authHandler := handlers.NewAuthHandler(accountRepo, cfg.JWTSecret, cfg.DemoSigninEnabled())
	onboardingHandler := handlers.NewOnboardingHandler(accountRepo)
	profileHandler := handlers.NewProfileHandler(accountRepo)
	mentorDiscoveryHandler := handlers.NewMentorDiscoveryHandler(accountRepo, matchmakingService)
	chatHandler := handlers.NewChatHandler(chatService, chatHub, cfg.JWTSecret)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	campusHandler := handlers.NewCampusHandler(campusRepo, accountRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/demo-signin", authHandler.DemoSignin)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)
	auth.Put("/email", middleware.AuthRequired(cfg.JWTSecret), authHandler.UpdateEmail)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	students := authProtected.Group("/students")
	students.Post("/onboarding", onboardingHandler.StudentOnboarding)
	students.Get("/matches", mentorDiscoveryHandler.GetRecommendedMentors)

	mentors := authProtected.Group("/mentors")
	mentors.Get("", mentorDiscoveryHandler.ListMentors)
	mentors.Post("/onboarding", onboardingHandler.MentorOnboarding)
	mentors.Get("/:id", mentorDiscoveryHandler.GetMentorDetail)

	profile := authProtected.Group("/profile")
	profile.Get("", profileHandler.GetProfile)
	profile.Put("", profileHandler.UpdateProfile)
	profile.Put("/settings", profileHandler.UpdateSettings)

	conversations := authProtected.Group("/conversations")
	conversations.Get("", chatHandler.ListConversations)
	conversations.Get("/:peer/messages", chatHandler.GetMessages)
	conversations.Post("/:peer/messages", chatHandler.SendMessage)

	requests := authProtected.Group("/requests")
	requests.Post("", chatHandler.CreateRequest)
	requests.Get("", chatHandler.ListRequests)
	requests.Post("/:peer/approve", chatHandler.ApproveRequest)

	notifications := authProtected.Group("/notifications")
	notifications.Get("", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.ReadAll)
	notifications.Post("/:id/read", notificationHandler.ReadOne)
	notifications.Delete("/:id", notificationHandler.Dismiss)

	campus := authProtected.Group("/campus")
	campus.Get("/rooms", campusHandler.GetRooms)
	campus.Put("/rooms", campusHandler.PutRooms)
	campus.Get("/clubs", campusHandler.GetClubs)
	campus.Put("/clubs", campusHandler.PutClubs)
	campus.Get("/electives", campusHandler.GetElectives)
	campus.Put("/electives", campusHandler.PutElectives)
	campus.Get("/resources", campusHandler.GetResources)
	campus.Put("/resources", campusHandler.PutResources)

	api.Use("/v1/ws", chatHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(chatHandler.HandleWebSocket))

	return registerDocsRoutes(app, cfg)
}
