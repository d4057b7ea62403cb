package main

import (
	"log"
	"time"

	"filmgraph/config"
	"filmgraph/handler"
	"filmgraph/middleware"
	"filmgraph/service"
	"filmgraph/storage"
	"filmgraph/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	// 设置时区为 UTC（推荐服务端统一使用 UTC）
	time.Local = time.UTC
}

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	if err := utils.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer utils.CloseDB()

	// 建表 + 种子数据
	if err := storage.Migrate(utils.GetDB()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化 Redis（事件流跨实例广播）
	if err := utils.InitRedis(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer utils.CloseRedis()

	// 存储层：生产环境用数据库后端（测试用内存后端，见 storage 包）
	graphStore := storage.NewDBGraphStore(utils.GetDB())
	eventStore := storage.NewDBEventStore(utils.GetDB())
	filmStore := storage.NewDBFilmStore(utils.GetDB())
	userStore := storage.NewDBUserStore(utils.GetDB())
	reviewStore := storage.NewDBReviewStore(utils.GetDB())

	// 创建 WebSocket Hub（实时事件推送）
	hub := handler.NewHub(utils.GetRedis())
	hub.StartPubSub()
	defer hub.StopPubSub()

	// 创建服务
	feedSvc := service.NewFeedService(eventStore, userStore, graphStore, cfg.FeedIncludeFriends)
	feedSvc.SetEventPublisher(hub)

	filmSvc := service.NewFilmService(filmStore, userStore, graphStore, feedSvc)
	userSvc := service.NewUserService(userStore, graphStore, feedSvc)
	recSvc := service.NewRecommendationService(userStore, filmStore, graphStore)
	reviewSvc := service.NewReviewService(reviewStore, userStore, filmStore, feedSvc)

	// 创建处理器
	filmHandler := handler.NewFilmHandler(filmSvc)
	userHandler := handler.NewUserHandler(userSvc, recSvc, feedSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)

	// 创建 Gin 路由
	r := gin.Default()

	// 注册请求 ID 和统一错误处理中间件
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{"status": "ok"})
	})

	// WebSocket 事件流
	r.GET("/ws/feed", handler.HandleFeedWS(hub))

	// 电影
	films := r.Group("/films")
	{
		films.GET("", filmHandler.GetFilms)
		films.POST("", filmHandler.CreateFilm)
		films.PUT("", filmHandler.UpdateFilm)
		films.GET("/popular", filmHandler.GetPopular)         // 热门排行
		films.GET("/common", filmHandler.GetCommonFilms)      // 共同点赞的电影
		films.GET("/search", filmHandler.SearchFilms)         // 按片名/导演搜索
		films.GET("/liked/:userId", filmHandler.GetLikedFilms)
		films.GET("/:id", filmHandler.GetFilm)
		films.DELETE("/:id", filmHandler.DeleteFilm)
		films.PUT("/:id/like/:userId", filmHandler.AddLike)
		films.DELETE("/:id/like/:userId", filmHandler.RemoveLike)
	}

	// 用户
	users := r.Group("/users")
	{
		users.GET("", userHandler.GetUsers)
		users.POST("", userHandler.CreateUser)
		users.PUT("", userHandler.UpdateUser)
		users.GET("/:id", userHandler.GetUser)
		users.DELETE("/:id", userHandler.DeleteUser)
		users.GET("/:id/friends", userHandler.GetFriends)
		users.GET("/:id/friends/common/:otherId", userHandler.GetCommonFriends)
		users.PUT("/:id/friends/:friendId", userHandler.AddFriend)
		users.DELETE("/:id/friends/:friendId", userHandler.RemoveFriend)
		users.GET("/:id/recommendations", userHandler.GetRecommendations) // 电影推荐
		users.GET("/:id/feed", userHandler.GetFeed)                       // 事件流
	}

	// 评论
	reviews := r.Group("/reviews")
	{
		reviews.GET("", reviewHandler.GetReviews)
		reviews.POST("", reviewHandler.CreateReview)
		reviews.PUT("", reviewHandler.UpdateReview)
		reviews.GET("/:id", reviewHandler.GetReview)
		reviews.DELETE("/:id", reviewHandler.DeleteReview)
		reviews.PUT("/:id/like/:userId", reviewHandler.AddLike)
		reviews.DELETE("/:id/like/:userId", reviewHandler.RemoveLike)
		reviews.PUT("/:id/dislike/:userId", reviewHandler.AddDislike)
		reviews.DELETE("/:id/dislike/:userId", reviewHandler.RemoveDislike)
	}

	// 启动服务
	log.Printf("filmgraph service starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
