package routers

import (
	"github.com/gin-gonic/gin"

	"ban/healthsense/internal/app/pkg/ginx"
	"ban/healthsense/internal/app/server/handlers/prediction"
	"ban/healthsense/internal/app/server/middlewares"
	"ban/healthsense/pkg/logger"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(predictionHandler *prediction.PredictionHandler, log logger.Logger) *gin.Engine {
	ginx.RegisterJSONFieldNames()

	r := gin.New()

	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.Recovery(log))
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", predictionHandler.Health)

	// 兼容原有调用方
	r.GET("/predict", predictionHandler.Predict)

	v1 := r.Group("/api/v1")
	{
		predictions := v1.Group("/predictions")
		{
			predictions.GET("/latest", predictionHandler.Latest)
			predictions.POST("", predictionHandler.Create)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		ginx.NotFound(c, "route not found")
	})

	return r
}
