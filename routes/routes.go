package routes

import (
	"vehicle-catalog-api/catalog/permission"
	"vehicle-catalog-api/catalog/provider"
	"vehicle-catalog-api/config"
	"vehicle-catalog-api/handlers"
	"vehicle-catalog-api/middleware"
	"vehicle-catalog-api/services"
	"vehicle-catalog-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App 路由及需要后台运行的服务
type App struct {
	Engine   *gin.Engine
	Sessions *services.SessionService
}

// SetupRoutes 设置路由
func SetupRoutes(db *gorm.DB, cfg *config.Config) *App {
	r := gin.New()

	// 中间件
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())

	// CORS配置
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization",
		middleware.RequestIDHeader, middleware.RolesHeader, middleware.PermissionsHeader,
	}
	r.Use(cors.New(corsConfig))
	r.Use(middleware.Capabilities())

	// 目录数据源及缓存，写操作后失效
	catalogCache := provider.NewCachedProvider(services.NewCatalogService(db), cfg.Catalog.CacheTTL)
	sessionManager := utils.NewSessionManager(cfg.Session.MaxSessions)
	wsManager := utils.NewWebSocketManager()

	selector := services.NewSelectorService(catalogCache)
	sessionService := services.NewSessionService(selector, sessionManager, wsManager)

	// 创建控制器实例
	brandHandler := handlers.NewBrandHandler(services.NewBrandService(db, catalogCache))
	modelHandler := handlers.NewModelHandler(services.NewModelService(db, catalogCache))
	generationHandler := handlers.NewGenerationHandler(services.NewGenerationService(db, catalogCache))
	equipmentHandler := handlers.NewEquipmentHandler(services.NewEquipmentService(db, catalogCache))
	catalogHandler := handlers.NewCatalogHandler(selector)
	sessionHandler := handlers.NewSessionHandler(sessionService, wsManager)
	healthHandler := handlers.NewHealthHandler(db, sessionManager)

	canWrite := middleware.RequireCapability(permission.CatalogWriter())

	// WebSocket路由
	r.GET("/ws/selection", sessionHandler.HandleWebSocket)

	// API路由组
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		// 品牌相关路由
		brands := api.Group("/brands")
		{
			brands.GET("", brandHandler.GetBrands)
			brands.GET("/:id", brandHandler.GetBrand)
			brands.POST("", canWrite, brandHandler.CreateBrand)
			brands.PUT("/:id", canWrite, brandHandler.UpdateBrand)
			brands.DELETE("/:id", canWrite, brandHandler.DeleteBrand)
		}

		// 车型相关路由
		vehicleModels := api.Group("/models")
		{
			vehicleModels.GET("", modelHandler.GetModels)
			vehicleModels.GET("/:id", modelHandler.GetModel)
			vehicleModels.POST("", canWrite, modelHandler.CreateModel)
			vehicleModels.PUT("/:id", canWrite, modelHandler.UpdateModel)
			vehicleModels.DELETE("/:id", canWrite, modelHandler.DeleteModel)
		}

		// 代系相关路由
		generations := api.Group("/generations")
		{
			generations.GET("", generationHandler.GetGenerations)
			generations.GET("/:id", generationHandler.GetGeneration)
			generations.POST("", canWrite, generationHandler.CreateGeneration)
			generations.PUT("/:id", canWrite, generationHandler.UpdateGeneration)
			generations.DELETE("/:id", canWrite, generationHandler.DeleteGeneration)
		}

		// 配置项及品牌配置路由
		items := api.Group("/equipment-items")
		{
			items.GET("", equipmentHandler.GetItems)
			items.POST("", canWrite, equipmentHandler.CreateItem)
			items.DELETE("/:id", canWrite, equipmentHandler.DeleteItem)
		}
		equipment := api.Group("/equipment")
		{
			equipment.GET("", equipmentHandler.GetAssignments)
			equipment.POST("", canWrite, equipmentHandler.Assign)
			equipment.DELETE("/:brandId/:itemId", canWrite, equipmentHandler.Unassign)
		}

		// 级联选择路由
		catalog := api.Group("/catalog")
		{
			catalog.GET("/options", catalogHandler.GetOptions)
			catalog.POST("/selection", catalogHandler.Reconcile)
		}

		// 选择会话路由
		sessions := api.Group("/selection-sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.PATCH("/:id", sessionHandler.UpdateSession)
			sessions.DELETE("/:id", sessionHandler.DeleteSession)
		}
	}

	return &App{
		Engine:   r,
		Sessions: sessionService,
	}
}
