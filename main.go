package main

import (
	"fmt"
	"net/http"
	"time"

	"authcenter/auth"
	"authcenter/config"
	"authcenter/controllers"
	"authcenter/database"
	"authcenter/files"
	"authcenter/repositories"
	"authcenter/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"go.uber.org/zap"
)

// AccessLog logs every request after it completes.
func AccessLog(logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		startTime := time.Now()

		chain.ProcessFilter(req, resp)

		logger.Info("Request",
			zap.String("client_ip", req.Request.RemoteAddr),
			zap.String("method", req.Request.Method),
			zap.Int("status_code", resp.StatusCode()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("user_agent", req.Request.UserAgent()),
			zap.String("path", req.Request.URL.Path),
		)
	}
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "authcenter API",
			Description: "Users, roles, JWT auth and posts",
			Version:     "1.0",
		},
	}
}

func main() {
	// Initialize configs
	config.InitConfig()
	cfg := config.AppConfig

	var logger *zap.Logger
	switch cfg.LogLevel {
	case "debug":
		logger, _ = zap.NewDevelopment()
	default:
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync() // Make sure the buffer is flushed before the program exits

	if cfg.JwtSecret == "default-very-insecure-secret-key" {
		logger.Warn("Using the default JWT secret; set AUTHCENTER_JWT_SECRET in production")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}
	// Registration cannot work without the seed roles, so fail at startup
	// rather than on the first request.
	if err := database.SeedRoles(db); err != nil {
		logger.Fatal("Failed to seed roles", zap.Error(err))
	}

	store, err := files.NewStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("Failed to initialize file store", zap.Error(err))
	}

	tokens := auth.NewTokenService([]byte(cfg.JwtSecret), time.Duration(cfg.TokenTTLHours)*time.Hour)
	authFilter := auth.Filter(tokens)

	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	postRepo := repositories.NewPostRepository(db)

	authService := services.NewAuthService(userRepo, roleRepo, tokens, cfg.BcryptCost)
	userService := services.NewUserService(userRepo, roleRepo)
	roleService := services.NewRoleService(roleRepo)
	postService := services.NewPostService(postRepo, store)

	container := restful.NewContainer()
	container.Filter(AccessLog(logger))

	authWS := new(restful.WebService)
	controllers.NewAuthController(authService).RegisterRoutes(authWS)
	container.Add(authWS)

	userWS := new(restful.WebService)
	controllers.NewUserController(userService, authFilter).RegisterRoutes(userWS)
	container.Add(userWS)

	roleWS := new(restful.WebService)
	controllers.NewRoleController(roleService, authFilter).RegisterRoutes(roleWS)
	container.Add(roleWS)

	postWS := new(restful.WebService)
	controllers.NewPostController(postService, authFilter).RegisterRoutes(postWS)
	container.Add(postWS)

	// OpenAPI document for everything registered above
	apiConfig := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/apidocs.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(apiConfig))

	// Uploaded post images
	container.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(store.Dir()))))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Starting server", zap.String("service", cfg.ServiceName), zap.String("addr", addr))
	if err := http.ListenAndServe(addr, container); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
