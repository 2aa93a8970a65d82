package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/backtracking-maze/api"
	api_i "github.com/beka-birhanu/backtracking-maze/api/i"
	"github.com/beka-birhanu/backtracking-maze/api/identity"
	"github.com/beka-birhanu/backtracking-maze/api/mazeapi"
	"github.com/beka-birhanu/backtracking-maze/config"
	logger "github.com/beka-birhanu/backtracking-maze/infrastruture/log"
	"github.com/beka-birhanu/backtracking-maze/infrastruture/repo"
	"github.com/beka-birhanu/backtracking-maze/infrastruture/sortedstorage"
	"github.com/beka-birhanu/backtracking-maze/infrastruture/token"
	"github.com/beka-birhanu/backtracking-maze/service"
	"github.com/beka-birhanu/backtracking-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	recentMazesKey    = "mazes:recent"
	generationTimeout = 10 * time.Second
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	userRepo       *repo.UserRepo
	mazeRepo       *repo.MazeRepo
	mazeIndex      i.MazeIndex
	mazeService    i.MazeService
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	authController api_i.Controller
	mazeController api_i.Controller
	router         *api.Router
	appLogger      i.Logger
)

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(ctx context.Context) {
	userRepo = repo.NewUserRepo(mongoClient, config.Envs.DBName, "users")
	mazeRepo = repo.NewMazeRepo(mongoClient, config.Envs.DBName, "mazes")
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		os.Exit(1)
	}
	if err := mazeRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Repositories initialized")
}

func initMazeIndex() {
	var err error
	mazeIndex, err = sortedstorage.NewRedisRecentIndex(redisClient, recentMazesKey, int64(config.Envs.RecentMazesLimit))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating recent maze index: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Recent maze index initialized")
}

func initMazeService() {
	var err error
	mazeService, err = service.NewMazeService(service.MazeConfig{
		Repo:         mazeRepo,
		Index:        mazeIndex,
		Logger:       newLogger("MAZE-SERVICE", config.ColorCyan),
		MaxDimension: config.Envs.MaxMazeDimension,
		RecentLimit:  int64(config.Envs.RecentMazesLimit),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	ttl := time.Duration(config.Envs.JWTTTLHours) * time.Hour
	authService, err = service.NewAuthService(userRepo, jwtTokenizer, ttl, newLogger("AUTH", config.ColorMagenta))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService, newLogger("HTTP", config.ColorBlue), generationTimeout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	l, err := logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating APP logger: %v\n", err)
		os.Exit(1)
	}
	appLogger = l
	if err := logger.SetLevel(config.Envs.LogLevel); err != nil {
		appLogger.Warning(fmt.Sprintf("Unknown log level %q, keeping default: %v", config.Envs.LogLevel, err))
	}

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRedis(ctx)
	defer redisClient.Close()

	initRepos(ctx)
	initMazeIndex()
	initMazeService()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
