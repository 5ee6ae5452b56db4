package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-slam/api"
	api_i "github.com/beka-birhanu/vinom-slam/api/i"
	"github.com/beka-birhanu/vinom-slam/api/identity"
	"github.com/beka-birhanu/vinom-slam/api/simapi"
	"github.com/beka-birhanu/vinom-slam/config"
	"github.com/beka-birhanu/vinom-slam/infrastruture/obstaclestore"
	"github.com/beka-birhanu/vinom-slam/infrastruture/repo"
	"github.com/beka-birhanu/vinom-slam/infrastruture/token"
	"github.com/beka-birhanu/vinom-slam/service"
	"github.com/beka-birhanu/vinom-slam/service/i"
	"github.com/beka-birhanu/vinom-slam/sim"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	operatorTokenTTL = 24 * time.Hour
)

// Global variables for dependencies
var (
	envs           config.Config
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	simulation     *sim.Simulation
	runRepo        i.RunRepo
	obstacleStore  i.ObstacleStore
	recorder       *service.Recorder
	jwtTokenizer   i.Tokenizer
	simController  api_i.Controller
	authController api_i.Controller
	router         *api.Router
	appLogger      *log.Logger
)

func fatal(format string, args ...any) {
	appLogger.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func info(format string, args ...any) {
	appLogger.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, fmt.Sprintf(format, args...))
}

func initConfig() {
	var err error
	envs, err = config.Load()
	if err != nil {
		fatal("Loading config: %v", err)
	}
	gin.SetMode(envs.GinMode)
	info("Config loaded")
}

func initMongo(ctx context.Context) {
	if envs.MongoURI == "" {
		info("MONGO_URI not set, run records disabled")
		return
	}

	clientOptions := options.Client().ApplyURI(envs.MongoURI)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		fatal("Failed to connect to MongoDB: %v", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal("MongoDB ping failed: %v", err)
	}
	info("Connected to MongoDB")

	runRepo = repo.NewRunRepo(mongoClient, envs.DBName, "runs")
	info("Run repository initialized")
}

func initRedis(ctx context.Context) {
	if envs.RedisAddr == "" {
		info("REDIS_ADDR not set, obstacle log mirroring disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{Addr: envs.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal("Redis ping failed: %v", err)
	}
	info("Connected to Redis")

	var err error
	obstacleStore, err = obstaclestore.NewRedisObstacleStore(redisClient, envs.RedisTTL)
	if err != nil {
		fatal("Creating obstacle store: %v", err)
	}
	info("Obstacle store initialized")
}

func initSimulation() {
	var err error
	simulation, err = sim.New(envs.Sim)
	if err != nil {
		fatal("Creating simulation: %v", err)
	}
	info("Simulation %s ready (seed %d, %dx%d)", simulation.ID, simulation.Seed, envs.Sim.Rows, envs.Sim.Cols)
}

func initRecorder(ctx context.Context) {
	var err error
	recorder, err = service.NewRecorder(&service.RecorderConfig{
		Sim:        simulation,
		Repo:       runRepo,
		Store:      obstacleStore,
		Logger:     config.NewLogger("RECORDER", config.ColorMagenta, os.Stdout),
		FlushEvery: envs.FlushEvery,
	})
	if err != nil {
		fatal("Creating recorder: %v", err)
	}
	if err := recorder.Claim(ctx); err != nil {
		fatal("Claiming obstacle log: %v", err)
	}
	info("Recorder initialized")
}

func initJWTTokenizer() {
	secret := envs.JWTSecret
	if secret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			fatal("Generating JWT secret: %v", err)
		}
		secret = base64.URLEncoding.EncodeToString(b)
		info("JWT_SECRET not set, using a random secret for this process")
	}
	jwtTokenizer = token.NewJwtService(secret, envs.JWTIssuer)

	operatorToken, err := jwtTokenizer.Generate(map[string]any{"operator": "console", "run_id": simulation.ID.String()}, operatorTokenTTL)
	if err != nil {
		fatal("Generating operator token: %v", err)
	}
	info("Operator token (valid %s): %s", operatorTokenTTL, operatorToken)
}

func initControllers() {
	var err error
	simController, err = simapi.NewSimController(simulation, runRepo, envs.TickInterval)
	if err != nil {
		fatal("Creating simulation controller: %v", err)
	}
	authController = identity.NewOperatorController()
	info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{simController, authController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	info("Router initialized")
}

func startDriver(ctx context.Context) <-chan error {
	driverLogger := config.NewLogger("DRIVER", config.ColorCyan, os.Stdout)

	var source sim.CommandSource
	if envs.Autopilot {
		source = sim.Autopilot{Speed: envs.Sim.MoveSpeed}
	}
	driver := &sim.Driver{
		Sim:      simulation,
		Source:   source,
		Interval: envs.TickInterval,
		OnTick:   recorder.OnTick,
	}

	done := make(chan error, 1)
	go func() {
		driverLogger.Printf("%s[INFO]%s driving at %s per tick", config.LogInfoColor, config.LogColorReset, envs.TickInterval)
		done <- driver.Run(ctx)
	}()
	return done
}

func main() {
	appLogger = config.NewLogger("APP", config.ColorGreen, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initConfig()

	setupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	initMongo(setupCtx)
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
	}()
	initRedis(setupCtx)
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	initSimulation()
	initRecorder(ctx)
	defer recorder.Release()
	initJWTTokenizer()
	initControllers()
	initRouter(jwtTokenizer)

	driverDone := startDriver(ctx)

	// Run HTTP server
	if err := router.Serve(ctx); err != nil {
		appLogger.Printf("%s[ERROR]%s Serving HTTP: %v", config.LogErrorColor, config.LogColorReset, err)
		stop()
	}

	if err := <-driverDone; err != nil && ctx.Err() == nil {
		appLogger.Printf("%s[ERROR]%s Driver stopped: %v", config.LogErrorColor, config.LogColorReset, err)
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := recorder.Flush(flushCtx); err != nil {
		appLogger.Printf("%s[ERROR]%s Final flush: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	info("Stopped after %d ticks", simulation.Tick())
}
