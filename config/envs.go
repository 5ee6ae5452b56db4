package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-slam/sim"
	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP       string        // Host IP for the server
	RESTPort     int           // Port for the REST API
	GinMode      string        // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret    string        // Secret key for JWT signing
	JWTIssuer    string        // Issuer claim for JWTs
	RedisAddr    string        // Redis address for the obstacle log store; empty disables it
	RedisTTL     int           // Seconds an obstacle log survives after its last write
	MongoURI     string        // MongoDB connection URI for run records; empty disables it
	DBName       string        // Name of the database
	TickInterval time.Duration // Wall time between simulation ticks
	FlushEvery   int64         // Ticks between recorder flushes
	Autopilot    bool          // Drive forward every tick without operator input
	Sim          sim.Config    // Simulation tunables
}

// Load reads a .env file if present and builds the configuration from the
// environment. Unset variables take their defaults.
func Load() (Config, error) {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("%s[INFO]%s .env file not found or could not be loaded: %v", LogInfoColor, LogColorReset, err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (Config, error) {
	p := &parser{}

	s := sim.DefaultConfig()
	s.Rows = p.getInt("MAZE_ROWS", s.Rows)
	s.Cols = p.getInt("MAZE_COLS", s.Cols)
	s.CellSize = p.getInt("CELL_SIZE", s.CellSize)
	s.WallWidth = p.getInt("WALL_WIDTH", s.WallWidth)
	s.StartX = p.getFloat("START_X", s.StartX)
	s.StartY = p.getFloat("START_Y", s.StartY)
	s.SensorRange = p.getFloat("SENSOR_RANGE", s.SensorRange)
	s.FOV = p.getFloat("FOV_DEGREES", s.FOV*180/math.Pi) * math.Pi / 180
	s.RayCount = p.getInt("RAY_COUNT", s.RayCount)
	s.MoveSpeed = p.getFloat("MOVE_SPEED", s.MoveSpeed)
	s.RotateSpeed = p.getFloat("ROTATE_SPEED", s.RotateSpeed)
	s.AvoidThreshold = p.getFloat("AVOID_THRESHOLD", s.AvoidThreshold)
	s.WallTolerance = uint8(p.getIntInRange("WALL_TOLERANCE", int(s.WallTolerance), 0, 255))
	s.Seed = int64(p.getInt("MAZE_SEED", 0))

	c := Config{
		HostIP:       getEnvWithDefault("HOST_IP", "127.0.0.1"),
		RESTPort:     p.getInt("REST_PORT", 8080),
		GinMode:      getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:    getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:    getEnvWithDefault("JWT_ISSUER", "vinom-slam"),
		RedisAddr:    getEnvWithDefault("REDIS_ADDR", ""),
		RedisTTL:     p.getInt("REDIS_TTL_SECONDS", 3600),
		MongoURI:     getEnvWithDefault("MONGO_URI", ""),
		DBName:       getEnvWithDefault("DB_NAME", "vinom_slam"),
		TickInterval: time.Duration(p.getInt("TICK_MS", 16)) * time.Millisecond,
		FlushEvery:   int64(p.getInt("FLUSH_EVERY", 60)),
		Autopilot:    p.getBool("AUTOPILOT", true),
		Sim:          s,
	}

	if p.err != nil {
		return Config{}, p.err
	}
	if err := c.Sim.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// parser keeps the first conversion error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) getInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		p.fail(key, "an integer", err)
		return defaultValue
	}
	return v
}

func (p *parser) getIntInRange(key string, defaultValue, lo, hi int) int {
	v := p.getInt(key, defaultValue)
	if v < lo || v > hi {
		p.fail(key, fmt.Sprintf("in [%d, %d]", lo, hi), fmt.Errorf("got %d", v))
		return defaultValue
	}
	return v
}

func (p *parser) getFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.fail(key, "a number", err)
		return defaultValue
	}
	return v
}

func (p *parser) getBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		p.fail(key, "a boolean", err)
		return defaultValue
	}
	return v
}

func (p *parser) fail(key, want string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("environment variable %s must be %s: %w", key, want, err)
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
