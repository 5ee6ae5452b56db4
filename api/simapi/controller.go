package simapi

import (
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-slam/infrastruture/repo"
	"github.com/beka-birhanu/vinom-slam/service/i"
	"github.com/beka-birhanu/vinom-slam/sim"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SimController serves the state of one simulation and accepts operator commands.
type SimController struct {
	sim  i.Simulator
	runs i.RunRepo
	dt   time.Duration
}

// NewSimController initializes a SimController. runs may be nil, in which case
// stored runs cannot be looked up. dt is the time one tick represents.
func NewSimController(s i.Simulator, runs i.RunRepo, dt time.Duration) (*SimController, error) {
	if s == nil {
		return nil, errors.New("simulation is required")
	}
	return &SimController{sim: s, runs: runs, dt: dt}, nil
}

// RegisterPublic registers public routes.
func (sc *SimController) RegisterPublic(route *gin.RouterGroup) {
	simulation := route.Group("/sim")
	{
		simulation.GET("", sc.status)
		simulation.GET("/maze", sc.maze)
		simulation.GET("/obstacles", sc.obstacles)
		simulation.GET("/knowledge", sc.knowledge)
		simulation.GET("/surface.png", sc.surface)
	}
	route.GET("/runs/:ID", sc.run)
}

// RegisterProtected registers protected routes.
func (sc *SimController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/sim/commands", sc.commands)
}

func (sc *SimController) status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, statusFrom(sc.sim.Snapshot()))
}

func (sc *SimController) maze(ctx *gin.Context) {
	m := sc.sim.Maze()
	if ctx.Query("format") == "ascii" {
		ctx.String(http.StatusOK, m.String())
		return
	}
	ctx.JSON(http.StatusOK, mazeFrom(m))
}

func (sc *SimController) obstacles(ctx *gin.Context) {
	log := sc.sim.ObstaclesSince(0)
	resp := ObstaclesResponse{Count: len(log), Obstacles: make([]PointResponse, len(log))}
	for idx, p := range log {
		resp.Obstacles[idx] = PointResponse{X: p.X, Y: p.Y}
	}
	ctx.JSON(http.StatusOK, resp)
}

func (sc *SimController) knowledge(ctx *gin.Context) {
	cells := sc.sim.Snapshot().Knowledge
	ctx.JSON(http.StatusOK, KnowledgeResponse{Count: len(cells), Cells: cells})
}

func (sc *SimController) surface(ctx *gin.Context) {
	ctx.Header("Content-Type", "image/png")
	ctx.Status(http.StatusOK)
	if err := png.Encode(ctx.Writer, sc.sim.Surface()); err != nil {
		_ = ctx.Error(err)
	}
}

func (sc *SimController) run(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}
	if sc.runs == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "run storage is not configured"})
		return
	}

	record, err := sc.runs.ByID(ID)
	if err != nil {
		if errors.Is(err, repo.ErrRunNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading run"})
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// commands queues operator commands for the next tick.
func (sc *SimController) commands(ctx *gin.Context) {
	var request CommandsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reqs := request.Commands
	if len(reqs) == 0 && request.CommandRequest != (CommandRequest{}) {
		reqs = []CommandRequest{request.CommandRequest}
	}
	if len(reqs) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no commands"})
		return
	}

	cfg := sc.sim.Config()
	cmds := make([]sim.Command, 0, len(reqs))
	for idx, r := range reqs {
		cmd, err := toCommand(cfg, sc.dt, r)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("command %d: %s", idx, err)})
			return
		}
		cmds = append(cmds, cmd)
	}

	sc.sim.Enqueue(cmds...)
	ctx.JSON(http.StatusAccepted, gin.H{"queued": len(cmds)})
}

func toCommand(cfg sim.Config, dt time.Duration, r CommandRequest) (sim.Command, error) {
	if r.Action != "" {
		return cfg.Steer(r.Action, dt)
	}
	kind, err := sim.ParseCommandKind(r.Type)
	if err != nil {
		return sim.Command{}, err
	}
	return sim.Command{Kind: kind, Value: r.Value}, nil
}
