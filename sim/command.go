package sim

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownAction  = errors.New("unknown steering action")
	ErrUnknownCommand = errors.New("unknown command type")
)

// CommandKind selects the kinematic operation a Command applies.
type CommandKind uint8

const (
	CommandMove CommandKind = iota + 1
	CommandRotate
)

func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "move"
	case CommandRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// ParseCommandKind maps "move" and "rotate" to their kinds.
func ParseCommandKind(s string) (CommandKind, error) {
	switch strings.ToLower(s) {
	case "move":
		return CommandMove, nil
	case "rotate":
		return CommandRotate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Command is a single motion request. Value is a distance for moves and an
// angle in radians for rotations.
type Command struct {
	Kind  CommandKind
	Value float64
}

// Move returns a command moving speed units along the heading.
func Move(speed float64) Command { return Command{Kind: CommandMove, Value: speed} }

// Rotate returns a command turning by angle radians.
func Rotate(angle float64) Command { return Command{Kind: CommandRotate, Value: angle} }

// Steer maps a named steering action onto a command. Turns are scaled by dt,
// the time one tick represents.
func (c Config) Steer(action string, dt time.Duration) (Command, error) {
	switch strings.ToLower(action) {
	case "forward":
		return Move(c.MoveSpeed), nil
	case "backward":
		return Move(-c.MoveSpeed), nil
	case "left":
		return Rotate(-c.RotateSpeed * dt.Seconds()), nil
	case "right":
		return Rotate(c.RotateSpeed * dt.Seconds()), nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}
