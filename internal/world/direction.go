package world

import (
	"fmt"
	"strings"
)

// Direction is one of the four grid headings, or None.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Cardinals lists the movable headings. Iteration order breaks ties in
// monster decisions, so keep it stable.
var Cardinals = [4]Direction{Up, Down, Left, Right}

// Delta returns the unit grid step for d; screen y grows downward.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}


func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection accepts the lowercase or uppercase heading names used in level files.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "north":
		return Up, nil
	case "down", "south":
		return Down, nil
	case "left", "west":
		return Left, nil
	case "right", "east":
		return Right, nil
	case "", "none":
		return None, nil
	default:
		return None, fmt.Errorf("unknown direction %q", s)
	}
}

// UnmarshalYAML lets level files spell headings as words.
func (d *Direction) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
