package core

import (
	"github.com/google/uuid"
)

// Player is one side of a game session
type Player struct {
	ID    string `json:"id"`
	Color Color  `json:"color"`
	Name  string `json:"name,omitempty"`
}

// PlayerConfig for API requests
type PlayerConfig struct {
	Name string `json:"name,omitempty" validate:"omitempty,max=40"`
}

// NewPlayer creates a Player from PlayerConfig
func NewPlayer(config PlayerConfig, color Color) *Player {
	name := config.Name
	if name == "" {
		name = color.Name()
	}
	return &Player{
		ID:    uuid.New().String(),
		Color: color,
		Name:  name,
	}
}
