package config

import "github.com/go-gl/mathgl/mgl64"

// LevelConfig is the root config for level files
type LevelConfig struct {
	ID          string                       `json:"id" yaml:"id"`
	Name        string                       `json:"name" yaml:"name"`
	Grid        GridConfig                   `json:"grid" yaml:"grid"`
	PlayerSpawn SpawnConfig                  `json:"playerSpawn" yaml:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers" yaml:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping" yaml:"tileMapping"`
	Boxes       []BoxConfig                  `json:"boxes" yaml:"boxes"`
	Ramps       []RampConfig                 `json:"ramps" yaml:"ramps"`
}

// GridConfig sizes the top-down collision layout. Row i covers
// z in [i*cell, (i+1)*cell), column j covers x in [j*cell, (j+1)*cell).
type GridConfig struct {
	CellSize     float64 `json:"cellSize" yaml:"cellSize"`
	FloorY       float64 `json:"floorY" yaml:"floorY"`
	FloorLayer   uint32  `json:"floorLayer" yaml:"floorLayer"`
	NoFloor      bool    `json:"noFloor" yaml:"noFloor"`
	FloorOverlap float64 `json:"floorOverlap" yaml:"floorOverlap"` // thickness below FloorY
}

type SpawnConfig struct {
	Position mgl64.Vec3 `json:"position" yaml:"position"`
	Yaw      float64    `json:"yaw" yaml:"yaw"`
}

type LayersConfig struct {
	Collision []string `json:"collision" yaml:"collision"`
}

type TileMappingConfig struct {
	Type   string  `json:"type" yaml:"type"`
	Solid  bool    `json:"solid" yaml:"solid"`
	Height float64 `json:"height" yaml:"height"`
	Layer  uint32  `json:"layer" yaml:"layer"`
}

// BoxConfig is an axis-aligned solid. Velocity and AngularVelocityY make it
// a moving platform; Travel > 0 makes it reverse after that distance.
type BoxConfig struct {
	Min              mgl64.Vec3 `json:"min" yaml:"min"`
	Max              mgl64.Vec3 `json:"max" yaml:"max"`
	Layer            uint32     `json:"layer" yaml:"layer"`
	Velocity         mgl64.Vec3 `json:"velocity" yaml:"velocity"`
	AngularVelocityY float64    `json:"angularVelocityY" yaml:"angularVelocityY"` // degrees per second
	Travel           float64    `json:"travel" yaml:"travel"`
}

// RampConfig is an inclined walkable plane over the XZ footprint
// [Min.X, Max.X] x [Min.Z, Max.Z]. Height rises linearly along +Z from
// Min.Y to Max.Y.
type RampConfig struct {
	Min   mgl64.Vec3 `json:"min" yaml:"min"`
	Max   mgl64.Vec3 `json:"max" yaml:"max"`
	Layer uint32     `json:"layer" yaml:"layer"`
}
