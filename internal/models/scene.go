package models

import "time"

// Scene represents an illustrated picture with findable objects. Students
// tap an object in the picture and spell its word.
type Scene struct {
	ID        int64
	TeacherID int64
	WordSetID int64
	Title     string
	ImagePath string // generated image, relative to the static root
	Width     int
	Height    int
	CreatedAt time.Time
}

// SceneObject represents one findable object in a scene, linked to the word
// the student must spell when they find it.
type SceneObject struct {
	ID      int64
	SceneID int64
	WordID  int64
	Label   string
	Region  Region
}

// RegionKind discriminates the two hit-area shapes
type RegionKind string

const (
	// RegionPoint is a centre point with a tap radius
	RegionPoint RegionKind = "point"
	// RegionBox is an axis-aligned bounding box
	RegionBox RegionKind = "box"
)

// Region is the hit area of a scene object in image pixel coordinates.
// Point regions use X, Y and Radius; box regions use X, Y (top-left),
// Width and Height.
type Region struct {
	Kind   RegionKind
	X      float64
	Y      float64
	Radius float64
	Width  float64
	Height float64
}

// Contains reports whether the tap coordinates land inside the region
func (r Region) Contains(x, y float64) bool {
	switch r.Kind {
	case RegionPoint:
		dx, dy := x-r.X, y-r.Y
		return dx*dx+dy*dy <= r.Radius*r.Radius
	case RegionBox:
		return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
	default:
		return false
	}
}
