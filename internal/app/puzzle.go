package app

import (
	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/palette"
	"github.com/irfansharif/tangram/internal/tangram"
)

// Puzzle pairs a target silhouette with the tangram being assembled to match
// it. Target is centered on the origin; tans of Actual start out staged.
type Puzzle struct {
	Target  *tangram.Tangram
	Actual  *tangram.Tangram
	Palette palette.Palette

	translation geom.Point // staging offset, moves with Translate
}

// NewPuzzle builds the target shape from transforms and stages every tan of
// a fresh working tangram.
func NewPuzzle(d *tangram.Dissection, transforms []tangram.Transform, pal palette.Palette) (*Puzzle, error) {
	target, err := tangram.CreateShape(d, transforms)
	if err != nil {
		return nil, err
	}
	target.Center()

	actual, err := tangram.NewTangram(d)
	if err != nil {
		return nil, err
	}
	p := &Puzzle{Target: target, Actual: actual, Palette: pal}
	for _, tan := range actual.Tans() {
		p.ResetTan(tan)
	}
	return p, nil
}

// ResetTan sends tan back to its staging position.
func (p *Puzzle) ResetTan(tan *tangram.Tan) {
	p.Actual.StageTan(tan, p.translation)
}

// SelectTan tries to bring a staged tan into play where it lies. It reports
// whether the tan could be placed, in which case it is also snapped.
func (p *Puzzle) SelectTan(tan *tangram.Tan) bool {
	tan.Active = true
	if !p.Actual.PlaceTan(tan, tan.Position(), tan.Rotation(), tangram.DefaultPlacement) {
		tan.Active = false
		return false
	}
	p.Actual.SnapTan(tan, tangram.DefaultSnap)
	return true
}

// MoveTan drags tan to position. A legal pose activates and snaps the tan;
// otherwise it follows the pointer anyway, deactivated.
func (p *Puzzle) MoveTan(tan *tangram.Tan, position geom.Point) bool {
	if p.Actual.PlaceTan(tan, position, tan.Rotation(), tangram.DefaultPlacement) {
		tan.Active = true
		p.Actual.SnapTan(tan, tangram.DefaultSnap)
		return true
	}
	tan.Active = false
	tan.Transform(position, tan.Rotation())
	return false
}

// RotateTan turns tan towards angle, snapped to the rotation grid and the
// tan's own edge directions. The tan stays active only if it collides with
// nothing.
func (p *Puzzle) RotateTan(tan *tangram.Tan, angle float64) {
	rotation := tan.SnapRotation(angle)
	if rotation == tan.Rotation() {
		return
	}
	tan.Transform(tan.Position(), rotation)
	tan.Active = !p.Actual.HasCollisions(tan, tangram.CollisionEps)
}

// Translate drags the whole working tangram, staging area included.
func (p *Puzzle) Translate(delta geom.Point) {
	p.translation = p.translation.Add(delta)
	for _, tan := range p.Actual.Tans() {
		tan.Transform(tan.Position().Add(delta), tan.Rotation())
	}
}

// Solve places every tan of the working tangram on the target.
func (p *Puzzle) Solve() {
	for i, tr := range p.Target.Transforms() {
		tan := p.Actual.Tan(i)
		tan.Transform(tr.Position, tr.Rotation)
		tan.Active = true
	}
}

// Solved reports whether the working tangram forms one complete shape.
func (p *Puzzle) Solved() bool {
	return p.Actual.IsShapeFull(tangram.TouchEps)
}
