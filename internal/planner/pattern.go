package planner

// generatePattern produces the boustrophedon fill for a single cell: horizontal
// passes spaced by the effective tool width (tool width minus the safety
// overlap), alternating direction starting left-to-right. The first pass is
// centred at bottom + toolWidth/2; a cell shorter than the tool may still get
// one centred pass, or none at all, in which case the cell contributes only
// transitions through its centre.
func (p *Planner) generatePattern(cell Cell) []Segment {
	overlap := p.toolWidth * OverlapFraction
	effectiveWidth := p.toolWidth - overlap

	var segments []Segment
	y := cell.Bottom + p.toolWidth/2
	leftToRight := true

	for y <= cell.Top+Epsilon {
		id := cell.ID
		seg := Segment{
			Start:  Point{X: cell.Left, Y: y},
			End:    Point{X: cell.Right, Y: y},
			Type:   SegmentCoverage,
			CellID: &id,
		}
		if !leftToRight {
			seg.Start, seg.End = seg.End, seg.Start
		}
		segments = append(segments, seg)

		y += effectiveWidth
		leftToRight = !leftToRight
	}
	return segments
}
