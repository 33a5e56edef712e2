package core

// PointerZoneAction maps a pointer press inside area to a game action.
//
// The area is split into thirds horizontally: the left third moves left and
// the right third moves right. The middle column is split into thirds
// vertically: top rotates, bottom soft-drops and the center hard-drops.
// Presses outside the area map to ActionNone.
func PointerZoneAction(area Rect, x, y int) Action {
	if area.W <= 0 || area.H <= 0 || !area.Contains(x, y) {
		return ActionNone
	}

	rx := x - area.X
	ry := y - area.Y
	colW := area.W / 3
	rowH := area.H / 3

	switch {
	case rx < colW:
		return ActionLeft
	case rx >= area.W-colW:
		return ActionRight
	case ry < rowH:
		return ActionUp
	case ry >= area.H-rowH:
		return ActionDown
	default:
		return ActionHardDrop
	}
}
