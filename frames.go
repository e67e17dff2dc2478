package sprite

// buildFrames cuts the validated source rectangle into frame sub-bitmaps,
// row-major: left to right, then top to bottom.
func (info *Info) buildFrames() {
	cols := info.rect.Width / info.frameW
	rows := info.rect.Height / info.frameH
	info.frames = make([]Image, 0, cols*rows)
	for i := 0; i < cols*rows; i++ {
		r := info.FrameRect(i)
		info.frames = append(info.frames, info.sheet.Shared(r.X, r.Y, r.Width, r.Height))
	}
}
