package document

// Level grades a document against webmail clipping limits.
type Level string

const (
	LevelOK   Level = "ok"
	LevelWarn Level = "warn"
	// LevelClip means Gmail will likely hide the end of the message.
	LevelClip Level = "clip"
)

const (
	DefaultWarnKB = 80.0
	DefaultClipKB = 102.0
)

// SizeKB is the UTF-8 size of doc in kilobytes.
func SizeKB(doc string) float64 {
	return float64(len(doc)) / 1024
}

// SizeLevel grades doc with the default thresholds.
func SizeLevel(doc string) Level {
	return SizeLevelWith(doc, DefaultWarnKB, DefaultClipKB)
}

// SizeLevelWith grades doc against warnKB and clipKB. Zero thresholds use
// the defaults.
func SizeLevelWith(doc string, warnKB, clipKB float64) Level {
	if warnKB <= 0 {
		warnKB = DefaultWarnKB
	}
	if clipKB <= 0 {
		clipKB = DefaultClipKB
	}
	kb := SizeKB(doc)
	switch {
	case kb > clipKB:
		return LevelClip
	case kb > warnKB:
		return LevelWarn
	}
	return LevelOK
}
