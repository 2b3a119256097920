package loop

// Cue identifies a sound the engine asks its audio sink to play.
type Cue uint8

const (
	CueHit Cue = iota
	CueBrickDestroy
	CuePortal
	CueLevelComplete
	CueGameOver
)

var cueNames = [...]string{"hit", "brick-destroy", "portal", "level-complete", "game-over"}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// AudioSink receives fire-and-forget sound cues. Play must not block the tick.
type AudioSink interface {
	Play(cue Cue)
}

// AudioFunc adapts a plain function to AudioSink.
type AudioFunc func(cue Cue)

// Play implements AudioSink.
func (f AudioFunc) Play(cue Cue) { f(cue) }

func (s *Session) play(cue Cue) {
	if s.audio != nil {
		s.audio.Play(cue)
	}
}
