package tetris

// GravityTimer counts simulation ticks towards the next automatic drop.
// A negative target never fires.
type GravityTimer struct {
	elapsed int64
	target  int64
}

func NewGravityTimer(target int64) *GravityTimer {
	return &GravityTimer{target: target}
}

func (t *GravityTimer) Tick() { t.elapsed++ }

func (t GravityTimer) IsFinished() bool {
	if t.target < 0 {
		return false
	}
	return t.target <= t.elapsed
}

func (t *GravityTimer) Reset() { t.elapsed = 0 }

// ForceFinish makes the next IsFinished report true without another Tick.
func (t *GravityTimer) ForceFinish() { t.elapsed = t.target }

// SetTarget changes the drop cadence; elapsed ticks are kept.
func (t *GravityTimer) SetTarget(target int64) { t.target = target }

func (t GravityTimer) Elapsed() int64 { return t.elapsed }
func (t GravityTimer) Target() int64 { return t.target }
