package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger. Every roll and pick is logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates a and logs the result.
func (r *Roller) Roll(a Amount) int {
	v := a.Roll(r.src)
	r.logger.Debug("amount roll",
		zap.String("expression", a.Raw),
		zap.Int("total", v),
	)
	return v
}

// Pick returns a random index in [0, n) and logs it with the given purpose.
//
// Precondition: n > 0.
func (r *Roller) Pick(purpose string, n int) int {
	i := r.src.Intn(n)
	r.logger.Debug("pick",
		zap.String("purpose", purpose),
		zap.Int("choices", n),
		zap.Int("index", i),
	)
	return i
}

// Intn satisfies Source so a Roller can stand in wherever a Source is expected.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}
