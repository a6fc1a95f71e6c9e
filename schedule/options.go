package schedule

// Options holds calculator settings that may override the network's own
// policy flags.
type Options struct {
	Logger      Logger
	fineGrained *bool
	coarse      *bool
	duplication int
}

// Option is a function that configures a Calculator
type Option func(*Options)

// WithLogger injects a custom Logger implementation
func WithLogger(logger Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithFineGrained turns per-tile receptive-field tracking on or off
func WithFineGrained(on bool) Option {
	return func(o *Options) {
		o.fineGrained = &on
	}
}

// WithCoarse turns coarse scheduling mode on or off
func WithCoarse(on bool) Option {
	return func(o *Options) {
		o.coarse = &on
	}
}

// WithDuplication sets the lane-duplication factor
func WithDuplication(dup int) Option {
	return func(o *Options) {
		o.duplication = dup
	}
}

func (o Options) apply(net *Network) {
	if o.fineGrained != nil {
		net.CoarseTracking = !*o.fineGrained
	}
	if o.coarse != nil {
		net.Coarse = *o.coarse
	}
	if o.duplication != 0 {
		net.Duplication = o.duplication
	}
}
