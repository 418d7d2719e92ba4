package tempdir

import (
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/op/go-logging"
	"github.com/spf13/afero"
)

const loggerModule = "tempdir"

type options struct {
	fs       afero.Fs
	clock    clockwork.Clock
	logger   *logging.Logger
	tempBase string
}

// Option mutates handle construction settings.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	if o.clock == nil {
		o.clock = clockwork.NewRealClock()
	}
	if o.logger == nil {
		o.logger = logging.MustGetLogger(loggerModule)
	}
	if o.tempBase == "" {
		o.tempBase = os.TempDir()
	}

	return o
}

// WithFs sets the filesystem the directory lives on. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithClock overrides the clock used to timestamp directory names.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTempBase overrides the system temporary directory.
func WithTempBase(path string) Option {
	return func(o *options) {
		if path != "" {
			o.tempBase = path
		}
	}
}
