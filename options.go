package gringottsdb

import "go.uber.org/zap"

// config holds the tunables a caller can override via Option when creating
// or opening a database.
type config struct {
	blockSizeKiB uint8
	logger       *zap.SugaredLogger
}

func defaultConfig() *config {
	return &config{
		blockSizeKiB: defaultBlockSizeKiB,
		logger:       zap.NewNop().Sugar(),
	}
}

// Option configures a database handle at Create or Open time.
type Option func(*config)

// WithBlockSizeKiB overrides the block size, in kibibytes, used when
// creating a new database. It has no effect on Open: block size is fixed
// at creation and read back from the file's header block. The default is
// 4 (4 KiB blocks).
func WithBlockSizeKiB(kib uint8) Option {
	return func(c *config) {
		c.blockSizeKiB = kib
	}
}

// WithLogger overrides the structured logger used for debug tracing of
// seeks, reads, writes, and tree-descent steps. The default is a no-op
// logger: a library stays silent until a caller opts into output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
