package almanac

import "github.com/pkg/errors"

var (
	ErrMalformedSeeds    = errors.New("seeds must be unsigned integers")
	ErrOddSeeds          = errors.New("seed ranges need an even number of seeds")
	ErrMalformedHeader   = errors.New("section header must look like <from>-to-<to> map:")
	ErrDuplicateSection  = errors.New("section declared twice")
	ErrRowOutsideSection = errors.New("row must follow a section header")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingStage      = errors.New("map must set from and to")
)
