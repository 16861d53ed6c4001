package remap

import "github.com/pkg/errors"

var (
	ErrMalformedRow        = errors.New("row must hold destination start, source start and length")
	ErrEmptyMapping        = errors.New("mapping length must be greater than 0")
	ErrMappingOverflow     = errors.New("mapping overflows uint64")
	ErrOverlappingMappings = errors.New("mappings overlap")
	ErrDuplicateStage      = errors.New("stage already has a table")
	ErrDuplicateName       = errors.New("descriptor name declared twice")
	ErrStageCycle          = errors.New("stage chain must not contain a cycle")
	ErrUnknownSection      = errors.New("rows reference an undeclared stage")
	ErrNoStages            = errors.New("at least one stage must be declared")
	ErrNoChain             = errors.New("no mapping chain reaches the terminal stage")
	ErrRangeOverflow       = errors.New("range overflows uint64")
	ErrPipelineMustBeSet   = errors.New("pipeline must be set")
	ErrUnknownStrategy     = errors.New("unknown search strategy")
)
