package idgen

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	StrategyUUID     = "uuid"
	StrategySequence = "sequence"
)

type Generator interface {
	NewID() string
}

func New(strategy string) (Generator, error) {
	switch strategy {
	case StrategyUUID, "":
		return UUID{}, nil
	case StrategySequence:
		return NewSequence(0), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}

type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence hands out decimal ids starting after start. Safe for concurrent use.
type Sequence struct {
	last atomic.Int64
}

func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.last.Store(start)
	return s
}

func (s *Sequence) NewID() string {
	return strconv.FormatInt(s.last.Add(1), 10)
}
