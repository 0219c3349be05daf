// Package impl_platform provides the production clock and id generator.
package impl_platform

import (
	"time"

	"github.com/google/uuid"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewUUID() uuid.UUID { return uuid.New() }
