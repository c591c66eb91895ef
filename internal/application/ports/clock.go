package ports

import "time"

// Clock fuente de la hora actual.
type Clock interface {
	Now() time.Time
}

// IDGenerator produce identificadores únicos.
type IDGenerator interface {
	NewID() string
}
