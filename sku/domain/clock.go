package domain

import "time"

// Clock é a única dependência de ambiente do gerador.
type Clock interface {
	Now() time.Time
}
