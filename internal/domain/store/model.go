package store

import (
	"time"
)

// Store — магазин сети. Реестр магазинов ведется внешней подсистемой;
// движку синхронизации нужны только идентификатор и отображаемое имя.
type Store struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
