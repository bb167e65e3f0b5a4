package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container накапливает middleware для очередного обработчика.
// Используется при сборке API: каждый обработчик забирает свой
// набор через GetAllAndClear.
type Container struct {
	middlewares huma.Middlewares
}

// NewContainer создает пустой контейнер middleware
func NewContainer() *Container {
	return &Container{}
}

// Add добавляет middleware в контейнер
func (c *Container) Add(mw func(huma.Context, func(huma.Context))) {
	c.middlewares = append(c.middlewares, mw)
}

// GetAllAndClear возвращает накопленные middleware и очищает контейнер
func (c *Container) GetAllAndClear() huma.Middlewares {
	mws := c.middlewares
	c.middlewares = nil
	return mws
}
