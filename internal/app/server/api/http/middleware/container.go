package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container собирает middleware для следующего хендлера.
type Container struct {
	mws huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw func(huma.Context, func(huma.Context))) *Container {
	c.mws = append(c.mws, mw)
	return c
}

// GetAllAndClear возвращает middleware в порядке добавления и очищает контейнер.
func (c *Container) GetAllAndClear() huma.Middlewares {
	mws := c.mws
	c.mws = nil
	if mws == nil {
		return huma.Middlewares{}
	}
	return mws
}
