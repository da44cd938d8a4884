package ecs_test

import "github.com/plus3/blockfall/ecs"

type Position struct {
	Row, Col int
}

type Velocity struct {
	DRow, DCol int
}

type Tint struct {
	Code uint8
}

func newRegistry() *ecs.ComponentRegistry {
	r := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Tint](r)
	return r
}

func newStorage() *ecs.Storage {
	return ecs.NewStorage(newRegistry())
}
