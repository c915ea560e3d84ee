package main

import (
	"fmt"

	markup "github.com/alnah/go-markup"
)

// poolAdapter exposes a *markup.ConverterPool through the Pool interface.
type poolAdapter struct {
	pool *markup.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newConverterPool is the production PoolFactory.
func newConverterPool(size int, opts ...markup.Option) (Pool, error) {
	pool, err := markup.NewConverterPool(size, opts...)
	if err != nil {
		return nil, err
	}
	return &poolAdapter{pool: pool}, nil
}

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics when given a converter the pool did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*markup.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
