// Package strpool pools strings.Builder instances for text assembly on
// hot paths.
package strpool

import (
	"strings"
	"sync"
)

var pool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func Get() *strings.Builder {
	return pool.Get().(*strings.Builder)
}

// Put returns a builder to the pool. Callers reset it first; a pooled
// builder keeps its contents otherwise.
func Put(b *strings.Builder) {
	pool.Put(b)
}
