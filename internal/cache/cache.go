// Package cache defines the read-cache contract used by the repositories.
package cache

type Cache interface {
	Get(key string) (interface{}, bool)
	Add(key string, value interface{})
	Delete(key string)
}
