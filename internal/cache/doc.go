// Package cache provides a small generic LRU cache.
//
// The tessellators keep their fixed-count vertex and index templates in a
// Cache keyed by resolve level or edge count. Templates are built once on a
// miss and handed to the eviction callback when they fall out, so GPU copies
// can be released with them.
//
//	c := cache.New[int, []byte](8)
//	buf := c.GetOrCreate(5, func() []byte { return build(5) })
//
// A Cache is safe for concurrent use and must not be copied after creation.
package cache
