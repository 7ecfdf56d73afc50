// Package storage provides persistence drivers for the library store port.
// Every driver stores the collection as one versioned JSON document per
// library, rewritten in full on each save.
package storage

import "github.com/example/dvd-catalog/internal/library"

const docVersion = 1

type document struct {
	Version int            `json:"version"`
	Items   []library.Item `json:"items"`
}
