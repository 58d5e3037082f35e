// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/shopfloor-sync/models"
)

// KeyStrategy defines how a collection's primary key is obtained.
type KeyStrategy int

const (
	// KeyExplicit requires the caller to supply the key (business key).
	KeyExplicit KeyStrategy = iota
	// KeySequence assigns a surrogate integer when the key is absent.
	KeySequence
	// KeyUUID assigns a random UUID string when the key is absent.
	KeyUUID
)

func (k KeyStrategy) String() string {
	switch k {
	case KeySequence:
		return "sequence"
	case KeyUUID:
		return "uuid"
	default:
		return "explicit"
	}
}

// Index is a non-unique secondary index over a top-level record field.
type Index struct {
	Name  string
	Field string
	Since int
}

// Collection is a named partition of records sharing one key layout and index set.
type Collection struct {
	Name        string
	KeyPath     string
	Key         KeyStrategy
	Indexes     []Index
	SyncEnabled bool
	Since       int
}

// Index returns the index declared under name.
func (c Collection) Index(name string) (Index, bool) {
	for _, idx := range c.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return Index{}, false
}

// Schema is a versioned set of collection declarations.
type Schema struct {
	Name        string
	Version     int
	Collections []Collection
}

// Collection returns the declaration of name or an [models.ErrValidation]
// error when the collection is unknown.
func (s *Schema) Collection(name string) (Collection, error) {
	for _, c := range s.Collections {
		if c.Name == name {
			return c, nil
		}
	}
	return Collection{}, fmt.Errorf("%w: unknown collection %q", models.ErrValidation, name)
}

// Index resolves an index of a collection, failing with [models.ErrValidation]
// when either is unknown.
func (s *Schema) Index(collection, index string) (Collection, Index, error) {
	c, err := s.Collection(collection)
	if err != nil {
		return Collection{}, Index{}, err
	}

	idx, ok := c.Index(index)
	if !ok {
		return Collection{}, Index{}, fmt.Errorf("%w: unknown index %q on collection %q", models.ErrValidation, index, collection)
	}
	return c, idx, nil
}

// SyncCollections returns the sync-enabled collections in declaration order.
func (s *Schema) SyncCollections() []Collection {
	out := make([]Collection, 0, 2)
	for _, c := range s.Collections {
		if c.SyncEnabled {
			out = append(out, c)
		}
	}
	return out
}

// SyncCollectionNames is [Schema.SyncCollections] reduced to names.
func (s *Schema) SyncCollectionNames() []string {
	cols := s.SyncCollections()
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
	}
	return names
}

// Validate checks the declarations for internal consistency.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: schema name is empty", models.ErrValidation)
	}
	if s.Version < 1 {
		return fmt.Errorf("%w: schema version must be positive", models.ErrValidation)
	}

	seen := make(map[string]struct{}, len(s.Collections))
	for _, c := range s.Collections {
		if c.Name == "" || strings.HasPrefix(c.Name, "_") {
			return fmt.Errorf("%w: collection name %q is empty or reserved", models.ErrValidation, c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate collection %q", models.ErrValidation, c.Name)
		}
		seen[c.Name] = struct{}{}

		if c.KeyPath == "" {
			return fmt.Errorf("%w: collection %q has no key path", models.ErrValidation, c.Name)
		}
		if c.Since < 1 || c.Since > s.Version {
			return fmt.Errorf("%w: collection %q introduced in version %d outside 1..%d", models.ErrValidation, c.Name, c.Since, s.Version)
		}

		idxNames := make([]string, 0, len(c.Indexes))
		for _, idx := range c.Indexes {
			if idx.Name == "" || idx.Field == "" {
				return fmt.Errorf("%w: collection %q has an index without name or field", models.ErrValidation, c.Name)
			}
			if slices.Contains(idxNames, idx.Name) {
				return fmt.Errorf("%w: duplicate index %q on collection %q", models.ErrValidation, idx.Name, c.Name)
			}
			if idx.Since < c.Since || idx.Since > s.Version {
				return fmt.Errorf("%w: index %q on collection %q has invalid version %d", models.ErrValidation, idx.Name, c.Name, idx.Since)
			}
			idxNames = append(idxNames, idx.Name)
		}
	}

	return nil
}
