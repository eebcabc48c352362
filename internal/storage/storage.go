// Package storage holds what every document backend shares: the I/O error
// kind and the JSON encoding of a snapshot.
//
// Each backend persists the whole document at once. Load and Save are not
// coordinated across requests: two requests that load the same version and
// both save will lose the first write. That is the accepted consistency model.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"staff_portal/internal/models"
)

var ErrIO = errors.New("storage i/o failure")

// Empty returns a snapshot with every collection present and empty.
func Empty() *models.Snapshot {
	s := &models.Snapshot{}
	normalize(s)

	return s
}

var errNotDocument = errors.New("document is blank or null")

// Decode parses a persisted document. Keys the models do not know are kept
// and written back by Encode. Blank or null content is not a document.
func Decode(data []byte) (*models.Snapshot, error) {
	const op = "storage.Decode"

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrIO, errNotDocument)
	}

	var s models.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrIO, err)
	}

	normalize(&s)

	return &s, nil
}

// Encode renders a snapshot with two-space indentation.
func Encode(s *models.Snapshot) ([]byte, error) {
	const op = "storage.Encode"

	normalize(s)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrIO, err)
	}

	return data, nil
}

// Clone deep-copies a snapshot through its encoding.
func Clone(s *models.Snapshot) (*models.Snapshot, error) {
	data, err := Encode(s)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// normalize keeps empty collections encoded as [] rather than null.
func normalize(s *models.Snapshot) {
	if s.Users == nil {
		s.Users = []models.User{}
	}
	if s.Employees == nil {
		s.Employees = []models.Employee{}
	}
	if s.Managers == nil {
		s.Managers = []models.Manager{}
	}
	if s.Admins == nil {
		s.Admins = []models.Admin{}
	}
	if s.Messages == nil {
		s.Messages = []models.Message{}
	}
}
