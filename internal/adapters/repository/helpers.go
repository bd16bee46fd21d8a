package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Ordering and collaborator lists are stored as text[] columns and
// travel through pq.StringArray.

func uuidsToArray(ids []uuid.UUID) pq.StringArray {
	arr := make(pq.StringArray, len(ids))
	for i, id := range ids {
		arr[i] = id.String()
	}
	return arr
}

func arrayToUUIDs(arr pq.StringArray) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(arr))
	for i, s := range arr {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse stored uuid %q: %w", s, err)
		}
		ids[i] = id
	}
	return ids, nil
}
