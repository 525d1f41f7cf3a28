// internal/domain/models/roster.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ContainsID reports whether ids contains id.
func ContainsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// UniqueIDs returns ids with later duplicates removed, keeping first-seen order.
// The result is never nil.
func UniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AppendUnique appends each id in add that is not already present in roster.
func AppendUnique(roster []primitive.ObjectID, add ...primitive.ObjectID) []primitive.ObjectID {
	out := UniqueIDs(roster)
	for _, id := range add {
		if !ContainsID(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// RemoveID returns roster without any occurrence of id. The result is never nil.
func RemoveID(roster []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(roster))
	for _, v := range roster {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ParseIDs converts hex strings to ObjectIDs. Malformed values are returned
// separately; they cannot name any stored document.
func ParseIDs(hexes []string) (ids []primitive.ObjectID, invalid []string) {
	ids = make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		oid, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			invalid = append(invalid, h)
			continue
		}
		ids = append(ids, oid)
	}
	return ids, invalid
}
