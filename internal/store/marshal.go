package store

import (
	"encoding/json"
	"fmt"
)

// marshalNames serializes a names list as a JSON array.
// Names are stored verbatim; nil is stored as [].
func marshalNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("marshal names: %w", err)
	}
	return string(data), nil
}

// unmarshalNames parses a JSON array of names. Never returns nil on success.
func unmarshalNames(data string) ([]string, error) {
	names := []string{}
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, fmt.Errorf("unmarshal names: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
