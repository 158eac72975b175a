package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainSnapshot separates snapshot digests from any other hash family.
// The version suffix enables future algorithm migration.
const DomainSnapshot = "allstar/snapshot/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SnapshotDigest computes the content-addressed digest of an export list.
// Two namespaces with the same key, names and frozen state share a digest.
func SnapshotDigest(namespace string, names []string, frozen bool) (string, error) {
	if names == nil {
		names = []string{}
	}
	obj := map[string]any{
		"namespace": namespace,
		"names":     names,
		"frozen":    frozen,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("SnapshotDigest: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainSnapshot, canonical), nil
}
