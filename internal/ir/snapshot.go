package ir

// Snapshot is a point-in-time copy of a namespace's export list.
type Snapshot struct {
	Namespace string   `json:"namespace"`
	Names     []string `json:"names"`
	Frozen    bool     `json:"frozen"`
	Digest    string   `json:"digest"`
}

// NewSnapshot copies list into a Snapshot and computes its digest.
func NewSnapshot(namespace string, list ExportList) (Snapshot, error) {
	names := list.Names()
	if names == nil {
		names = []string{}
	}
	digest, err := SnapshotDigest(namespace, names, list.IsFrozen())
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Namespace: namespace,
		Names:     names,
		Frozen:    list.IsFrozen(),
		Digest:    digest,
	}, nil
}
