package blobstore

import (
	"fmt"
	"time"
)

// DocumentKey is the object key of an archived export document set:
// documents/<farmer>/<yyyy>/<mm>/<id>.json
func DocumentKey(farmerID, documentID string, at time.Time) string {
	return fmt.Sprintf("documents/%s/%s/%s.json", farmerID, at.UTC().Format("2006/01"), documentID)
}

// SnapshotKey is the object key of one snapshot run:
// snapshots/<yyyy-mm>/<run id>.jsonl
func SnapshotKey(runID string, at time.Time) string {
	return fmt.Sprintf("snapshots/%s/%s.jsonl", at.UTC().Format("2006-01"), runID)
}
