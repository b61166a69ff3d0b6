package applicant

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSeed reads a JSON array of applications from path.
// Records without an id or with an invalid status are rejected.
func LoadSeed(path string) ([]Application, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a JSON array of applications.
func ParseSeed(data []byte) ([]Application, error) {
	var records []Application
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("seed record %d: missing id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("seed record %d: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Status == "" {
			records[i].Status = StatusNew
		}
		if r.MatchScore < 0 || r.MatchScore > 100 {
			return nil, fmt.Errorf("seed record %q: match score %d out of range", r.ID, r.MatchScore)
		}
	}
	return records, nil
}
