package compare

import "github.com/untoldecay/modelscore/internal/utils"

// maxNearMissEdits is the largest edit distance reported as a near miss.
const maxNearMissEdits = 2

// NearMiss links a missing entity key to extra keys that look like another
// spelling of it. Hints never change a metric.
type NearMiss struct {
	Missing    string   `json:"missing" yaml:"missing"`
	Candidates []string `json:"candidates" yaml:"candidates"`
}

// FindNearMisses pairs each missing key with the similar extra keys. Input
// order is preserved, so sorted inputs give sorted output.
func FindNearMisses(missing, extra []string) []NearMiss {
	var out []NearMiss
	for _, m := range missing {
		var cands []string
		for _, e := range extra {
			if utils.Similar(m, e, maxNearMissEdits) {
				cands = append(cands, e)
			}
		}
		if len(cands) > 0 {
			out = append(out, NearMiss{Missing: m, Candidates: cands})
		}
	}
	return out
}
