package metrics

// Mean is the field-by-field average of several results. Counts average to
// fractional values, so they are kept as floats.
type Mean struct {
	Precision      float64 `json:"precision" yaml:"precision"`
	Recall         float64 `json:"recall" yaml:"recall"`
	F1             float64 `json:"f1_score" yaml:"f1_score"`
	TruePositives  float64 `json:"true_positives" yaml:"true_positives"`
	FalsePositives float64 `json:"false_positives" yaml:"false_positives"`
	FalseNegatives float64 `json:"false_negatives" yaml:"false_negatives"`
}

// Average returns the mean of results and false when results is empty.
func Average(results []Result) (Mean, bool) {
	if len(results) == 0 {
		return Mean{}, false
	}
	var m Mean
	for _, r := range results {
		m.Precision += r.Precision
		m.Recall += r.Recall
		m.F1 += r.F1
		m.TruePositives += float64(r.TruePositives)
		m.FalsePositives += float64(r.FalsePositives)
		m.FalseNegatives += float64(r.FalseNegatives)
	}
	n := float64(len(results))
	m.Precision /= n
	m.Recall /= n
	m.F1 /= n
	m.TruePositives /= n
	m.FalsePositives /= n
	m.FalseNegatives /= n
	return m, true
}
