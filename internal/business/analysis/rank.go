package analysis

import (
	"sort"

	"github.com/propscan/propscan/internal/business/scraper"
	"github.com/propscan/propscan/pkg/model"
)

// AnalyzeBatch analyzes every scrape result that came back without fatal
// errors. Records that fail the degeneracy guard (for instance empty
// records from soft-stopped pages) count as excluded too.
func AnalyzeBatch(results []scraper.Result) (analyses []model.AnalysisResult, excluded int) {
	for i := range results {
		r := &results[i]
		if !r.OK() {
			excluded++
			continue
		}
		a, err := Run(r.Property, Resolve(r.Property))
		if err != nil {
			excluded++
			continue
		}
		analyses = append(analyses, a)
	}
	return analyses, excluded
}

// RankByCashFlowPerUnit sorts analyses in place, best first.
func RankByCashFlowPerUnit(analyses []model.AnalysisResult) {
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].CashFlowPerUnit > analyses[j].CashFlowPerUnit
	})
}

// TopN returns the first n analyses, or all of them when fewer exist.
func TopN(analyses []model.AnalysisResult, n int) []model.AnalysisResult {
	if n < 0 {
		n = 0
	}
	if n > len(analyses) {
		n = len(analyses)
	}
	return analyses[:n]
}
