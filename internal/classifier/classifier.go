// Package classifier suggests an issue category from an image file name.
// It is a keyword table, suggestions are advisory only.
package classifier

import (
	"civic_reports/internal/domain" // Importing domain models
	"path/filepath"                 // Image file names
	"strings"                       // Keyword matching
)

// Result is a suggested category with a confidence in [0, 1]
type Result struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

type rule struct {
	keywords   []string
	category   string
	confidence float64
}

// Checked in order, the first match wins
var rules = []rule{
	{[]string{"pothole", "road", "street"}, domain.CategoryRoads, 0.85},
	{[]string{"garbage", "trash", "waste"}, domain.CategoryGarbage, 0.90},
	{[]string{"water", "leak", "pipe"}, domain.CategoryWater, 0.80},
	{[]string{"electric", "power", "light"}, domain.CategoryElectricity, 0.75},
	{[]string{"infra", "building", "structure"}, domain.CategoryInfrastructure, 0.70},
	{[]string{"sanitation", "clean", "hygiene"}, domain.CategorySanitation, 0.75},
}

// Classify never fails: unknown names get Other at 0.50, and a name that
// cannot be inspected degrades to Other at 0.30.
func Classify(filename string) Result {
	name := strings.ToLower(filepath.Base(strings.TrimSpace(filename)))
	if name == "" || name == "." || name == "/" {
		return Result{Category: domain.CategoryOther, Confidence: 0.30}
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return Result{Category: r.category, Confidence: r.confidence}
			}
		}
	}
	return Result{Category: domain.CategoryOther, Confidence: 0.50}
}

// Categories lists every category the classifier can return
func Categories() []string {
	out := make([]string, len(domain.Categories))
	copy(out, domain.Categories)
	return out
}
