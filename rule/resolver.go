package rule

import (
	"github.com/viant/conformer/model"
)

// Resolves reports whether a class directly extends one of the target
// contract bases by literal base-name match. Matching is intentionally
// shallow: it does not follow transitive inheritance or import aliasing,
// so a class extending a subclass of a contract base does not resolve.
func Resolves(class *model.ClassDefinition, targetBases []string) bool {
	for _, base := range class.Bases {
		for _, target := range targetBases {
			if base == target {
				return true
			}
		}
	}
	return false
}
