// AngelaMos | 2026
// classify.go

package sample

type Category string

const (
	CategoryNonUser     Category = "Non-user"
	CategoryRegularUser Category = "Regular User"
	CategoryAddict      Category = "Addict"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryNonUser, CategoryRegularUser, CategoryAddict:
		return true
	default:
		return false
	}
}

// Classify maps a pH reading and an optional nicotine reading to a user-type
// category. Rules are evaluated in order and the first match wins; every
// bound is inclusive except the strict pH > 7.5 and nicotine > 150 of the
// Addict rule. A missing nicotine reading never matches a rule.
func Classify(acidityLevel float64, secondaryLevel *float64) Category {
	if secondaryLevel == nil {
		return CategoryNonUser
	}
	secondary := *secondaryLevel

	switch {
	case acidityLevel > 7.5 && secondary > 150:
		return CategoryAddict
	case between(acidityLevel, 7, 7.5) && between(secondary, 130, 150):
		return CategoryRegularUser
	case between(acidityLevel, 7.3, 7.5) && between(secondary, 120, 130):
		return CategoryRegularUser
	default:
		return CategoryNonUser
	}
}

func between(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
