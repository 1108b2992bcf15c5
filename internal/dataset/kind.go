package dataset

import "fmt"

// Kind names one of the bundled datasets. Callers pick the dataset
// explicitly instead of the loader guessing it from a target type.
type Kind int

const (
	KindRegions Kind = iota
	KindJobs
	KindHeroes
	KindSlides
)

var kindNames = map[Kind]string{
	KindRegions: "regions",
	KindJobs:    "jobs",
	KindHeroes:  "heroes",
	KindSlides:  "slides",
}

// String is also the base file name of the dataset.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown dataset kind %q", s)
}
