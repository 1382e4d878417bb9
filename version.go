package custody

import "fmt"

// Release numbers of the custody engine.
const (
	Maj = 0
	Min = 1
	Fix = 0

	// Suffix marks untagged builds.
	Suffix = "-dev"
)

// GitCommit is set at build time with
//   -ldflags "-X github.com/iov-one/custody.GitCommit=<hash>"
var GitCommit = ""

// Version returns the release string, followed by the commit when known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
