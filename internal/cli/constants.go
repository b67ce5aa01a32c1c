package cli

// Default values for CLI flags and output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2

	// Number of arguments taken by commands that read from one path and
	// write to another.
	srcDstArgs = 2
)

// Clean targets that are not directory kinds.
const (
	targetAll      = "all"
	targetCookies  = "cookies"
	targetWebCache = "webcache"
)
