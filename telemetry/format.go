package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/money/output"
)

// slowStage is the duration from which a stage is highlighted.
const slowStage = 100 * time.Millisecond

// writeTree writes root and the stages below it:
//
//	check: 125ms
//	├─ load ledger.txt (48 kB): 85ms
//	│  └─ parser.parse: 83ms
//	│     ├─ parser.chunk: 2ms
//	│     └─ parser.blocks (1,204 blocks): 80ms
//	└─ ledger.process (1,204 transactions): 40ms
func writeTree(w io.Writer, root *span, styles *output.Styles) {
	name := root.label()
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.elapsed()))

	writeChildren(w, root.children, "", styles)
}

func writeChildren(w io.Writer, children []*span, prefix string, styles *output.Styles) {
	for i, child := range children {
		branch, extension := "├─ ", "│  "
		if i == len(children)-1 {
			branch, extension = "└─ ", "   "
		}

		duration := child.elapsed()
		guide, timing := prefix+branch, formatDuration(duration)
		if styles != nil {
			guide = styles.Dim(guide)
			if duration >= slowStage {
				timing = styles.Warning(timing)
			} else {
				timing = styles.Dim(timing)
			}
		}
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", guide, child.label(), timing)

		writeChildren(w, child.children, prefix+extension, styles)
	}
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
