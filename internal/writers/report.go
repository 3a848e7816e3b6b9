// internal/writers/report.go
package writers

import (
	"fmt"
	"io"

	"github.com/bgruening/nextclade/internal/cli"
	"github.com/bgruening/nextclade/internal/output"
	"github.com/bgruening/nextclade/pkg/api"
)

// StartReportWriter spins up a writer goroutine consuming ReportV1
// items. JSON is buffered (single array); TSV streams row by row.
// The error channel yields exactly once, after the input channel closes.
func StartReportWriter(out io.Writer, format string, header bool, bufSize int) (chan<- api.ReportV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.ReportV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case cli.FormatJSON:
			var buf []api.ReportV1
			for rep := range in {
				buf = append(buf, rep)
			}
			err = output.WriteJSON(out, buf)

		case cli.FormatTSV:
			if header {
				err = output.WriteHeader(out)
			}
			for rep := range in {
				if err != nil {
					continue // drain
				}
				err = output.WriteTextReport(out, rep)
			}

		default:
			for range in {
			}
			err = fmt.Errorf("unsupported output format %q", format)
		}
		errCh <- err
	}()

	return in, errCh
}
