package report

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/ja7ad/genai-footprint/pkg/util"
)

// CSVSink writes the detailed table as CSV.
type CSVSink struct {
	Path string
}

func (s CSVSink) Write(_ context.Context, rep *Report) error {
	return writeFileAtomic(s.Path, func(f *os.File) error {
		return WriteCSV(f, rep.Rows())
	})
}

// WriteCSV writes the header and one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.Date,
			r.ProfileType,
			strconv.FormatInt(r.Count, 10),
			strconv.FormatInt(r.SimulatedTokens, 10),
			strconv.FormatInt(r.SimulatedChars, 10),
			util.FmtFloat(r.EnergyKWh),
			util.FmtFloat(r.CarbonG),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
