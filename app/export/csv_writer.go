package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/disruptorsmedia/blog-comb/app/blog"
)

type CSVWriter struct{}

func (w *CSVWriter) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (w *CSVWriter) Extension() string {
	return "csv"
}

func (w *CSVWriter) Write(out io.Writer, posts []blog.Post) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, post := range posts {
		if err := writer.Write(postValues(post)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
