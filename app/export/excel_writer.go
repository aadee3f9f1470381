package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/disruptorsmedia/blog-comb/app/blog"
)

const excelSheetName = "Blog Posts"

type ExcelWriter struct{}

func (w *ExcelWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (w *ExcelWriter) Extension() string {
	return "xlsx"
}

func (w *ExcelWriter) Write(out io.Writer, posts []blog.Post) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), excelSheetName); err != nil {
		return fmt.Errorf("rename excel sheet: %w", err)
	}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(excelSheetName, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, post := range posts {
		row := i + 2
		for col, value := range postValues(post) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(excelSheetName, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SetPanes(excelSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze excel header: %w", err)
	}

	if err := file.Write(out); err != nil {
		return fmt.Errorf("write excel output: %w", err)
	}

	return nil
}
