// reader.go
package file

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tealeg/xlsx"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadOptions 读取表格的选项
type ReadOptions struct {
	Delimiter rune   // CSV 分隔符，默认 ','
	Encoding  string // CSV 文本编码，如 "utf-8"、"windows-1251"
	SheetName string // xlsx 工作表名，空则取第一个
	HeaderRow int    // xlsx 标题行(从0开始)
}

// ReadTable reads a CSV or XLSX file into a frame of string columns,
// dispatching on the file extension.
func ReadTable(path string, opts ReadOptions) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path, opts)
	case ".csv", ".txt", ".tsv", "":
		f, err := os.Open(path)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		df, err := ReadCSV(f, opts)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("read %s: %w", path, err)
		}
		return df, nil
	default:
		return dataframe.DataFrame{}, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// ReadCSV decodes r with the configured encoding and loads it as strings;
// numeric parsing is left to the caller so bad cells can be reported.
func ReadCSV(r io.Reader, opts ReadOptions) (dataframe.DataFrame, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	data, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("decode %s: %w", opts.Encoding, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("empty table")
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithDelimiter(delim),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", df.Err)
	}
	return trimNames(df)
}

// ReadXLSX 读取 xlsx 工作表并转换为 DataFrame
func ReadXLSX(filePath string, opts ReadOptions) (dataframe.DataFrame, error) {
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("xlsx open file %s: %w", filePath, err)
	}
	if len(xlFile.Sheets) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%s: no sheets", filePath)
	}

	sheet := xlFile.Sheets[0]
	if opts.SheetName != "" {
		s, ok := xlFile.Sheet[opts.SheetName]
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%s: sheet %q not found", filePath, opts.SheetName)
		}
		sheet = s
	}

	df, err := convertSheetToDataFrame(sheet, opts.HeaderRow)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", filePath, err)
	}
	return df, nil
}

// convertSheetToDataFrame 将xlsx.Sheet转换为dataframe.DataFrame
func convertSheetToDataFrame(sheet *xlsx.Sheet, headerRow int) (dataframe.DataFrame, error) {
	if headerRow < 0 || headerRow >= len(sheet.Rows) {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q has no header row %d", sheet.Name, headerRow)
	}

	var headers []string
	for _, cell := range sheet.Rows[headerRow].Cells {
		headers = append(headers, strings.TrimSpace(cell.Value))
	}
	for len(headers) > 0 && headers[len(headers)-1] == "" {
		headers = headers[:len(headers)-1]
	}
	if len(headers) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q: empty header row", sheet.Name)
	}

	columns := make([][]string, len(headers))
	for _, row := range sheet.Rows[headerRow+1:] {
		if row == nil || rowEmpty(row) {
			continue
		}
		for i := range headers {
			v := ""
			if i < len(row.Cells) {
				v = strings.TrimSpace(row.Cells[i].Value)
			}
			columns[i] = append(columns[i], v)
		}
	}

	seriesList := make([]series.Series, len(headers))
	for i, colName := range headers {
		seriesList[i] = series.New(columns[i], series.String, colName)
	}
	df := dataframe.New(seriesList...)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

func rowEmpty(row *xlsx.Row) bool {
	for _, c := range row.Cells {
		if strings.TrimSpace(c.Value) != "" {
			return false
		}
	}
	return true
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// trimNames strips stray whitespace around headers; spreadsheets exported to
// CSV often carry it.
func trimNames(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	names := df.Names()
	seen := make(map[string]bool, len(names))
	changed := false
	for i, n := range names {
		t := strings.TrimSpace(n)
		if seen[t] {
			return dataframe.DataFrame{}, fmt.Errorf("header: duplicate column %q", t)
		}
		seen[t] = true
		if t != n {
			names[i] = t
			changed = true
		}
	}
	if !changed {
		return df, nil
	}
	if err := df.SetNames(names...); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("header: %w", err)
	}
	return df, nil
}

// EnsureDir 确保目录存在
func EnsureDir(dirPath string) error {
	if info, err := os.Stat(dirPath); err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", dirPath)
	}
	return os.MkdirAll(dirPath, 0755)
}
