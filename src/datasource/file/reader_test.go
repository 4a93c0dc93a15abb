package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

const salaryCSV = "Год, Образование ,Строительство\n2000,1240.2,2639.8\n2001,1540.7,3181.8\n"

func TestReadCSV(t *testing.T) {
	df, err := ReadCSV(strings.NewReader(salaryCSV), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Год", "Образование", "Строительство"}, df.Names())
	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"1240.2", "1540.7"}, df.Col("Образование").Records())
}

func TestReadCSV_BOMAndDelimiter(t *testing.T) {
	in := "\ufeffГод;Всего\n2000;20,2\n2001;18,58\n"
	df, err := ReadCSV(strings.NewReader(in), ReadOptions{Delimiter: ';', Encoding: "UTF-8"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Год", "Всего"}, df.Names())
	// decimal commas stay as text for the loader to parse
	assert.Equal(t, []string{"20,2", "18,58"}, df.Col("Всего").Records())
}

func TestReadCSV_Windows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String(salaryCSV)
	require.NoError(t, err)

	df, err := ReadCSV(strings.NewReader(encoded), ReadOptions{Encoding: "windows-1251"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Год", "Образование", "Строительство"}, df.Names())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(salaryCSV), ReadOptions{Encoding: "klingon"})
	assert.ErrorContains(t, err, "unknown encoding")

	_, err = ReadCSV(strings.NewReader("  \n"), ReadOptions{})
	assert.ErrorContains(t, err, "empty table")

	// headers that collide once trimmed
	_, err = ReadCSV(strings.NewReader("Год,Всего, Всего\n2000,20.2,20.2\n"), ReadOptions{})
	assert.ErrorContains(t, err, "header")
}

func writeXLSX(t *testing.T, path, sheet string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadTable_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tab3-zpl.xlsx")
	writeXLSX(t, path, "2000-2023", [][]any{
		{"Среднемесячная заработная плата"},
		{"Год", "Образование", "Строительство"},
		{2000, 1240.2, 2639.8},
		{},
		{2001, 1540.7, 3181.8},
	})

	df, err := ReadTable(path, ReadOptions{SheetName: "2000-2023", HeaderRow: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Год", "Образование", "Строительство"}, df.Names())
	assert.Equal(t, 2, df.Nrow(), "empty rows are skipped")
	assert.Equal(t, []string{"2000", "2001"}, df.Col("Год").Records())
	assert.Equal(t, []string{"2639.8", "3181.8"}, df.Col("Строительство").Records())

	_, err = ReadTable(path, ReadOptions{SheetName: "missing"})
	assert.ErrorContains(t, err, "not found")

	_, err = ReadTable(path, ReadOptions{HeaderRow: 10})
	assert.ErrorContains(t, err, "no header row")
}

func TestReadTable_CSVFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salary.csv")
	require.NoError(t, os.WriteFile(path, []byte(salaryCSV), 0644))

	df, err := ReadTable(path, ReadOptions{Delimiter: ','})
	require.NoError(t, err)
	assert.Equal(t, 2, df.Nrow())

	_, err = ReadTable(filepath.Join(dir, "missing.csv"), ReadOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadTable(filepath.Join(dir, "salary.ods"), ReadOptions{})
	assert.ErrorContains(t, err, "unsupported")
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	require.NoError(t, EnsureDir(dir))

	path := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	assert.Error(t, EnsureDir(path))
}
