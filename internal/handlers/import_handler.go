package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"shipping-admin-service/internal/services"
)

const (
	pincodeSheetName = "Pincodes"
	maxImportSize    = 10 << 20
)

// ImportHandler handles pincode file import and export
type ImportHandler struct {
	pincodes *services.PincodeService
}

func NewImportHandler(pincodes *services.PincodeService) *ImportHandler {
	return &ImportHandler{pincodes: pincodes}
}

// ImportPincodes handles POST /api/v1/shipping/pincodes/import
// @Summary Bulk import pincode mappings from CSV or XLSX
// @Tags Pincodes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/shipping/pincodes/import [post]
func (h *ImportHandler) ImportPincodes(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "Please upload a CSV or Excel file")
		return
	}
	defer file.Close()

	rows, err := parseImportFile(file, header.Filename)
	if err != nil {
		respondError(c, http.StatusBadRequest, "PARSE_ERROR", err.Error())
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_FILE", "The file contains no data rows")
		return
	}

	result, err := h.pincodes.Import(c.Request.Context(), getTenantID(c), rows)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, fmt.Sprintf("Imported %d of %d rows", result.SuccessCount, result.TotalRows), result)
}

// ExportPincodes handles GET /api/v1/shipping/pincodes/export?format=csv|xlsx
func (h *ImportHandler) ExportPincodes(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	zones, err := h.pincodes.ListAll(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	records := make([][]string, 0, len(zones))
	for _, z := range zones {
		records = append(records, services.PincodeExportRow(z))
	}
	filename := fmt.Sprintf("pincode_zones_%s.%s", time.Now().UTC().Format("20060102"), format)

	if format == "csv" {
		writeCSV(c, filename, services.PincodeImportColumns, records)
		return
	}
	writeXLSX(c, filename, pincodeSheetName, services.PincodeImportColumns, records)
}

func writeCSV(c *gin.Context, filename string, headers []string, records [][]string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(headers)
	_ = writer.WriteAll(records)
	if err := writer.Error(); err != nil {
		_ = c.Error(err)
	}
}

func writeXLSX(c *gin.Context, filename, sheetName string, headers []string, records [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	_ = f.SetSheetName("Sheet1", sheetName)
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, name)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, colName, colName, 18)
	}
	for rowIdx, record := range records {
		for colIdx, value := range record {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellStr(sheetName, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func parseImportFile(file io.Reader, filename string) ([]map[string]string, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return parseCSV(file)
	case strings.HasSuffix(lower, ".xlsx"):
		return parseXLSX(file)
	}
	return nil, fmt.Errorf("only CSV and XLSX files are supported")
}

func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.ToLower(h))
		h = strings.TrimSuffix(h, " *")
		out[i] = strings.ReplaceAll(h, " ", "_")
	}
	return out
}

func parseCSV(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	headers = normalizeHeaders(headers)

	var rows []map[string]string
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum, err)
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, toRow(headers, record, lineNum))
	}
	return rows, nil
}

func parseXLSX(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	excelRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := normalizeHeaders(excelRows[0])
	var rows []map[string]string
	for i, excelRow := range excelRows[1:] {
		if isBlank(excelRow) {
			continue
		}
		rows = append(rows, toRow(headers, excelRow, i+2))
	}
	return rows, nil
}

func toRow(headers, record []string, rowNum int) map[string]string {
	row := make(map[string]string, len(headers)+1)
	for i, value := range record {
		if i < len(headers) {
			row[headers[i]] = strings.TrimSpace(value)
		}
	}
	row["_row"] = strconv.Itoa(rowNum)
	return row
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
