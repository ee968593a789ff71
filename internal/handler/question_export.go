package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/trivia-quiz-api/internal/domain/entity"
	"github.com/yourusername/trivia-quiz-api/internal/logging"
)

var exportHeaders = []string{"ID", "Question", "Answer", "Category ID", "Category", "Difficulty"}

// ExportQuestions выгружает весь банк вопросов в CSV или XLSX
// GET /v1/questions/export?format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest)
		return
	}

	questions, categories, err := h.questionService.ExportQuestions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("questions_%s", time.Now().UTC().Format("20060102_150405"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, questions, categories, filename)
	default:
		h.exportCSV(c, questions, categories, filename)
	}
}

// exportCSV экспортирует вопросы в CSV с правильным экранированием спецсимволов
func (h *QuestionHandler) exportCSV(c *gin.Context, questions []entity.Question, categories map[uint]string, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	if _, err := c.Writer.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return
	}

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(exportHeaders); err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("failed to write csv header")
		return
	}
	for _, q := range questions {
		if err := writer.Write(exportRow(q, categories)); err != nil {
			logging.FromContext(c.Request.Context()).Error().Err(err).Uint("question_id", q.ID).Msg("failed to write csv row")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("failed to flush csv")
	}
}

// exportXLSX экспортирует вопросы в Excel с использованием StreamWriter
func (h *QuestionHandler) exportXLSX(c *gin.Context, questions []entity.Question, categories map[uint]string, filename string) {
	log := logging.FromContext(c.Request.Context())

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Questions"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Error().Err(err).Msg("failed to rename sheet")
		RespondError(c, http.StatusInternalServerError)
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Error().Err(err).Msg("failed to create excel stream writer")
		RespondError(c, http.StatusInternalServerError)
		return
	}

	if err := sw.SetRow("A1", toCells(exportHeaders)); err != nil {
		log.Error().Err(err).Msg("failed to write excel header")
		RespondError(c, http.StatusInternalServerError)
		return
	}

	for i, q := range questions {
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // строка 1 занята заголовками
		row := []interface{}{
			q.ID,
			sanitizeForExcel(q.Question),
			sanitizeForExcel(q.Answer),
			q.Category,
			sanitizeForExcel(categories[q.Category]),
			q.Difficulty,
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Error().Err(err).Int("row", i+2).Msg("failed to write excel row")
			RespondError(c, http.StatusInternalServerError)
			return
		}
	}

	if err := sw.Flush(); err != nil {
		log.Error().Err(err).Msg("failed to flush excel stream")
		RespondError(c, http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("failed to write excel response")
	}
}

func exportRow(q entity.Question, categories map[uint]string) []string {
	return []string{
		strconv.FormatUint(uint64(q.ID), 10),
		sanitizeForExcel(q.Question),
		sanitizeForExcel(q.Answer),
		strconv.FormatUint(uint64(q.Category), 10),
		sanitizeForExcel(categories[q.Category]),
		strconv.Itoa(q.Difficulty),
	}
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
