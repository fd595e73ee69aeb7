package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"transitlog/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
)

// tripSchema is shared by check-in and check-out bodies.
var tripSchema = mustSchema(`{
	"type": "object",
	"required": ["passengerName", "station", "time"],
	"properties": {
		"passengerName": {"type": "string", "pattern": "\\S"},
		"station": {"type": "string", "pattern": "\\S"},
		"time": {"type": "string", "pattern": "^\\s*([01][0-9]|2[0-3]):[0-5][0-9]\\s*$"}
	}
}`)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid json schema: %v", err))
	}
	return schema
}

// BindJSONSchemaOrError validates the body against schema and decodes it into dst.
func BindJSONSchemaOrError[T any](c *gin.Context, schema *gojsonschema.Schema, dst *T) bool {
	raw, err := c.GetRawData()
	if err != nil || len(strings.TrimSpace(string(raw))) == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "request body is not valid JSON", err.Error())
		return false
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, fmt.Sprintf("%v", e))
		}
		respondError(c, http.StatusBadRequest, "validation_error", "request body failed validation", details)
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "request body is not valid JSON", err.Error())
		return false
	}
	return true
}

func pageFromQuery(c *gin.Context, defaultSize int) domain.Pagination {
	page, _ := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page", "1")))
	size, _ := strconv.Atoi(strings.TrimSpace(c.Query("pageSize")))
	return domain.Pagination{Page: page, PageSize: size}.Normalize(defaultSize)
}
