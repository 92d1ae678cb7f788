package handlers

import (
	"net/http"

	"carlog/internal/models"
	"carlog/internal/service"

	"github.com/gin-gonic/gin"
)

type recordRequest struct {
	PartName string  `json:"partName" binding:"required"`
	Type     string  `json:"type" binding:"required"`
	Date     string  `json:"date" binding:"required"`
	Mileage  int     `json:"mileage"`
	Cost     float64 `json:"cost"`
	Notes    string  `json:"notes"`
}

func (r recordRequest) toParams(carID string) service.RecordParams {
	return service.RecordParams{
		CarID:    carID,
		PartName: r.PartName,
		Type:     models.ParseServiceType(r.Type),
		Date:     r.Date,
		Mileage:  r.Mileage,
		Cost:     r.Cost,
		Notes:    r.Notes,
	}
}

// @Summary      List a vehicle's maintenance history
// @Description  Newest date first.
// @Tags         records
// @Produce      json
// @Param        id  path  string  true  "Car id"
// @Success      200  {object}  map[string]interface{}  "records"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/cars/{id}/records [get]
// @Security     BearerAuth
func (h *Handler) listCarRecords(c *gin.Context) {
	recs, err := h.services.Ledger.ListByCar(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.serviceError(c, err, "records_list_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": recs})
}

// @Summary      Log a maintenance event
// @Description  Raises the vehicle's current mileage when the record reports a higher one; never lowers it.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        id    path  string         true  "Car id"
// @Param        body  body  recordRequest  true  "Record payload"
// @Success      200  {object}  map[string]interface{}  "record"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/cars/{id}/records [post]
// @Security     BearerAuth
func (h *Handler) addRecord(c *gin.Context) {
	var input recordRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	rec, err := h.services.AddRecord(c.Request.Context(), userID(c), input.toParams(c.Param("id")))
	if err != nil {
		h.serviceError(c, err, "records_add_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// @Summary      Edit a maintenance record
// @Description  Replaces the form fields in place; id and car id are preserved. Mileage sync applies.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        id    path  string         true  "Record id"
// @Param        body  body  recordRequest  true  "Record payload"
// @Success      200  {object}  map[string]interface{}  "record"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/records/{id} [put]
// @Security     BearerAuth
func (h *Handler) editRecord(c *gin.Context) {
	var input recordRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	rec, err := h.services.EditRecord(c.Request.Context(), userID(c), c.Param("id"), input.toParams(""))
	if err != nil {
		h.serviceError(c, err, "records_edit_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// @Summary      Delete a maintenance record
// @Description  Requires confirm=true. A mileage sync previously triggered by the record is not rolled back.
// @Tags         records
// @Produce      json
// @Param        id       path   string  true  "Record id"
// @Param        confirm  query  bool    true  "Must be true"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/records/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRecord(c *gin.Context) {
	if !requireConfirm(c, confirmDeleteRecord) {
		return
	}

	if err := h.services.DeleteRecord(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.serviceError(c, err, "records_delete_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Export the full maintenance history as CSV
// @Description  One line per record across all of the user's vehicles. Free-text fields are quoted; embedded quotes/commas are not escaped (kept for compatibility with existing exports).
// @Tags         records
// @Produce      text/csv
// @Success      200  {string}  string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/records/export [get]
// @Security     BearerAuth
func (h *Handler) exportCSV(c *gin.Context) {
	filename, content, err := h.services.ExportCSV(c.Request.Context(), userID(c))
	if err != nil {
		h.serviceError(c, err, "records_export_failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}

// @Summary      Import maintenance records from CSV
// @Description  Header line is mandatory and discarded. Every imported record is attached to the car in the path; the file's own car columns are ignored. Unparseable numbers degrade to 0. Import does not update the vehicle's mileage.
// @Tags         records
// @Accept       text/csv
// @Produce      json
// @Param        id  path  string  true  "Target car id"
// @Success      200  {object}  map[string]int  "imported"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/cars/{id}/import [post]
// @Security     BearerAuth
func (h *Handler) importCSV(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body: " + err.Error()})
		return
	}

	n, err := h.services.ImportCSV(c.Request.Context(), userID(c), c.Param("id"), string(body))
	if err != nil {
		h.serviceError(c, err, "records_import_failed")
		return
	}

	if h.log != nil {
		h.log.Infow("records_imported", "count", n, "car_id", c.Param("id"))
	}
	c.JSON(http.StatusOK, gin.H{"imported": n})
}
