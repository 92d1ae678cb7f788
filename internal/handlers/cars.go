package handlers

import (
	"net/http"

	"carlog/internal/service"

	"github.com/gin-gonic/gin"
)

// Confirmation prompts shown before destructive actions.
const (
	confirmDeleteCar    = "Atenção: Isso excluirá o veículo e TODO o seu histórico de manutenções. Continuar?"
	confirmDeleteRecord = "Excluir este registro permanentemente?"
)

type addCarRequest struct {
	Make    string `json:"make" binding:"required"`
	Model   string `json:"model" binding:"required"`
	Year    int    `json:"year" binding:"required"`
	Plate   string `json:"plate"`
	Mileage int    `json:"mileage"`
	Color   string `json:"color"`
}

// @Summary      List own vehicles
// @Tags         cars
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "cars"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/cars [get]
// @Security     BearerAuth
func (h *Handler) listCars(c *gin.Context) {
	cars, err := h.services.ListCars(c.Request.Context(), userID(c))
	if err != nil {
		h.serviceError(c, err, "cars_list_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

// @Summary      Register a vehicle
// @Description  Color defaults to Slate when blank. Duplicate plates/models are allowed.
// @Tags         cars
// @Accept       json
// @Produce      json
// @Param        body  body  addCarRequest  true  "Vehicle payload"
// @Success      200  {object}  map[string]interface{}  "car"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/cars [post]
// @Security     BearerAuth
func (h *Handler) addCar(c *gin.Context) {
	var input addCarRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	car, err := h.services.AddCar(c.Request.Context(), userID(c), service.CarParams{
		Make:    input.Make,
		Model:   input.Model,
		Year:    input.Year,
		Plate:   input.Plate,
		Mileage: input.Mileage,
		Color:   input.Color,
	})
	if err != nil {
		h.serviceError(c, err, "cars_add_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"car": car})
}

// @Summary      Delete a vehicle and its whole history
// @Description  Requires confirm=true. Cascades to every maintenance record of the vehicle.
// @Tags         cars
// @Produce      json
// @Param        id       path   string  true  "Car id"
// @Param        confirm  query  bool    true  "Must be true"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/cars/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteCar(c *gin.Context) {
	if !requireConfirm(c, confirmDeleteCar) {
		return
	}

	if err := h.services.DeleteCar(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.serviceError(c, err, "cars_delete_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
