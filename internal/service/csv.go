package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"carlog/internal/models"

	"github.com/google/uuid"
)

// csvHeader is the fixed column order of the established export format.
// Free-text fields are quoted but embedded quotes and
// commas are NOT escaped; a comma inside notes corrupts the row on re-import.
// Quoted-field escaping would break compatibility with existing exports, so
// the format is kept as is.
const csvHeader = "ID_CARRO,VEICULO,PECA,TIPO,DATA,KM,CUSTO,OBS"

// ExportCSV renders every record of the user, across all vehicles, joined
// with the registry for the vehicle model column. Returns the conventional
// download filename and the document body.
func (s *LedgerService) ExportCSV(ctx context.Context, userID string) (string, string, error) {
	recs, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	cars, err := s.cars.ListByUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	modelByCar := make(map[string]string, len(cars))
	for _, c := range cars {
		modelByCar[c.ID] = c.Model
	}

	var b strings.Builder
	b.WriteString(csvHeader + "\n")
	for _, r := range recs {
		// quoted() wraps the raw text: embedded quotes/commas are left alone.
		b.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%d,%s,%s\n",
			r.CarID,
			quoted(modelByCar[r.CarID]),
			quoted(r.PartName),
			r.Type,
			r.Date,
			r.Mileage,
			formatCost(r.Cost),
			quoted(r.Notes),
		))
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	username := ""
	if u != nil {
		username = u.Username
	}
	filename := fmt.Sprintf("carlog_%s_%s.csv", username, time.Now().UTC().Format("2006-01-02"))

	return filename, b.String(), nil
}

// ImportCSV parses the document and appends one record per non-blank data
// line, all attached to the given car. The file's own ID_CARRO and VEICULO
// columns are read but discarded. Fields are split on literal commas with no
// quoted-comma awareness, matching how existing exports were written.
// The car's current mileage is not touched by import.
func (s *LedgerService) ImportCSV(ctx context.Context, userID, carID, text string) (int, error) {
	car, err := s.cars.GetByID(ctx, userID, carID)
	if err != nil {
		return 0, err
	}
	if car == nil {
		return 0, ErrCarNotFound
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header
	}

	recs := make([]models.MaintenanceRecord, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		recs = append(recs, models.MaintenanceRecord{
			ID:       uuid.NewString(),
			CarID:    carID,
			UserID:   userID,
			PartName: csvField(fields, 2),
			Type:     models.ParseServiceType(csvField(fields, 3)),
			Date:     csvField(fields, 4),
			Mileage:  intOrZero(csvField(fields, 5)),
			Cost:     floatOrZero(csvField(fields, 6)),
			Notes:    csvField(fields, 7),
		})
	}

	if err := s.records.CreateBatch(ctx, recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}

func quoted(s string) string {
	return `"` + s + `"`
}

// csvField strips every quote character and surrounding whitespace, and
// tolerates short rows.
func csvField(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(fields[i], `"`, ""))
}

// intOrZero parses a non-negative integer, degrading to 0 on any failure.
func intOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func floatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// formatCost renders costs with no forced decimals, 0 when unset.
func formatCost(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
