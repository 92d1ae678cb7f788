package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"carlog/internal/models"
	"carlog/internal/repository"
)

// InsightFallback is returned in place of the collaborator's text on any
// failure. The feature is advisory; it never surfaces an error.
const InsightFallback = "Desculpe, não consegui analisar o histórico agora. Tente novamente mais tarde."

// One in-flight generation can take a while; bound it so an unresponsive
// collaborator cannot pin the slot in pending forever.
const insightTimeout = 90 * time.Second

type InsightService struct {
	cars    repository.Cars
	records repository.Records
	gen     Generator

	mu    sync.Mutex
	slots map[string]models.InsightResult // by car id
}

func NewInsightService(cars repository.Cars, records repository.Records, gen Generator) *InsightService {
	return &InsightService{
		cars:    cars,
		records: records,
		gen:     gen,
		slots:   make(map[string]models.InsightResult),
	}
}

// Request marks the car's slot pending and starts one background generation.
// The caller gets the pending slot immediately; the result (or the fallback
// apology) is stored when the collaborator answers. A request for a car with
// a generation already pending just returns the pending slot.
func (s *InsightService) Request(ctx context.Context, userID, carID string) (models.InsightResult, error) {
	car, err := s.cars.GetByID(ctx, userID, carID)
	if err != nil {
		return models.InsightResult{}, err
	}
	if car == nil {
		return models.InsightResult{}, ErrCarNotFound
	}

	recs, err := s.records.ListByCar(ctx, userID, carID)
	if err != nil {
		return models.InsightResult{}, err
	}

	s.mu.Lock()
	if cur, ok := s.slots[carID]; ok && cur.Status == models.InsightPending {
		s.mu.Unlock()
		return cur, nil
	}
	slot := models.InsightResult{CarID: carID, Status: models.InsightPending}
	s.slots[carID] = slot
	s.mu.Unlock()

	// Detached from the request context: the HTTP call returns right away
	// while the generation keeps running.
	go s.generate(carID, buildPrompt(*car, recs))

	return slot, nil
}

// Get returns the car's current slot; idle when nothing was ever requested.
func (s *InsightService) Get(carID string) models.InsightResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot, ok := s.slots[carID]; ok {
		return slot
	}
	return models.InsightResult{CarID: carID, Status: models.InsightIdle}
}

func (s *InsightService) generate(carID, prompt string) {
	ctx, cancel := context.WithTimeout(context.Background(), insightTimeout)
	defer cancel()

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		text = InsightFallback
	}

	s.mu.Lock()
	s.slots[carID] = models.InsightResult{CarID: carID, Status: models.InsightReady, Insight: text}
	s.mu.Unlock()
}

// buildPrompt embeds the vehicle snapshot and a chronological bullet list of
// its history, asking for a health assessment, the three most urgent
// preventive actions and a model-specific tip.
func buildPrompt(car models.Car, recs []models.MaintenanceRecord) string {
	var history strings.Builder
	// Records arrive newest first; the prompt lists them oldest first.
	for i := len(recs) - 1; i >= 0; i-- {
		r := recs[i]
		kind := "Revisão"
		if r.Type == models.TypeReplacement {
			kind = "Troca"
		}
		history.WriteString(fmt.Sprintf("- %s: %s (%s) aos %d km\n", r.Date, r.PartName, kind, r.Mileage))
	}

	return fmt.Sprintf(`Analise o histórico de manutenção do seguinte veículo:
Veículo: %s %s (%d)
Quilometragem atual: %d km

Histórico de Manutenções:
%s
Com base nesse histórico e na quilometragem, forneça:
1. Uma avaliação geral da saúde do veículo.
2. Sugestão das próximas 3 manutenções preventivas mais urgentes.
3. Uma dica de economia ou cuidado específico para este modelo.

Responda em português de forma concisa e amigável para um proprietário de carro.`,
		car.Make, car.Model, car.Year, car.CurrentMileage, history.String())
}
