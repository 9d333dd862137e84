package services

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"tripmatch/internal/models/db_models"
	"tripmatch/internal/models/response_models"
	"tripmatch/internal/repositories"
	"tripmatch/pkg/utils"
)

type CatalogServiceInterface interface {
	List(ctx context.Context, page, pageSize int) ([]response_models.Destination, error)
	GetByID(ctx context.Context, id string) (*response_models.Destination, error)
	Styles() []response_models.TravelStyleResponse
	// ImportCSV reads a semicolon-delimited catalog file. Malformed rows
	// are skipped and counted, never fatal.
	ImportCSV(ctx context.Context, r io.Reader) (response_models.ImportResult, error)
}

type CatalogService struct {
	destRepo repositories.DestinationRepositoryInterface
	images   ImageServiceInterface
}

func NewCatalogService(destRepo repositories.DestinationRepositoryInterface, images ImageServiceInterface) CatalogServiceInterface {
	return &CatalogService{destRepo: destRepo, images: images}
}

func (s *CatalogService) List(ctx context.Context, page, pageSize int) ([]response_models.Destination, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	dests, err := s.destRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.Destination, 0, len(dests))
	for i := range dests {
		out = append(out, s.toResponse(ctx, &dests[i]))
	}
	return out, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*response_models.Destination, error) {
	dest, err := s.destRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if dest == nil {
		return nil, utils.ErrDestinationNotFound
	}
	resp := s.toResponse(ctx, dest)
	return &resp, nil
}

func (s *CatalogService) Styles() []response_models.TravelStyleResponse {
	out := make([]response_models.TravelStyleResponse, 0, len(TravelStyles))
	for _, style := range TravelStyles {
		out = append(out, response_models.TravelStyleResponse{
			Key:         style.Key,
			Name:        style.Name,
			Description: style.Description,
		})
	}
	return out
}

func (s *CatalogService) ImportCSV(ctx context.Context, r io.Reader) (response_models.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return response_models.ImportResult{}, utils.ErrInvalidBudget
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var result response_models.ImportResult
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}

		dest, ok := parseDestinationRow(col, record)
		if !ok {
			result.Skipped++
			continue
		}
		dest.RefreshFeatureVec()

		if err := s.destRepo.Upsert(ctx, dest); err != nil {
			log.Printf("Import failed for %s, %s: %v", dest.City, dest.Country, err)
			result.Skipped++
			continue
		}
		result.Imported++
	}
	return result, nil
}

func (s *CatalogService) toResponse(ctx context.Context, d *db_models.Destination) response_models.Destination {
	return response_models.Destination{
		ID:              d.ID.String(),
		City:            d.City,
		Country:         d.Country,
		Continent:       d.Continent,
		IataCode:        d.IataCode,
		Latitude:        d.Latitude,
		Longitude:       d.Longitude,
		AvgBudgetPerDay: d.AvgBudgetPerDay,
		FlightPrice:     d.FlightPrice,
		Climate:         d.Climate,
		BestMonths:      d.BestMonths,
		ImageURL:        s.images.ThumbnailURL(ctx, d.City, d.Country),
	}
}

// parseDestinationRow maps one CSV record onto a Destination, applying the
// catalog defaults for optional columns. City, country, continent and the
// numeric id column are mandatory.
func parseDestinationRow(col map[string]int, record []string) (*db_models.Destination, bool) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	order, err := strconv.Atoi(field("id"))
	if err != nil {
		return nil, false
	}
	city, country, continent := field("city"), field("country"), field("continent")
	if city == "" || country == "" || continent == "" {
		return nil, false
	}

	// The catalog ships flight prices as flight_price_zrh; newer files may
	// already use the plain column name.
	flightPrice := floatOr(field("flight_price_zrh"), 0)
	if flightPrice == 0 {
		flightPrice = floatOr(field("flight_price"), 0)
	}

	dest := &db_models.Destination{
		CatalogOrder:    order,
		City:            city,
		Country:         country,
		Continent:       continent,
		IataCode:        field("iata_code"),
		Latitude:        floatOr(field("latitude"), 0),
		Longitude:       floatOr(field("longitude"), 0),
		AvgBudgetPerDay: floatOr(field("avg_budget_per_day"), 100),
		FlightPrice:     flightPrice,
		Population:      stringOr(field("population"), "medium"),
		Safety:          floatOr(field("safety"), 3),
		VisaEasy:        floatOr(field("visa_easy"), 1) != 0,
		EnglishLevel:    floatOr(field("english_level"), 3),
		Climate:         stringOr(field("climate"), "temperate"),
		BestMonths:      splitMonths(field("best_months")),
		Crowds:          floatOr(field("crowds"), 3),
		IsCoastal:       floatOr(field("is_coastal"), 0),
		Beach:           floatOr(field("beach"), 3),
		Culture:         floatOr(field("culture"), 3),
		Nature:          floatOr(field("nature"), 3),
		Food:            floatOr(field("food"), 3),
		Nightlife:       floatOr(field("nightlife"), 3),
		Adventure:       floatOr(field("adventure"), 3),
		Romance:         floatOr(field("romance"), 3),
		Family:          floatOr(field("family"), 3),
	}
	return dest, true
}

func floatOr(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func splitMonths(s string) pq.StringArray {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make(pq.StringArray, 0, len(parts))
	for _, p := range parts {
		if m := strings.TrimSpace(p); m != "" {
			out = append(out, m)
		}
	}
	return out
}
