package airports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
)

// DefaultDatasetURL is the public OurAirports dataset used as the bulk
// fallback when the primary lookup API is exhausted or failing.
const DefaultDatasetURL = "https://davidmegginson.github.io/ourairports-data/airports.csv"

// fetchDataset downloads and parses the fallback dataset, returning metadata
// for every row that carries an IATA code. The CSV reader handles quoted
// fields (airport names routinely contain commas).
func fetchDataset(ctx context.Context, client *http.Client, url string) (map[string]domain.AirportMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: dataset fetch returned %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	return parseDataset(resp.Body)
}

// parseDataset reads OurAirports-style CSV and indexes it by IATA code.
func parseDataset(r io.Reader) (map[string]domain.AirportMetadata, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"iata_code", "name", "iso_country", "municipality"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", required)
		}
	}

	table := make(map[string]domain.AirportMetadata)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// One malformed row does not invalidate the dataset.
			continue
		}

		code := field(record, col["iata_code"])
		if len(code) != 3 {
			continue
		}
		code = strings.ToUpper(code)

		// A few closed airfields share a code with an active airport.
		// First occurrence wins.
		if _, exists := table[code]; exists {
			continue
		}

		table[code] = domain.AirportMetadata{
			City:    field(record, col["municipality"]),
			Country: field(record, col["iso_country"]),
			Name:    field(record, col["name"]),
			Source:  domain.SourceFallbackDataset,
		}
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("dataset contained no usable airport rows")
	}
	return table, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
