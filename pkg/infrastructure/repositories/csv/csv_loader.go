// Package csv loads planning scenarios from CSV files into the
// in-memory repositories.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"planforge/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadItems loads item master data from a CSV file
func (l *Loader) LoadItems(filename string) ([]*entities.Item, error) {
	records, err := readAll(filename, []string{"sku", "description", "unit_cost", "lead_time_days", "method_override"})
	if err != nil {
		return nil, err
	}

	var items []*entities.Item
	for i, record := range records {
		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadDemand loads demand observations from a CSV file. Malformed rows
// (bad date, negative quantity) are skipped and reported as warnings so
// one bad export row never blocks a run.
func (l *Loader) LoadDemand(filename string) ([]*entities.DemandObservation, []error, error) {
	records, err := readAll(filename, []string{"sku", "period_date", "quantity"})
	if err != nil {
		return nil, nil, err
	}

	var observations []*entities.DemandObservation
	var warnings []error
	for i, record := range records {
		obs, err := parseObservation(record)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("demand CSV row %d skipped: %w", i+2, err))
			continue
		}
		observations = append(observations, obs)
	}
	return observations, warnings, nil
}

// LoadBOM loads BOM edges from a CSV file
func (l *Loader) LoadBOM(filename string) ([]*entities.BOMEdge, error) {
	records, err := readAll(filename, []string{"parent_sku", "component_sku", "qty_per_parent", "is_phantom"})
	if err != nil {
		return nil, err
	}

	var edges []*entities.BOMEdge
	for i, record := range records {
		qty, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bom CSV row %d: invalid qty_per_parent %q", i+2, record[2])
		}
		phantom, err := parseBool(record[3])
		if err != nil {
			return nil, fmt.Errorf("bom CSV row %d: %w", i+2, err)
		}
		edge, err := entities.NewBOMEdge(entities.SKU(record[0]), entities.SKU(record[1]), entities.Quantity(qty), phantom)
		if err != nil {
			return nil, fmt.Errorf("bom CSV row %d: %w", i+2, err)
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// LoadSupply loads on-hand positions and merges open receipts from a
// second file, which may be absent for scenarios without open orders
func (l *Loader) LoadSupply(positionsFile, receiptsFile string) ([]*entities.SupplyPosition, error) {
	records, err := readAll(positionsFile, []string{"sku", "on_hand"})
	if err != nil {
		return nil, err
	}

	receipts, err := l.loadReceipts(receiptsFile)
	if err != nil {
		return nil, err
	}

	var positions []*entities.SupplyPosition
	for i, record := range records {
		onHand, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("supply CSV row %d: invalid on_hand %q", i+2, record[1])
		}
		sku := entities.SKU(record[0])
		position, err := entities.NewSupplyPosition(sku, entities.Quantity(onHand), receipts[sku])
		if err != nil {
			return nil, fmt.Errorf("supply CSV row %d: %w", i+2, err)
		}
		positions = append(positions, position)
	}
	return positions, nil
}

// loadReceipts reads open purchase order lines keyed by SKU
func (l *Loader) loadReceipts(filename string) (map[entities.SKU][]entities.OpenReceipt, error) {
	if filename == "" {
		return nil, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil
	}

	records, err := readAll(filename, []string{"sku", "quantity", "expected_date", "reference", "confirmed"})
	if err != nil {
		return nil, err
	}

	receipts := make(map[entities.SKU][]entities.OpenReceipt)
	for i, record := range records {
		qty, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: invalid quantity %q", i+2, record[1])
		}
		expected, err := time.Parse(dateLayout, record[2])
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: invalid expected_date %q", i+2, record[2])
		}
		confirmed, err := parseBool(record[4])
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: %w", i+2, err)
		}
		sku := entities.SKU(record[0])
		receipts[sku] = append(receipts[sku], entities.OpenReceipt{
			Quantity:     entities.Quantity(qty),
			ExpectedDate: expected,
			Reference:    record[3],
			Confirmed:    confirmed,
		})
	}
	return receipts, nil
}

// LoadDeliveries loads historical vendor deliveries; the file may be
// absent for scenarios without delivery history
func (l *Loader) LoadDeliveries(filename string) ([]*entities.DeliveryRecord, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil
	}

	records, err := readAll(filename, []string{"sku", "ordered_date", "received_date"})
	if err != nil {
		return nil, err
	}

	var deliveries []*entities.DeliveryRecord
	for i, record := range records {
		ordered, err := time.Parse(dateLayout, record[1])
		if err != nil {
			return nil, fmt.Errorf("deliveries CSV row %d: invalid ordered_date %q", i+2, record[1])
		}
		received, err := time.Parse(dateLayout, record[2])
		if err != nil {
			return nil, fmt.Errorf("deliveries CSV row %d: invalid received_date %q", i+2, record[2])
		}
		delivery, err := entities.NewDeliveryRecord(entities.SKU(record[0]), ordered, received)
		if err != nil {
			return nil, fmt.Errorf("deliveries CSV row %d: %w", i+2, err)
		}
		deliveries = append(deliveries, delivery)
	}
	return deliveries, nil
}

// LoadOverrides loads manual classification overrides; the file may be
// absent
func (l *Loader) LoadOverrides(filename string) ([]entities.ClassificationOverride, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil
	}

	records, err := readAll(filename, []string{"sku", "abc", "xyz"})
	if err != nil {
		return nil, err
	}

	var overrides []entities.ClassificationOverride
	for i, record := range records {
		override := entities.ClassificationOverride{SKU: entities.SKU(record[0])}
		if record[1] != "" {
			abc, err := parseABC(record[1])
			if err != nil {
				return nil, fmt.Errorf("overrides CSV row %d: %w", i+2, err)
			}
			override.ABC = &abc
		}
		if record[2] != "" {
			xyz, err := parseXYZ(record[2])
			if err != nil {
				return nil, fmt.Errorf("overrides CSV row %d: %w", i+2, err)
			}
			override.XYZ = &xyz
		}
		overrides = append(overrides, override)
	}
	return overrides, nil
}

func parseItem(record []string) (*entities.Item, error) {
	unitCost, err := decimal.NewFromString(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid unit_cost %q", record[2])
	}
	leadTime, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_days %q", record[3])
	}

	item, err := entities.NewItem(entities.SKU(record[0]), record[1], unitCost, leadTime)
	if err != nil {
		return nil, err
	}
	if record[4] != "" {
		method, err := parseMethod(record[4])
		if err != nil {
			return nil, err
		}
		item.MethodOverride = method
	}
	return item, nil
}

func parseObservation(record []string) (*entities.DemandObservation, error) {
	periodDate, err := time.Parse(dateLayout, record[1])
	if err != nil {
		return nil, &entities.InvalidDemandDataError{
			SKU:    entities.SKU(record[0]),
			Reason: fmt.Sprintf("invalid period_date %q", record[1]),
		}
	}
	qty, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return nil, &entities.InvalidDemandDataError{
			SKU:    entities.SKU(record[0]),
			Reason: fmt.Sprintf("invalid quantity %q", record[2]),
		}
	}
	return entities.NewDemandObservation(entities.SKU(record[0]), periodDate, entities.Quantity(qty))
}

func parseMethod(value string) (entities.ForecastMethod, error) {
	switch strings.ToLower(value) {
	case "auto":
		return entities.MethodAuto, nil
	case "sma":
		return entities.MethodSMA, nil
	case "ets":
		return entities.MethodETS, nil
	case "holt_winters":
		return entities.MethodHoltWinters, nil
	case "ensemble":
		return entities.MethodEnsemble, nil
	default:
		return entities.MethodAuto, fmt.Errorf("unknown forecast method %q", value)
	}
}

func parseABC(value string) (entities.ABCClass, error) {
	switch strings.ToUpper(value) {
	case "A":
		return entities.ClassA, nil
	case "B":
		return entities.ClassB, nil
	case "C":
		return entities.ClassC, nil
	default:
		return entities.ABCUnclassified, fmt.Errorf("unknown ABC class %q", value)
	}
}

func parseXYZ(value string) (entities.XYZClass, error) {
	switch strings.ToUpper(value) {
	case "X":
		return entities.ClassX, nil
	case "Y":
		return entities.ClassY, nil
	case "Z":
		return entities.ClassZ, nil
	default:
		return entities.XYZUnclassified, fmt.Errorf("unknown XYZ class %q", value)
	}
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", value)
	}
}

// readAll reads a CSV file, validates its header, and returns the data
// rows with the expected column count
func readAll(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: missing header row", filename)
	}
	if !headerMatches(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s: header mismatch, expected %v, got %v", filename, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d",
				filename, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func headerMatches(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, column := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != column {
			return false
		}
	}
	return true
}
